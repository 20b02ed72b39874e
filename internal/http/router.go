package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	JWTSecret      []byte
	RequestTimeout time.Duration
}

func NewRouter(
	cfg RouterConfig,
	orders *OrdersHandler,
	dashboard *DashboardHandler,
	tools *ToolsHandler,
	categories *CategoriesHandler,
	users *UsersHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.JWTSecret))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.ListOrders)
			r.Get("/{id}", orders.GetOrder)
			r.Put("/{id}", orders.UpdateStatus)
		})

		r.Get("/dashboard", dashboard.GetStats)

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", tools.ListTools)
			r.Post("/", tools.CreateTool)
			r.Get("/{id}", tools.GetTool)
			r.Put("/{id}", tools.UpdateTool)
			r.Delete("/{id}", tools.DeleteTool)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.ListCategories)
			r.Post("/", categories.CreateCategory)
			r.Get("/{id}", categories.GetCategory)
			r.Put("/{id}", categories.UpdateCategory)
			r.Delete("/{id}", categories.DeleteCategory)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.ListUsers)
			r.Post("/", users.CreateUser)
			r.Get("/{id}", users.GetUser)
			r.Put("/{id}", users.UpdateUser)
			r.Delete("/{id}", users.DeleteUser)
		})
	})

	return otelhttp.NewHandler(r, "backoffice")
}
