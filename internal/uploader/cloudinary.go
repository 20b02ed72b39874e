package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

var ErrUploadFailed = errors.New("image upload failed")

// Uploader pushes one image to the external asset host and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data io.Reader) (string, error)
}

// CloudinaryUploader talks to the Cloudinary unsigned upload API. Calls go
// through a circuit breaker so a dead asset host fails fast instead of
// holding multipart requests open for the full client timeout.
type CloudinaryUploader struct {
	httpClient *http.Client
	uploadURL  string
	preset     string
	folder     string
	breaker    *gobreaker.CircuitBreaker[string]
}

func NewCloudinaryUploader(cloudName, preset string) *CloudinaryUploader {
	settings := gobreaker.Settings{
		Name:        "cloudinary",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &CloudinaryUploader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploadURL:  fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName),
		preset:     preset,
		folder:     "tools",
		breaker:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	url, err := u.breaker.Execute(func() (string, error) {
		return u.doUpload(ctx, filename, data)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}

func (u *CloudinaryUploader) doUpload(ctx context.Context, filename string, data io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("folder", u.folder); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, snippet)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
