package domain

// StatCard is one dashboard KPI tile. Icon and color are hints for the
// presentation layer and carry no meaning here.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}
