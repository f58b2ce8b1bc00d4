package schema

// ChartRecommendation describes one suggested visualization.
type ChartRecommendation struct {
	Kind            ChartKind     `json:"kind"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	RequiredColumns []string      `json:"requiredColumns"`
	Priority        int           `json:"priority"` // 1..10
	Confidence      float64       `json:"confidence"`
	Essential       bool          `json:"essential"`
	Category        ChartCategory `json:"category"`
}

// DedupKey identifies a recommendation for deduplication purposes.
func (c *ChartRecommendation) DedupKey() string {
	return string(c.Kind) + "|" + c.Title
}

// DashboardLayout partitions recommendations into dashboard buckets.
// Essential entries are always ordered first within their bucket.
type DashboardLayout struct {
	KPIs            []ChartRecommendation `json:"kpis"`
	MainCharts      []ChartRecommendation `json:"mainCharts"`
	SideCharts      []ChartRecommendation `json:"sideCharts"`
	SecondaryCharts []ChartRecommendation `json:"secondaryCharts"`
}
