package schema

import "time"

// Insight is one ranked, actionable business finding.
type Insight struct {
	ID             string        `json:"id"`
	Type           InsightType   `json:"type"`
	Category       string        `json:"category"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Priority       int           `json:"priority"` // 1..10, higher first
	Impact         ImpactTier    `json:"impact"`
	Recommendation string        `json:"recommendation,omitempty"`
	RevenueImpact  float64       `json:"revenueImpact,omitempty"` // estimated, 0 when unknown
	Confidence     float64       `json:"confidence"`
	Evidence       []string      `json:"evidence,omitempty"`
	Source         InsightSource `json:"source"`
	Actionable     bool          `json:"actionable"`
}

// InsightDraft is the partial insight shape an external backend may
// return. Missing fields are filled with defaults before merging.
type InsightDraft struct {
	ID             string   `json:"id,omitempty"`
	Type           string   `json:"type"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Metric         string   `json:"metric,omitempty"`
	Value          float64  `json:"value,omitempty"`
	Priority       int      `json:"priority,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Evidence       []string `json:"evidence,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// InsightResponse is the payload of one external backend call.
type InsightResponse struct {
	Insights []InsightDraft `json:"insights"`
}

// DataSnapshot is the small numeric summary handed to the external
// insight backend.
type DataSnapshot struct {
	TotalUsers   int       `json:"totalUsers"`
	TotalRevenue float64   `json:"totalRevenue"`
	RowCount     int       `json:"rowCount"`
	DateStart    time.Time `json:"dateStart,omitempty"`
	DateEnd      time.Time `json:"dateEnd,omitempty"`
}

// InsightContext carries everything an external backend needs to
// reason about a dataset.
type InsightContext struct {
	GameType      GameType           `json:"gameType"`
	Meanings      []ColumnMeaning    `json:"meanings"`
	Metrics       *CalculatedMetrics `json:"metrics,omitempty"`
	Anomalies     []Anomaly          `json:"anomalies,omitempty"`
	Snapshot      DataSnapshot       `json:"snapshot"`
	LevelStats    []LevelStat        `json:"levelStats,omitempty"`
	PlatformSplit map[string]int     `json:"platformSplit,omitempty"`
	CountrySplit  map[string]int     `json:"countrySplit,omitempty"`
}
