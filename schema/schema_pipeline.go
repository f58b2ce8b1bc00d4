package schema

import "time"

// RunStats holds timing and row accounting for one pipeline run.
type RunStats struct {
	OriginalRows int           `json:"originalRows"`
	SampledRows  int           `json:"sampledRows"`
	CleanedRows  int           `json:"cleanedRows"`
	Elapsed      time.Duration `json:"elapsed"`
	BackendUsed  bool          `json:"backendUsed"` // external insight backend consulted
}

// PipelineResult aggregates everything one pipeline run produced.
// Optional analytic stages that failed leave their field nil; the
// orchestrator never blanks the whole result over a soft failure.
type PipelineResult struct {
	Sample    *SampleResult         `json:"sample"`
	Meanings  []ColumnMeaning       `json:"meanings"`
	GameType  *GameTypeResult       `json:"gameType"`
	Quality   *CleaningPlan         `json:"quality,omitempty"`
	Cleaning  *CleaningResult       `json:"cleaning,omitempty"`
	Charts    []ChartRecommendation `json:"charts,omitempty"`
	Layout    *DashboardLayout      `json:"layout,omitempty"`
	Metrics   *CalculatedMetrics    `json:"metrics,omitempty"`
	Anomalies []Anomaly             `json:"anomalies,omitempty"`
	Cohorts   *CohortMatrix         `json:"cohorts,omitempty"`
	Funnel    *FunnelReport         `json:"funnel,omitempty"`
	Insights  []Insight             `json:"insights"`
	Stats     RunStats              `json:"stats"`
}

// RunStatus summarizes the state of the run store for status output.
type RunStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	RunCount  int             `json:"runCount"`
	LastRunAt time.Time       `json:"lastRunAt,omitempty"`
}

// RunRecord is one persisted pipeline run, as read back from the run
// store for export.
type RunRecord struct {
	RunID        int64     `json:"runId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	DurationMs   int64     `json:"durationMs"`
	Source       string    `json:"source"`
	OriginalRows int       `json:"originalRows"`
	SampledRows  int       `json:"sampledRows"`
	GameType     string    `json:"gameType"`
	QualityScore float64   `json:"qualityScore"`
	InsightCount int       `json:"insightCount"`
	ConfigParams string    `json:"configParams"`
}
