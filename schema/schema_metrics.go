package schema

import "time"

// RetentionMetrics holds cohort-based retention percentages keyed by
// horizon day (e.g. 1, 7, 30).
type RetentionMetrics struct {
	Classic    map[int]float64 `json:"classic"` // active exactly on day N
	Rolling    map[int]float64 `json:"rolling"` // active on day N or later
	ReturnRate float64         `json:"returnRate"`
}

// EngagementMetrics holds activity metrics over the sampled window.
type EngagementMetrics struct {
	DAU             float64 `json:"dau"` // mean of per-day unique users
	WAU             int     `json:"wau"` // unique users in the last 7 calendar days
	MAU             int     `json:"mau"` // unique users in the last 30 calendar days
	Stickiness      float64 `json:"stickiness"`
	SessionsPerUser float64 `json:"sessionsPerUser"`
}

// MonetizationMetrics holds revenue metrics.
type MonetizationMetrics struct {
	TotalRevenue    float64            `json:"totalRevenue"`
	ARPU            float64            `json:"arpu"`
	ARPPU           float64            `json:"arppu"`
	PayingUsers     int                `json:"payingUsers"`
	TotalUsers      int                `json:"totalUsers"`
	ConversionRate  float64            `json:"conversionRate"` // percent
	LTVProjection   float64            `json:"ltvProjection"`
	RevenueBySource map[string]float64 `json:"revenueBySource,omitempty"`
}

// LevelStat is per-level progression data.
type LevelStat struct {
	Level          int     `json:"level"`
	UsersReached   int     `json:"usersReached"`
	CompletionRate float64 `json:"completionRate"` // percent of reachers who passed the level
}

// ProgressionMetrics holds level progression data.
type ProgressionMetrics struct {
	MaxLevel         int         `json:"maxLevel"`
	AvgLevel         float64     `json:"avgLevel"`
	Levels           []LevelStat `json:"levels"`
	DifficultySpikes []int       `json:"difficultySpikes,omitempty"`
}

// CalculatedMetrics aggregates the four metric blocks. Each block is
// nil (not zero) when its required semantic columns are absent;
// callers must branch on presence, not value.
type CalculatedMetrics struct {
	Retention    *RetentionMetrics    `json:"retention,omitempty"`
	Engagement   *EngagementMetrics   `json:"engagement,omitempty"`
	Monetization *MonetizationMetrics `json:"monetization,omitempty"`
	Progression  *ProgressionMetrics  `json:"progression,omitempty"`
	Confidence   float64              `json:"confidence"`
}

// Anomaly is a day whose activity or revenue deviates sharply from the
// dataset mean.
type Anomaly struct {
	Metric      string    `json:"metric"` // "daily_users" or "daily_revenue"
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
	Expected    float64   `json:"expected"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// CohortRow is one weekly cohort in the retention matrix.
type CohortRow struct {
	Start   time.Time `json:"start"` // first day of the cohort week
	Size    int       `json:"size"`
	Percent []float64 `json:"percent"` // % of cohort active per week offset, index 0 = 100
}

// CohortMatrix is the week-based cohort retention grid.
type CohortMatrix struct {
	Rows  []CohortRow `json:"rows"`
	Weeks int         `json:"weeks"`
}

// FunnelStep is one step of the conversion funnel.
type FunnelStep struct {
	Step       string  `json:"step"`
	Users      int     `json:"users"`
	Conversion float64 `json:"conversion"` // percent of previous step, 100 for the first
}

// FunnelReport orders funnel steps by descending user count.
type FunnelReport struct {
	Steps []FunnelStep `json:"steps"`
}
