// Package metric computes standard product metrics from semantically
// typed telemetry tables: retention, engagement, monetization and
// progression.
package metric

import (
	"time"

	"github.com/gamelens/gamelens/schema"
)

// Row-count confidence bonuses.
const (
	rowBonusThreshold    = 1000
	bigRowBonusThreshold = 10000
	rowBonus             = 0.05
)

// driverColumns are the five canonical columns metric confidence is
// measured against.
var driverColumns = []schema.SemanticType{
	schema.SemUserID,
	schema.SemTimestamp,
	schema.SemSessionID,
	schema.SemRevenue,
	schema.SemLevel,
}

// Options tune a calculation run.
type Options struct {
	RetentionHorizons []int // cohort horizons in days, default 1/3/7/14/30
	LTVHorizonDays    int   // default 30
}

func (o Options) withDefaults() Options {
	if len(o.RetentionHorizons) == 0 {
		o.RetentionHorizons = []int{1, 3, 7, 14, 30}
	}
	if o.LTVHorizonDays <= 0 {
		o.LTVHorizonDays = 30
	}
	return o
}

// Calculator computes metrics over sampled tables. It is stateless
// and safe for concurrent use.
type Calculator struct {
	opts Options
}

// NewCalculator constructs a Calculator.
func NewCalculator(opts Options) *Calculator {
	return &Calculator{opts: opts.withDefaults()}
}

// Calculate computes every metric block whose required semantic
// columns are present. Absent blocks stay nil, never zero; callers
// must branch on presence.
func (c *Calculator) Calculate(table *schema.Table, meanings []schema.ColumnMeaning) *schema.CalculatedMetrics {
	events := extractEvents(table, meanings)

	out := &schema.CalculatedMetrics{
		Confidence: c.confidence(meanings, table.RowCount()),
	}

	if events.hasUsers() && events.hasTimes() {
		out.Retention = c.retention(events)
		out.Engagement = c.engagement(events)
	}
	if events.hasUsers() && events.hasRevenue() {
		out.Monetization = c.monetization(events, out.Retention)
	}
	if events.hasUsers() && events.hasLevels() {
		out.Progression = c.progression(events)
	}
	return out
}

// confidence reflects how many of the five canonical driver columns
// were present, with a small bonus for larger row counts.
func (c *Calculator) confidence(meanings []schema.ColumnMeaning, rows int) float64 {
	present := schema.SemanticSet(meanings)
	found := 0
	for _, d := range driverColumns {
		if _, ok := present[d]; ok {
			found++
		}
	}
	conf := float64(found) / float64(len(driverColumns))
	if rows >= rowBonusThreshold {
		conf += rowBonus
	}
	if rows >= bigRowBonusThreshold {
		conf += rowBonus
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// event is one normalized telemetry record. Zero/empty fields mean the
// source column was absent or unparseable for that row.
type event struct {
	user    string
	session string
	when    time.Time
	hasTime bool
	revenue float64
	hasRev  bool
	level   int
	hasLvl  bool
	funnel  string
	source  string
}

// eventSet is the normalized dataset the individual metric files
// consume.
type eventSet struct {
	events     []event
	userCol    *schema.ColumnMeaning
	sessionCol *schema.ColumnMeaning
	timeCol    *schema.ColumnMeaning
	revenueCol *schema.ColumnMeaning
	levelCol   *schema.ColumnMeaning
	funnelCol  *schema.ColumnMeaning
	maxDay     time.Time
	minDay     time.Time
}

func (e *eventSet) hasUsers() bool   { return e.userCol != nil }
func (e *eventSet) hasTimes() bool   { return e.timeCol != nil && !e.maxDay.IsZero() }
func (e *eventSet) hasRevenue() bool { return e.revenueCol != nil }
func (e *eventSet) hasLevels() bool  { return e.levelCol != nil }
func (e *eventSet) hasFunnel() bool  { return e.funnelCol != nil }

// extractEvents normalizes rows once so every metric block works over
// the same typed view. A row with a degenerate value in one dimension
// still contributes its other dimensions.
func extractEvents(table *schema.Table, meanings []schema.ColumnMeaning) *eventSet {
	es := &eventSet{
		userCol:    schema.FindMeaning(meanings, schema.SemUserID),
		sessionCol: schema.FindMeaning(meanings, schema.SemSessionID),
		timeCol:    schema.FindMeaning(meanings, schema.SemTimestamp),
		revenueCol: schema.FindMeaning(meanings, schema.SemRevenue),
		levelCol:   schema.FindMeaning(meanings, schema.SemLevel),
		funnelCol:  schema.FindMeaning(meanings, schema.SemFunnelStep),
	}

	// Revenue source segmentation prefers platform, then banner, then
	// item, whichever the dataset has.
	sourceCol := schema.FindMeaning(meanings, schema.SemPlatform)
	if sourceCol == nil {
		sourceCol = schema.FindMeaning(meanings, schema.SemBanner)
	}
	if sourceCol == nil {
		sourceCol = schema.FindMeaning(meanings, schema.SemItem)
	}

	es.events = make([]event, 0, table.RowCount())
	for _, r := range table.Rows {
		var ev event
		if es.userCol != nil {
			ev.user = schema.AsString(r[es.userCol.Column])
		}
		if es.sessionCol != nil {
			ev.session = schema.AsString(r[es.sessionCol.Column])
		}
		if es.timeCol != nil {
			if t, ok := schema.AsTime(r[es.timeCol.Column]); ok {
				ev.when = t
				ev.hasTime = true
				day := schema.DayOf(t)
				if es.maxDay.IsZero() || day.After(es.maxDay) {
					es.maxDay = day
				}
				if es.minDay.IsZero() || day.Before(es.minDay) {
					es.minDay = day
				}
			}
		}
		if es.revenueCol != nil {
			if f, ok := schema.AsFloat(r[es.revenueCol.Column]); ok {
				ev.revenue = f
				ev.hasRev = true
			}
		}
		if es.levelCol != nil {
			if f, ok := schema.AsFloat(r[es.levelCol.Column]); ok && f >= 0 {
				ev.level = int(f)
				ev.hasLvl = true
			}
		}
		if es.funnelCol != nil {
			ev.funnel = schema.AsString(r[es.funnelCol.Column])
		}
		if sourceCol != nil {
			ev.source = schema.AsString(r[sourceCol.Column])
		}
		es.events = append(es.events, ev)
	}
	return es
}
