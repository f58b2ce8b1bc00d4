// Package chart recommends visualizations and a dashboard layout from
// the detected column semantics and game genre.
package chart

import (
	"sort"

	"github.com/gamelens/gamelens/schema"
)

// Selection constants.
const (
	maxRecommendations  = 12
	essentialPriority   = 10
	essentialConfidence = 0.95
	kindBoost           = 2
	titleBoost          = 1
)

// Layout bucket caps.
const (
	maxKPIs      = 4
	maxMain      = 4
	maxSide      = 4
	maxSecondary = 6
	// secondaryMinPriority gates what spills into the secondary bucket.
	secondaryMinPriority = 6
)

// template describes one candidate chart keyed by the semantic columns
// it needs.
type template struct {
	Kind        schema.ChartKind
	Title       string
	Description string
	Required    []schema.SemanticType
	Priority    int
	Category    schema.ChartCategory
}

// essentialCatalog charts are always included at top priority whenever
// their required columns exist. They guarantee a baseline dashboard.
var essentialCatalog = []template{
	{schema.LineChart, "Revenue Over Time", "Daily revenue trend", []schema.SemanticType{schema.SemRevenue, schema.SemTimestamp}, essentialPriority, schema.TrendCategory},
	{schema.CohortChart, "Retention Cohorts", "Weekly cohort retention grid", []schema.SemanticType{schema.SemUserID, schema.SemTimestamp}, essentialPriority, schema.TrendCategory},
	{schema.PieChart, "Spend Segmentation", "Revenue split across spender segments", []schema.SemanticType{schema.SemRevenue, schema.SemUserID}, essentialPriority, schema.DistributionCategory},
	{schema.FunnelChart, "Conversion Funnel", "Step-by-step drop-off through the funnel", []schema.SemanticType{schema.SemFunnelStep, schema.SemUserID}, essentialPriority, schema.ConversionCategory},
}

// templateCatalog is the scored candidate pool scanned after the
// essentials.
var templateCatalog = []template{
	{schema.KPIChart, "Total Revenue", "Headline revenue figure", []schema.SemanticType{schema.SemRevenue}, 8, schema.KPICategory},
	{schema.KPIChart, "Active Users", "Headline unique-user figure", []schema.SemanticType{schema.SemUserID}, 8, schema.KPICategory},
	{schema.KPIChart, "Stickiness", "DAU over MAU ratio", []schema.SemanticType{schema.SemUserID, schema.SemTimestamp}, 7, schema.KPICategory},
	{schema.LineChart, "Daily Active Users", "Unique users per day", []schema.SemanticType{schema.SemUserID, schema.SemTimestamp}, 8, schema.TrendCategory},
	{schema.LineChart, "Score Trend", "Average score per day", []schema.SemanticType{schema.SemScore, schema.SemTimestamp}, 5, schema.TrendCategory},
	{schema.AreaChart, "Session Activity", "Sessions per day", []schema.SemanticType{schema.SemSessionID, schema.SemTimestamp}, 6, schema.TrendCategory},
	{schema.BarChart, "Level Completion", "Completion rate per level", []schema.SemanticType{schema.SemLevel, schema.SemUserID}, 7, schema.ComparisonCategory},
	{schema.LineChart, "Difficulty Curve", "Average attempts per level", []schema.SemanticType{schema.SemLevel, schema.SemMoves}, 6, schema.TrendCategory},
	{schema.HistogramChart, "Session Length", "Distribution of session durations", []schema.SemanticType{schema.SemPlaytime}, 6, schema.DistributionCategory},
	{schema.HistogramChart, "Kills Distribution", "Per-match kill counts", []schema.SemanticType{schema.SemKills}, 5, schema.DistributionCategory},
	{schema.HistogramChart, "Placement Spread", "Final placement distribution", []schema.SemanticType{schema.SemPlacement}, 6, schema.DistributionCategory},
	{schema.PieChart, "Platform Breakdown", "Users per platform", []schema.SemanticType{schema.SemPlatform}, 6, schema.DistributionCategory},
	{schema.BarChart, "Top Countries", "Users per country", []schema.SemanticType{schema.SemCountry}, 5, schema.ComparisonCategory},
	{schema.BarChart, "Revenue By Platform", "Revenue split per platform", []schema.SemanticType{schema.SemRevenue, schema.SemPlatform}, 7, schema.ComparisonCategory},
	{schema.BarChart, "Banner Performance", "Revenue per banner", []schema.SemanticType{schema.SemBanner, schema.SemRevenue}, 6, schema.ComparisonCategory},
	{schema.PieChart, "Rarity Distribution", "Item pulls per rarity tier", []schema.SemanticType{schema.SemRarity}, 5, schema.DistributionCategory},
	{schema.BarChart, "Top Items", "Most purchased items", []schema.SemanticType{schema.SemItem, schema.SemRevenue}, 5, schema.ComparisonCategory},
	{schema.HeatmapChart, "Activity Heatmap", "Events by hour and weekday", []schema.SemanticType{schema.SemTimestamp}, 4, schema.DistributionCategory},
	{schema.ScatterChart, "Bet vs Win", "Wager size against payout", []schema.SemanticType{schema.SemBet, schema.SemRevenue}, 5, schema.ComparisonCategory},
	{schema.BarChart, "Quest Completion", "Completions per quest", []schema.SemanticType{schema.SemQuest, schema.SemUserID}, 5, schema.ComparisonCategory},
}

// genrePreferences boost templates that fit the detected genre.
type genrePreference struct {
	Kinds      []schema.ChartKind
	AlwaysShow []string // template titles hand-curated for the genre
}

var genrePreferences = map[schema.GameType]genrePreference{
	schema.PuzzleGame: {
		Kinds:      []schema.ChartKind{schema.BarChart, schema.LineChart},
		AlwaysShow: []string{"Level Completion", "Difficulty Curve"},
	},
	schema.BattleRoyaleGame: {
		Kinds:      []schema.ChartKind{schema.HistogramChart},
		AlwaysShow: []string{"Placement Spread", "Kills Distribution"},
	},
	schema.ShooterGame: {
		Kinds:      []schema.ChartKind{schema.HistogramChart, schema.ScatterChart},
		AlwaysShow: []string{"Kills Distribution"},
	},
	schema.RPGGame: {
		Kinds:      []schema.ChartKind{schema.BarChart, schema.PieChart},
		AlwaysShow: []string{"Banner Performance", "Rarity Distribution"},
	},
	schema.CasinoGame: {
		Kinds:      []schema.ChartKind{schema.ScatterChart, schema.KPIChart},
		AlwaysShow: []string{"Bet vs Win"},
	},
	schema.StrategyGame: {
		Kinds:      []schema.ChartKind{schema.BarChart},
		AlwaysShow: []string{"Quest Completion"},
	},
	schema.IdleGame: {
		Kinds:      []schema.ChartKind{schema.LineChart, schema.AreaChart},
		AlwaysShow: []string{"Session Activity"},
	},
	schema.RacingGame: {
		Kinds:      []schema.ChartKind{schema.HistogramChart},
		AlwaysShow: []string{"Placement Spread"},
	},
}

// Selector recommends charts. It is stateless and safe for concurrent
// use.
type Selector struct{}

// NewSelector constructs a Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Recommend returns at most maxRecommendations charts, essential
// entries first, then by priority. Duplicate (kind, title) pairs are
// dropped with essential winning over template.
func (s *Selector) Recommend(meanings []schema.ColumnMeaning, gameType schema.GameType) []schema.ChartRecommendation {
	confidences := make(map[schema.SemanticType]float64, len(meanings))
	for _, m := range meanings {
		if m.Semantic == schema.SemUnknown {
			continue
		}
		if c, ok := confidences[m.Semantic]; !ok || m.Confidence > c {
			confidences[m.Semantic] = m.Confidence
		}
	}

	seen := make(map[string]struct{})
	var out []schema.ChartRecommendation

	for _, t := range essentialCatalog {
		cols, ok := requiredColumns(t, meanings)
		if !ok {
			continue
		}
		rec := schema.ChartRecommendation{
			Kind:            t.Kind,
			Title:           t.Title,
			Description:     t.Description,
			RequiredColumns: cols,
			Priority:        essentialPriority,
			Confidence:      essentialConfidence,
			Essential:       true,
			Category:        t.Category,
		}
		if _, dup := seen[rec.DedupKey()]; dup {
			continue
		}
		seen[rec.DedupKey()] = struct{}{}
		out = append(out, rec)
	}

	pref := genrePreferences[gameType]
	var scored []schema.ChartRecommendation
	for _, t := range templateCatalog {
		cols, ok := requiredColumns(t, meanings)
		if !ok {
			continue
		}
		priority := t.Priority
		for _, k := range pref.Kinds {
			if t.Kind == k {
				priority += kindBoost
				break
			}
		}
		for _, title := range pref.AlwaysShow {
			if t.Title == title {
				priority += titleBoost
				break
			}
		}
		if priority > essentialPriority {
			priority = essentialPriority
		}
		rec := schema.ChartRecommendation{
			Kind:            t.Kind,
			Title:           t.Title,
			Description:     t.Description,
			RequiredColumns: cols,
			Priority:        priority,
			Confidence:      meanConfidence(t.Required, confidences),
			Category:        t.Category,
		}
		if _, dup := seen[rec.DedupKey()]; dup {
			continue
		}
		seen[rec.DedupKey()] = struct{}{}
		scored = append(scored, rec)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Priority > scored[j].Priority
	})
	out = append(out, scored...)
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

// requiredColumns resolves a template's semantic requirements to real
// column names, failing when any is absent.
func requiredColumns(t template, meanings []schema.ColumnMeaning) ([]string, bool) {
	cols := make([]string, 0, len(t.Required))
	for _, sem := range t.Required {
		m := schema.FindMeaning(meanings, sem)
		if m == nil {
			return nil, false
		}
		cols = append(cols, m.Column)
	}
	return cols, true
}

// meanConfidence is the average detector confidence of the template's
// required semantic types.
func meanConfidence(required []schema.SemanticType, confidences map[schema.SemanticType]float64) float64 {
	if len(required) == 0 {
		return 0
	}
	var sum float64
	for _, sem := range required {
		sum += confidences[sem]
	}
	return sum / float64(len(required))
}

// DashboardLayout partitions recommendations into the four dashboard
// buckets: kpi charts first, trend/funnel kinds into main,
// distribution/comparison kinds into side, and any remaining
// high-priority entry into secondary. Essential entries order first
// within each bucket.
func (s *Selector) DashboardLayout(recs []schema.ChartRecommendation) schema.DashboardLayout {
	ordered := append([]schema.ChartRecommendation(nil), recs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Essential != ordered[j].Essential {
			return ordered[i].Essential
		}
		return ordered[i].Priority > ordered[j].Priority
	})

	var layout schema.DashboardLayout
	placed := make(map[string]struct{})

	place := func(rec schema.ChartRecommendation, bucket *[]schema.ChartRecommendation, limit int) bool {
		if len(*bucket) >= limit {
			return false
		}
		if _, dup := placed[rec.Title]; dup {
			return false
		}
		*bucket = append(*bucket, rec)
		placed[rec.Title] = struct{}{}
		return true
	}

	for _, rec := range ordered {
		switch {
		case rec.Category == schema.KPICategory || rec.Kind == schema.KPIChart:
			place(rec, &layout.KPIs, maxKPIs)
		case rec.Category == schema.TrendCategory || rec.Category == schema.ConversionCategory,
			rec.Kind == schema.LineChart, rec.Kind == schema.AreaChart,
			rec.Kind == schema.FunnelChart, rec.Kind == schema.CohortChart:
			place(rec, &layout.MainCharts, maxMain)
		case rec.Category == schema.DistributionCategory || rec.Category == schema.ComparisonCategory:
			place(rec, &layout.SideCharts, maxSide)
		}
	}

	// Whatever did not fit but still carries real priority lands in
	// the secondary bucket.
	for _, rec := range ordered {
		if _, dup := placed[rec.Title]; dup {
			continue
		}
		if rec.Priority < secondaryMinPriority {
			continue
		}
		place(rec, &layout.SecondaryCharts, maxSecondary)
	}
	return layout
}
