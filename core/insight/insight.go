// Package insight turns computed metrics, anomalies, and data-quality
// findings into ranked business insights. An optional external backend
// can contribute additional drafts; its failures never fail the run.
package insight

import (
	"context"
	"sort"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
)

// minInsights is the floor the generator tops up to with generic tips.
const minInsights = 5

// templateConfidence is assigned to every rule-derived insight.
const templateConfidence = 0.8

// Input carries everything the generator reads. All pointer fields are
// optional; missing blocks simply produce no insights of that kind.
type Input struct {
	GameType      schema.GameTypeResult
	Meanings      []schema.ColumnMeaning
	Metrics       *schema.CalculatedMetrics
	Anomalies     []schema.Anomaly
	Funnel        *schema.FunnelReport
	Plan          *schema.CleaningPlan
	Snapshot      schema.DataSnapshot
	LevelStats    []schema.LevelStat
	PlatformSplit map[string]int
	CountrySplit  map[string]int
}

// Generator produces ranked insights.
type Generator struct {
	benchmarks    contract.Benchmarks
	minConfidence float64
	backend       contract.InsightBackend
}

// NewGenerator constructs a Generator with the given benchmark set and
// confidence floor.
func NewGenerator(benchmarks contract.Benchmarks, minConfidence float64) *Generator {
	return &Generator{benchmarks: benchmarks, minConfidence: minConfidence}
}

// WithBackend attaches an external insight backend and returns the
// generator for chaining.
func (g *Generator) WithBackend(backend contract.InsightBackend) *Generator {
	g.backend = backend
	return g
}

// Generate builds the final ranked insight list: rule-based insights
// first, then external drafts merged in, deduplicated by ID and
// normalized title, filtered by the confidence floor, sorted by
// priority then impact, and topped up to minInsights with generic
// genre tips when the dataset yields too few findings.
func (g *Generator) Generate(ctx context.Context, in Input) []schema.Insight {
	var insights []schema.Insight
	insights = append(insights, g.metricInsights(in)...)
	insights = append(insights, g.progressionInsights(in)...)
	insights = append(insights, g.funnelInsights(in)...)
	insights = append(insights, g.anomalyInsights(in)...)
	insights = append(insights, g.qualityInsights(in)...)

	if g.backend != nil {
		external, err := g.externalInsights(ctx, in)
		if err != nil {
			contract.LogWarn("insight backend failed, continuing with rule-based insights", err)
		} else {
			insights = append(insights, external...)
		}
	}

	insights = dedupe(insights)
	insights = g.filterConfidence(insights)
	sortInsights(insights)

	if len(insights) < minInsights {
		insights = g.topUp(insights, in.GameType.GameType)
		sortInsights(insights)
	}
	return insights
}

// dedupe drops later insights whose ID or normalized title was already
// seen. Rule-based insights precede external ones in the slice, so
// rule-based wins on collision.
func dedupe(insights []schema.Insight) []schema.Insight {
	seenID := make(map[string]struct{}, len(insights))
	seenTitle := make(map[string]struct{}, len(insights))
	out := insights[:0]
	for _, ins := range insights {
		title := schema.NormalizeTitle(ins.Title)
		if _, dup := seenID[ins.ID]; dup && ins.ID != "" {
			continue
		}
		if _, dup := seenTitle[title]; dup {
			continue
		}
		if ins.ID != "" {
			seenID[ins.ID] = struct{}{}
		}
		seenTitle[title] = struct{}{}
		out = append(out, ins)
	}
	return out
}

func (g *Generator) filterConfidence(insights []schema.Insight) []schema.Insight {
	out := insights[:0]
	for _, ins := range insights {
		if ins.Confidence >= g.minConfidence {
			out = append(out, ins)
		}
	}
	return out
}

// sortInsights orders by priority descending, then impact tier, then
// title for determinism.
func sortInsights(insights []schema.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Priority != insights[j].Priority {
			return insights[i].Priority > insights[j].Priority
		}
		ri, rj := schema.ImpactRank(insights[i].Impact), schema.ImpactRank(insights[j].Impact)
		if ri != rj {
			return ri > rj
		}
		return insights[i].Title < insights[j].Title
	})
}

// topUp appends generic genre-tagged tips until the floor is met,
// skipping tips whose title is already present.
func (g *Generator) topUp(insights []schema.Insight, gameType schema.GameType) []schema.Insight {
	seen := make(map[string]struct{}, len(insights))
	for _, ins := range insights {
		seen[schema.NormalizeTitle(ins.Title)] = struct{}{}
	}
	for _, tip := range genreTips(gameType) {
		if len(insights) >= minInsights {
			break
		}
		if _, dup := seen[schema.NormalizeTitle(tip.Title)]; dup {
			continue
		}
		seen[schema.NormalizeTitle(tip.Title)] = struct{}{}
		insights = append(insights, tip)
	}
	return insights
}
