package insight

import (
	"fmt"

	"github.com/gamelens/gamelens/schema"
)

// Rule thresholds.
const (
	funnelDropPct     = 50.0 // step-to-step conversion below this is a leak
	qualityMissingPct = 10.0 // missing-value share that warrants a data warning
)

// metricInsights compares the computed metric blocks against the
// benchmark set and emits one insight per clear deviation.
func (g *Generator) metricInsights(in Input) []schema.Insight {
	if in.Metrics == nil {
		return nil
	}
	var out []schema.Insight
	b := g.benchmarks

	if ret := in.Metrics.Retention; ret != nil {
		if d1, ok := ret.Classic[1]; ok {
			switch {
			case d1 < b.RetentionD1Bad:
				out = append(out, schema.Insight{
					ID:             "retention-d1-low",
					Type:           schema.WarningInsight,
					Category:       "retention",
					Title:          "Day-1 retention is critically low",
					Description:    fmt.Sprintf("Only %.1f%% of users return the day after install, below the %.0f%% floor for healthy titles.", d1, b.RetentionD1Bad),
					Priority:       9,
					Impact:         schema.HighImpact,
					Recommendation: "Review the first-session experience: shorten the tutorial and surface the core loop earlier.",
					Confidence:     templateConfidence,
					Evidence:       []string{fmt.Sprintf("D1 retention: %.1f%%", d1)},
					Source:         schema.MetricSource,
					Actionable:     true,
				})
			case d1 >= b.RetentionD1Good:
				out = append(out, schema.Insight{
					ID:          "retention-d1-strong",
					Type:        schema.PositiveInsight,
					Category:    "retention",
					Title:       "Day-1 retention beats the benchmark",
					Description: fmt.Sprintf("%.1f%% of users come back on day 1, above the %.0f%% benchmark.", d1, b.RetentionD1Good),
					Priority:    5,
					Impact:      schema.MediumImpact,
					Confidence:  templateConfidence,
					Evidence:    []string{fmt.Sprintf("D1 retention: %.1f%%", d1)},
					Source:      schema.MetricSource,
				})
			}
		}
		if d7, ok := ret.Classic[7]; ok && d7 < b.RetentionD7Bad {
			out = append(out, schema.Insight{
				ID:             "retention-d7-low",
				Type:           schema.WarningInsight,
				Category:       "retention",
				Title:          "Week-one retention is collapsing",
				Description:    fmt.Sprintf("Day-7 retention is %.1f%%, below the %.0f%% floor. Most installs churn within a week.", d7, b.RetentionD7Bad),
				Priority:       8,
				Impact:         schema.HighImpact,
				Recommendation: "Add mid-term goals between day 2 and day 7: daily rewards, events, or a progression milestone.",
				Confidence:     templateConfidence,
				Evidence:       []string{fmt.Sprintf("D7 retention: %.1f%%", d7)},
				Source:         schema.MetricSource,
				Actionable:     true,
			})
		}
	}

	if mon := in.Metrics.Monetization; mon != nil {
		switch {
		case mon.ConversionRate < b.ConversionBad && mon.TotalUsers > 0:
			out = append(out, schema.Insight{
				ID:             "conversion-low",
				Type:           schema.OpportunityInsight,
				Category:       "monetization",
				Title:          "Payer conversion is below industry floor",
				Description:    fmt.Sprintf("%.2f%% of users pay (%d of %d), under the %.0f%% floor.", mon.ConversionRate, mon.PayingUsers, mon.TotalUsers, b.ConversionBad),
				Priority:       8,
				Impact:         schema.HighImpact,
				Recommendation: "Introduce a low-friction starter offer and test price points on the first purchase.",
				RevenueImpact:  mon.ARPPU * float64(mon.TotalUsers) * (b.ConversionBad - mon.ConversionRate) / 100,
				Confidence:     templateConfidence,
				Evidence:       []string{fmt.Sprintf("conversion: %.2f%%", mon.ConversionRate)},
				Source:         schema.MetricSource,
				Actionable:     true,
			})
		case mon.ConversionRate >= b.ConversionGood:
			out = append(out, schema.Insight{
				ID:          "conversion-strong",
				Type:        schema.PositiveInsight,
				Category:    "monetization",
				Title:       "Payer conversion beats the benchmark",
				Description: fmt.Sprintf("%.2f%% of users pay, above the %.0f%% benchmark.", mon.ConversionRate, b.ConversionGood),
				Priority:    5,
				Impact:      schema.MediumImpact,
				Confidence:  templateConfidence,
				Evidence:    []string{fmt.Sprintf("conversion: %.2f%%", mon.ConversionRate)},
				Source:      schema.MetricSource,
			})
		}
		if mon.ARPU < b.ARPUBad && mon.TotalRevenue > 0 {
			out = append(out, schema.Insight{
				ID:             "arpu-low",
				Type:           schema.OpportunityInsight,
				Category:       "monetization",
				Title:          "Revenue per user is under the floor",
				Description:    fmt.Sprintf("ARPU is $%.2f, under the $%.2f floor for comparable titles.", mon.ARPU, b.ARPUBad),
				Priority:       7,
				Impact:         schema.MediumImpact,
				Recommendation: "Audit the store layout and bundle pricing against top grossing peers.",
				Confidence:     templateConfidence,
				Evidence:       []string{fmt.Sprintf("ARPU: $%.2f", mon.ARPU)},
				Source:         schema.MetricSource,
				Actionable:     true,
			})
		}
	}

	if eng := in.Metrics.Engagement; eng != nil && eng.Stickiness > 0 {
		switch {
		case eng.Stickiness < b.StickinessBad:
			out = append(out, schema.Insight{
				ID:             "stickiness-low",
				Type:           schema.WarningInsight,
				Category:       "engagement",
				Title:          "Daily habit is not forming",
				Description:    fmt.Sprintf("DAU/MAU stickiness is %.2f, below the %.2f floor. Monthly users rarely come back daily.", eng.Stickiness, b.StickinessBad),
				Priority:       7,
				Impact:         schema.MediumImpact,
				Recommendation: "Add a daily reason to return: streak rewards, refreshing content, or social prompts.",
				Confidence:     templateConfidence,
				Evidence:       []string{fmt.Sprintf("stickiness: %.2f", eng.Stickiness)},
				Source:         schema.MetricSource,
				Actionable:     true,
			})
		case eng.Stickiness >= b.StickinessGood:
			out = append(out, schema.Insight{
				ID:          "stickiness-strong",
				Type:        schema.PositiveInsight,
				Category:    "engagement",
				Title:       "Players show a strong daily habit",
				Description: fmt.Sprintf("DAU/MAU stickiness is %.2f, above the %.2f benchmark.", eng.Stickiness, b.StickinessGood),
				Priority:    5,
				Impact:      schema.MediumImpact,
				Confidence:  templateConfidence,
				Evidence:    []string{fmt.Sprintf("stickiness: %.2f", eng.Stickiness)},
				Source:      schema.MetricSource,
			})
		}
	}
	return out
}

// progressionInsights flags difficulty spikes. Guarded to genres where
// level progression is the core loop; elsewhere a level column is
// usually incidental.
func (g *Generator) progressionInsights(in Input) []schema.Insight {
	if in.Metrics == nil || in.Metrics.Progression == nil {
		return nil
	}
	switch in.GameType.GameType {
	case schema.PuzzleGame, schema.RPGGame, schema.IdleGame, schema.CustomGame:
	default:
		return nil
	}
	prog := in.Metrics.Progression
	if len(prog.DifficultySpikes) == 0 {
		return nil
	}
	evidence := make([]string, 0, len(prog.DifficultySpikes))
	for _, lvl := range prog.DifficultySpikes {
		evidence = append(evidence, fmt.Sprintf("level %d", lvl))
	}
	return []schema.Insight{{
		ID:             "difficulty-spikes",
		Type:           schema.WarningInsight,
		Category:       "progression",
		Title:          "Difficulty spikes are blocking progression",
		Description:    fmt.Sprintf("%d level(s) show completion rates far below their neighbors, starting at level %d.", len(prog.DifficultySpikes), prog.DifficultySpikes[0]),
		Priority:       8,
		Impact:         schema.HighImpact,
		Recommendation: "Rebalance the flagged levels or add a booster offer where players stall.",
		Confidence:     templateConfidence,
		Evidence:       evidence,
		Source:         schema.TemplateSource,
		Actionable:     true,
	}}
}

// funnelInsights flags the single worst step-to-step drop in the
// funnel.
func (g *Generator) funnelInsights(in Input) []schema.Insight {
	if in.Funnel == nil || len(in.Funnel.Steps) < 2 {
		return nil
	}
	worst := -1
	worstConv := 100.0
	for i := 1; i < len(in.Funnel.Steps); i++ {
		if c := in.Funnel.Steps[i].Conversion; c < worstConv {
			worstConv = c
			worst = i
		}
	}
	if worst < 0 || worstConv >= funnelDropPct {
		return nil
	}
	from, to := in.Funnel.Steps[worst-1], in.Funnel.Steps[worst]
	return []schema.Insight{{
		ID:             "funnel-leak",
		Type:           schema.WarningInsight,
		Category:       "conversion",
		Title:          fmt.Sprintf("Funnel leaks at %s", to.Step),
		Description:    fmt.Sprintf("Only %.1f%% of users advance from %s to %s (%d of %d).", worstConv, from.Step, to.Step, to.Users, from.Users),
		Priority:       8,
		Impact:         schema.HighImpact,
		Recommendation: fmt.Sprintf("Instrument and simplify the %s step; it loses more users than any other.", to.Step),
		Confidence:     templateConfidence,
		Evidence:       []string{fmt.Sprintf("%s -> %s: %.1f%%", from.Step, to.Step, worstConv)},
		Source:         schema.TemplateSource,
		Actionable:     true,
	}}
}

// anomalyInsights rolls all anomalies of a metric into one insight,
// graded by the worst severity seen.
func (g *Generator) anomalyInsights(in Input) []schema.Insight {
	if len(in.Anomalies) == 0 {
		return nil
	}
	byMetric := make(map[string][]schema.Anomaly)
	var order []string
	for _, a := range in.Anomalies {
		if _, ok := byMetric[a.Metric]; !ok {
			order = append(order, a.Metric)
		}
		byMetric[a.Metric] = append(byMetric[a.Metric], a)
	}

	var out []schema.Insight
	for _, metricName := range order {
		group := byMetric[metricName]
		worst := schema.LowSeverity
		evidence := make([]string, 0, len(group))
		for _, a := range group {
			if schema.SeverityRank(a.Severity) > schema.SeverityRank(worst) {
				worst = a.Severity
			}
			evidence = append(evidence, a.Description)
		}
		priority := 6
		impact := schema.MediumImpact
		if worst == schema.HighSeverity {
			priority = 8
			impact = schema.HighImpact
		}
		out = append(out, schema.Insight{
			ID:             "anomaly-" + metricName,
			Type:           schema.WarningInsight,
			Category:       "anomaly",
			Title:          fmt.Sprintf("Unusual days detected in %s", metricName),
			Description:    fmt.Sprintf("%d day(s) deviate sharply from the %s average.", len(group), metricName),
			Priority:       priority,
			Impact:         impact,
			Recommendation: "Cross-check the flagged dates against releases, promotions, and tracking changes.",
			Confidence:     templateConfidence,
			Evidence:       evidence,
			Source:         schema.MetricSource,
			Actionable:     true,
		})
	}
	return out
}

// qualityInsights warns when missing values are widespread enough to
// distort the metrics above.
func (g *Generator) qualityInsights(in Input) []schema.Insight {
	if in.Plan == nil {
		return nil
	}
	var worstPct float64
	var worstCol string
	for _, issue := range in.Plan.Issues {
		if issue.Kind == schema.MissingValuesIssue && issue.AffectedPct > worstPct {
			worstPct = issue.AffectedPct
			worstCol = issue.Column
		}
	}
	if worstPct <= qualityMissingPct {
		return nil
	}
	return []schema.Insight{{
		ID:             "data-quality-missing",
		Type:           schema.WarningInsight,
		Category:       "data-quality",
		Title:          "Missing data may distort these results",
		Description:    fmt.Sprintf("Column %q is missing %.1f%% of its values; metrics derived from it are unreliable.", worstCol, worstPct),
		Priority:       6,
		Impact:         schema.MediumImpact,
		Recommendation: "Fix the event instrumentation for the affected column before acting on downstream metrics.",
		Confidence:     templateConfidence,
		Evidence:       []string{fmt.Sprintf("%s: %.1f%% missing", worstCol, worstPct)},
		Source:         schema.TemplateSource,
	}}
}

// genreTips are the generic fallback insights used to top up short
// result lists. They carry low priority so real findings always rank
// above them.
func genreTips(gameType schema.GameType) []schema.Insight {
	tip := func(id, title, description string) schema.Insight {
		return schema.Insight{
			ID:          id,
			Type:        schema.NeutralInsight,
			Category:    "general",
			Title:       title,
			Description: description,
			Priority:    2,
			Impact:      schema.LowImpact,
			Confidence:  templateConfidence,
			Source:      schema.TemplateSource,
		}
	}

	common := []schema.Insight{
		tip("tip-events", "Track more event context", "Adding platform, country, and app-version columns unlocks segmentation for every metric."),
		tip("tip-horizon", "Collect a longer window", "Thirty days or more of history makes retention and LTV projections materially more reliable."),
		tip("tip-sessions", "Log session boundaries", "Explicit session start and end events enable session length and frequency analysis."),
		tip("tip-versions", "Tag events with the build version", "A version column turns every regression hunt into a simple before-and-after comparison."),
	}

	var genre []schema.Insight
	switch gameType {
	case schema.PuzzleGame:
		genre = append(genre, tip("tip-puzzle", "Watch the difficulty curve", "Puzzle titles live or die on level pacing; track per-level completion continuously."))
	case schema.BattleRoyaleGame, schema.ShooterGame:
		genre = append(genre, tip("tip-combat", "Track match-level outcomes", "Placement and kill distributions reveal matchmaking balance problems early."))
	case schema.RPGGame:
		genre = append(genre, tip("tip-rpg", "Monitor banner economics", "Pull rates and pity progress per banner drive both revenue and sentiment."))
	case schema.CasinoGame:
		genre = append(genre, tip("tip-casino", "Balance payout ratios", "Bet size versus win amount per spin exposes over- or under-tuned machines."))
	case schema.IdleGame:
		genre = append(genre, tip("tip-idle", "Measure offline earnings claims", "The gap between sessions and the claim rate of offline earnings signals prestige pacing."))
	default:
		genre = append(genre, tip("tip-generic", "Define the core loop metric", "Pick one metric that captures your core loop and alert on its trend."))
	}
	return append(genre, common...)
}
