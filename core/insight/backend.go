package insight

import (
	"context"
	"fmt"

	"github.com/gamelens/gamelens/schema"
)

// Defaults applied to external drafts with missing fields.
const (
	draftDefaultPriority   = 5
	draftDefaultConfidence = 0.6
)

// externalInsights calls the attached backend and converts its drafts
// into full insights. Drafts without a title are dropped; everything
// else gets defaults filled in.
func (g *Generator) externalInsights(ctx context.Context, in Input) ([]schema.Insight, error) {
	resp, err := g.backend.GenerateInsights(ctx, schema.InsightContext{
		GameType:      in.GameType.GameType,
		Meanings:      in.Meanings,
		Metrics:       in.Metrics,
		Anomalies:     in.Anomalies,
		Snapshot:      in.Snapshot,
		LevelStats:    in.LevelStats,
		PlatformSplit: in.PlatformSplit,
		CountrySplit:  in.CountrySplit,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	out := make([]schema.Insight, 0, len(resp.Insights))
	for i, draft := range resp.Insights {
		if draft.Title == "" {
			continue
		}
		out = append(out, fromDraft(i, draft))
	}
	return out, nil
}

// fromDraft normalizes one backend draft into a full insight.
func fromDraft(index int, draft schema.InsightDraft) schema.Insight {
	ins := schema.Insight{
		ID:             draft.ID,
		Type:           draftType(draft.Type),
		Category:       draft.Category,
		Title:          draft.Title,
		Description:    draft.Description,
		Priority:       draft.Priority,
		Recommendation: draft.Recommendation,
		Confidence:     draft.Confidence,
		Evidence:       draft.Evidence,
		Source:         schema.BackendSource,
		Actionable:     draft.Recommendation != "",
	}
	if ins.ID == "" {
		ins.ID = fmt.Sprintf("external-%d", index)
	}
	if ins.Category == "" {
		ins.Category = "general"
	}
	if ins.Priority <= 0 || ins.Priority > 10 {
		ins.Priority = draftDefaultPriority
	}
	if ins.Confidence <= 0 || ins.Confidence > 1 {
		ins.Confidence = draftDefaultConfidence
	}
	ins.Impact = impactForPriority(ins.Priority)
	return ins
}

func draftType(s string) schema.InsightType {
	switch schema.InsightType(s) {
	case schema.PositiveInsight, schema.WarningInsight, schema.OpportunityInsight:
		return schema.InsightType(s)
	default:
		return schema.NeutralInsight
	}
}

func impactForPriority(priority int) schema.ImpactTier {
	switch {
	case priority >= 8:
		return schema.HighImpact
	case priority >= 5:
		return schema.MediumImpact
	default:
		return schema.LowImpact
	}
}
