package core

import (
	"testing"

	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
)

func meaningsFor(types ...schema.SemanticType) []schema.ColumnMeaning {
	out := make([]schema.ColumnMeaning, len(types))
	for i, st := range types {
		out[i] = schema.ColumnMeaning{Column: string(st), Semantic: st, Confidence: 0.85}
	}
	return out
}

func TestDetectBattleRoyale(t *testing.T) {
	meanings := meaningsFor(
		schema.SemPlacement, schema.SemKills, schema.SemDamage,
		schema.SemWeapon, schema.SemDeaths,
	)

	result := NewDetector().Detect(meanings)

	assert.Equal(t, schema.BattleRoyaleGame, result.GameType)
	assert.Equal(t, confidenceCap, result.Confidence)
	assert.NotEmpty(t, result.Reasons)
}

func TestDetectCasino(t *testing.T) {
	result := NewDetector().Detect(meaningsFor(schema.SemSpins, schema.SemBet))

	assert.Equal(t, schema.CasinoGame, result.GameType)
	assert.Greater(t, result.Confidence, customConfidence)
	assert.LessOrEqual(t, result.Confidence, confidenceCap)
}

func TestDetectAmbiguousFallsBackToCustom(t *testing.T) {
	tests := []struct {
		name     string
		meanings []schema.ColumnMeaning
	}{
		{"no signals at all", meaningsFor(schema.SemUserID, schema.SemTimestamp)},
		{"empty meanings", nil},
		// Level alone scores several genres within the minimum gap.
		{"shared weak signal", meaningsFor(schema.SemLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewDetector().Detect(tt.meanings)

			assert.Equal(t, schema.CustomGame, result.GameType)
			assert.Equal(t, customConfidence, result.Confidence)
			assert.Equal(t, []string{"signals too ambiguous for a confident genre claim"}, result.Reasons)
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	meanings := meaningsFor(schema.SemKills, schema.SemDeaths, schema.SemWeapon, schema.SemScore)

	d := NewDetector()
	first := d.Detect(meanings)
	for range 10 {
		assert.Equal(t, first, d.Detect(meanings))
	}
}
