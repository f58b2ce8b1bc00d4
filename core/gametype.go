package core

import (
	"fmt"
	"sort"

	"github.com/gamelens/gamelens/schema"
)

// Detector tuning constants.
const (
	confidenceBoost  = 0.3
	confidenceCap    = 0.95
	customConfidence = 0.3
	// minScoreGap is the winning margin below which the detector
	// refuses to claim a genre and falls back to custom. This prevents
	// false-positive genre claims on ambiguous data.
	minScoreGap = 2.0
)

// genreIndicator is one weighted signal set. A genre earns
// weight x matchedSignals for each indicator with at least one matched
// signal, so partial matches still count, scaled by match count.
type genreIndicator struct {
	Signals []schema.SemanticType
	Weight  float64
}

// genreIndicators maps each claimable genre to its indicator list.
var genreIndicators = map[schema.GameType][]genreIndicator{
	schema.BattleRoyaleGame: {
		{Signals: []schema.SemanticType{schema.SemPlacement, schema.SemKills, schema.SemDamage}, Weight: 3},
		{Signals: []schema.SemanticType{schema.SemWeapon, schema.SemDeaths}, Weight: 2},
	},
	schema.ShooterGame: {
		{Signals: []schema.SemanticType{schema.SemKills, schema.SemDeaths, schema.SemWeapon}, Weight: 3},
		{Signals: []schema.SemanticType{schema.SemDamage, schema.SemScore}, Weight: 1.5},
	},
	schema.PuzzleGame: {
		{Signals: []schema.SemanticType{schema.SemLevel, schema.SemMoves, schema.SemLives}, Weight: 3},
		{Signals: []schema.SemanticType{schema.SemScore}, Weight: 1},
	},
	schema.RPGGame: {
		{Signals: []schema.SemanticType{schema.SemCharacter, schema.SemQuest, schema.SemGuild}, Weight: 3},
		{Signals: []schema.SemanticType{schema.SemRarity, schema.SemBanner, schema.SemItem}, Weight: 2},
		{Signals: []schema.SemanticType{schema.SemLevel}, Weight: 0.5},
	},
	schema.CasinoGame: {
		{Signals: []schema.SemanticType{schema.SemSpins, schema.SemBet}, Weight: 4},
		{Signals: []schema.SemanticType{schema.SemCurrency, schema.SemRevenue}, Weight: 1},
	},
	schema.StrategyGame: {
		{Signals: []schema.SemanticType{schema.SemGuild, schema.SemQuest}, Weight: 2},
		{Signals: []schema.SemanticType{schema.SemLevel, schema.SemScore}, Weight: 1},
	},
	schema.IdleGame: {
		{Signals: []schema.SemanticType{schema.SemCurrency, schema.SemItem, schema.SemLevel}, Weight: 1.5},
		{Signals: []schema.SemanticType{schema.SemPlaytime}, Weight: 1},
	},
	schema.RacingGame: {
		{Signals: []schema.SemanticType{schema.SemPlacement, schema.SemScore}, Weight: 2},
		{Signals: []schema.SemanticType{schema.SemItem, schema.SemLevel}, Weight: 1},
	},
}

// Detector classifies a dataset's game genre from the semantic types
// the analyzer found. It is stateless and safe for concurrent use.
type Detector struct{}

// NewDetector constructs a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scores every genre against the present semantic types and
// picks the winner. Ambiguous datasets (zero top score, or a winning
// gap under minScoreGap) classify as custom at a fixed confidence.
func (d *Detector) Detect(meanings []schema.ColumnMeaning) schema.GameTypeResult {
	present := schema.SemanticSet(meanings)

	type scored struct {
		genre   schema.GameType
		score   float64
		reasons []string
	}

	results := make([]scored, 0, len(genreIndicators))
	for genre, indicators := range genreIndicators {
		var total float64
		var reasons []string
		for _, ind := range indicators {
			matched := 0
			for _, sig := range ind.Signals {
				if _, ok := present[sig]; ok {
					matched++
				}
			}
			if matched == 0 {
				continue
			}
			total += ind.Weight * float64(matched)
			reasons = append(reasons, fmt.Sprintf("%d/%d %s signals present", matched, len(ind.Signals), genre))
		}
		results = append(results, scored{genre: genre, score: total, reasons: reasons})
	}

	// Deterministic ordering: score descending, genre name as tie-break.
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].genre < results[j].genre
	})

	top := results[0]
	second := results[1]
	if top.score == 0 || top.score-second.score < minScoreGap {
		return schema.GameTypeResult{
			GameType:   schema.CustomGame,
			Confidence: customConfidence,
			Reasons:    []string{"signals too ambiguous for a confident genre claim"},
		}
	}

	confidence := top.score/maxPossibleScore() + confidenceBoost
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return schema.GameTypeResult{
		GameType:   top.genre,
		Confidence: confidence,
		Reasons:    top.reasons,
	}
}

// maxPossibleScore is the highest score any genre could theoretically
// reach with every signal present.
func maxPossibleScore() float64 {
	var best float64
	for _, indicators := range genreIndicators {
		var total float64
		for _, ind := range indicators {
			total += ind.Weight * float64(len(ind.Signals))
		}
		if total > best {
			best = total
		}
	}
	return best
}
