// Package semantic infers the business meaning of raw telemetry columns.
package semantic

import (
	"regexp"
	"strings"

	"github.com/gamelens/gamelens/schema"
)

// Confidence constants for the different inference paths.
const (
	nameMatchConfidence  = 0.85
	dateValueConfidence  = 0.70
	countryConfidence    = 0.60
	priceGuessConfidence = 0.50
)

// maxSampleValues caps how many values per column feed value-based
// inference.
const maxSampleValues = 100

// patternEntry binds one semantic type to its name patterns. The table
// below is an ordered slice on purpose: the first semantic type whose
// pattern list matches wins, and earlier entries are intentionally
// more specific than later ones. Do not reorder casually.
type patternEntry struct {
	Semantic schema.SemanticType
	Patterns []*regexp.Regexp
}

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		compiled[i] = regexp.MustCompile(e)
	}
	return compiled
}

// namePatterns is the ordered inference table. Matching is done on the
// lowercased column name.
var namePatterns = []patternEntry{
	{schema.SemSessionID, patterns(`session`, `^visit`)},
	{schema.SemUserID, patterns(`user.?id`, `player.?id`, `^uid$`, `account`, `^user$`, `^player$`, `customer`)},
	{schema.SemTimestamp, patterns(`timestamp`, `^ts$`, `event.?time`, `^date`, `_date$`, `_at$`, `^time$`, `datetime`)},
	{schema.SemRetentionDay, patterns(`retention`, `day.?n`, `^d[0-9]+$`, `days?_since`)},
	{schema.SemFunnelStep, patterns(`funnel`, `step`, `stage`, `onboard`)},
	{schema.SemRevenue, patterns(`revenue`, `purchase.?amount`, `gross`, `iap`, `payment`, `^spend`, `transaction.?amount`)},
	{schema.SemPrice, patterns(`price`, `^cost$`, `unit.?amount`)},
	{schema.SemCurrency, patterns(`currency`, `^cur$`)},
	{schema.SemAppVersion, patterns(`app.?version`, `build.?version`, `^version$`, `^ver$`)},
	{schema.SemPlatform, patterns(`platform`, `^os$`, `operating`)},
	{schema.SemDevice, patterns(`device`, `model`, `hardware`)},
	{schema.SemCountry, patterns(`country`, `geo`, `region`, `locale`)},
	{schema.SemEventName, patterns(`event.?name`, `event.?type`, `^event$`, `^action$`)},
	{schema.SemPlaytime, patterns(`playtime`, `duration`, `time.?spent`, `session.?length`)},
	{schema.SemKills, patterns(`kills?$`, `^frags?$`, `elimination`)},
	{schema.SemDeaths, patterns(`deaths?$`)},
	{schema.SemDamage, patterns(`damage`, `^dmg$`)},
	{schema.SemPlacement, patterns(`placement`, `^rank$`, `finish.?position`, `^position$`)},
	{schema.SemWeapon, patterns(`weapon`, `^gun$`)},
	{schema.SemRarity, patterns(`rarity`, `^tier$`, `grade`)},
	{schema.SemBanner, patterns(`banner`, `gacha`, `^pool$`)},
	{schema.SemSpins, patterns(`spins?$`, `^rolls?$`)},
	{schema.SemBet, patterns(`^bets?`, `wager`, `stake`)},
	{schema.SemLives, patterns(`lives`, `hearts`)},
	{schema.SemMoves, patterns(`moves?$`, `attempts`)},
	{schema.SemQuest, patterns(`quest`, `mission`, `task`)},
	{schema.SemCharacter, patterns(`character`, `hero`, `champion`, `unit`)},
	{schema.SemGuild, patterns(`guild`, `clan`, `alliance`)},
	{schema.SemScore, patterns(`score`, `points`, `^xp$`, `experience`)},
	{schema.SemLevel, patterns(`level`, `^lvl$`, `stage.?num`, `world`)},
	{schema.SemItem, patterns(`item`, `^sku$`, `product`)},
}

// Column is one raw input column: its name plus a slice of sample
// values for value-based fallbacks.
type Column struct {
	Name    string
	Samples []any
}

// Analyzer maps raw columns to semantic meanings. It is stateless and
// safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze infers one ColumnMeaning per table column. It never fails:
// a column nothing matches is tagged unknown at confidence 0.
func (a *Analyzer) Analyze(table *schema.Table) []schema.ColumnMeaning {
	columns := make([]Column, len(table.Columns))
	for i, name := range table.Columns {
		samples := make([]any, 0, maxSampleValues)
		for _, r := range table.Rows {
			if len(samples) == maxSampleValues {
				break
			}
			samples = append(samples, r[name])
		}
		columns[i] = Column{Name: name, Samples: samples}
	}
	return a.AnalyzeColumns(columns)
}

// AnalyzeColumns is the raw-column entry point used by Analyze and by
// callers that already hold sampled values.
func (a *Analyzer) AnalyzeColumns(columns []Column) []schema.ColumnMeaning {
	meanings := make([]schema.ColumnMeaning, len(columns))
	for i, col := range columns {
		meanings[i] = analyzeColumn(col)
	}
	return meanings
}

func analyzeColumn(col Column) schema.ColumnMeaning {
	primitive := schema.DetectPrimitive(col.Samples)
	meaning := schema.ColumnMeaning{
		Column:    col.Name,
		Primitive: primitive,
		Semantic:  schema.SemUnknown,
	}

	lower := strings.ToLower(strings.TrimSpace(col.Name))
	for _, entry := range namePatterns {
		for _, re := range entry.Patterns {
			if re.MatchString(lower) {
				meaning.Semantic = entry.Semantic
				meaning.Confidence = nameMatchConfidence
				return meaning
			}
		}
	}

	// Value-based fallbacks for columns no name pattern claims.
	switch {
	case primitive == schema.PrimDate:
		meaning.Semantic = schema.SemTimestamp
		meaning.Confidence = dateValueConfidence
	case primitive == schema.PrimNumber && hasFraction(col.Samples) && len(lower) <= 3:
		meaning.Semantic = schema.SemPrice
		meaning.Confidence = priceGuessConfidence
	case primitive == schema.PrimString && allTwoCharStrings(col.Samples):
		meaning.Semantic = schema.SemCountry
		meaning.Confidence = countryConfidence
	}
	return meaning
}

// hasFraction reports whether any numeric sample has a fractional part.
func hasFraction(samples []any) bool {
	for _, v := range samples {
		if f, ok := schema.AsFloat(v); ok && f != float64(int64(f)) {
			return true
		}
	}
	return false
}

// allTwoCharStrings reports whether every non-missing sample is a
// string of exactly two characters (the ISO country-code shape).
func allTwoCharStrings(samples []any) bool {
	seen := false
	for _, v := range samples {
		if schema.IsMissing(v) {
			continue
		}
		s, ok := v.(string)
		if !ok || len(strings.TrimSpace(s)) != 2 {
			return false
		}
		seen = true
	}
	return seen
}

// metricSuggestions maps present semantic types to the product metrics
// they enable.
var metricSuggestions = []struct {
	Semantic schema.SemanticType
	Metrics  []string
}{
	{schema.SemUserID, []string{"Daily Active Users", "Retention"}},
	{schema.SemSessionID, []string{"Sessions per User", "Session Length"}},
	{schema.SemTimestamp, []string{"Activity over Time"}},
	{schema.SemRevenue, []string{"ARPU", "Conversion Rate", "LTV"}},
	{schema.SemLevel, []string{"Level Completion", "Difficulty Spikes"}},
	{schema.SemFunnelStep, []string{"Funnel Conversion"}},
	{schema.SemCountry, []string{"Revenue by Country"}},
	{schema.SemPlatform, []string{"Platform Breakdown"}},
}

// defaultSuggestions are returned when nothing in the dataset is
// recognized.
var defaultSuggestions = []string{"Row Count", "Distinct Values"}

// SuggestedMetrics lists the human-readable metric names the detected
// semantics make possible. Order follows the lookup table; duplicates
// are dropped.
func (a *Analyzer) SuggestedMetrics(meanings []schema.ColumnMeaning) []string {
	present := schema.SemanticSet(meanings)
	var out []string
	seen := make(map[string]struct{})
	for _, entry := range metricSuggestions {
		if _, ok := present[entry.Semantic]; !ok {
			continue
		}
		for _, m := range entry.Metrics {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultSuggestions...)
	}
	return out
}
