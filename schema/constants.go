package schema

// Custom string types for type safety.
type (
	// SemanticType is the inferred business meaning of a column.
	SemanticType string

	// PrimitiveType is the detected storage type of a column.
	PrimitiveType string

	// GameType represents a detected game genre.
	GameType string

	// SampleStrategy selects how rows are reduced to a working set.
	SampleStrategy string

	// IssueKind classifies a detected data-quality problem.
	IssueKind string

	// RepairAction is a cleaning action that can fix an issue.
	RepairAction string

	// Severity grades quality issues and anomalies.
	Severity string

	// ChartKind represents the visualization type of a recommendation.
	ChartKind string

	// ChartCategory groups recommendations for dashboard layout.
	ChartCategory string

	// InsightType is the polarity of an insight.
	InsightType string

	// ImpactTier is the coarse business impact of an insight.
	ImpactTier string

	// InsightSource tags where an insight came from.
	InsightSource string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All semantic types supported. The analyzer only ever emits values
// from this closed set; downstream stages key off of it.
const (
	SemUserID       SemanticType = "user_id"
	SemSessionID    SemanticType = "session_id"
	SemTimestamp    SemanticType = "timestamp"
	SemEventName    SemanticType = "event_name"
	SemRevenue      SemanticType = "revenue"
	SemPrice        SemanticType = "price"
	SemCurrency     SemanticType = "currency"
	SemCountry      SemanticType = "country"
	SemPlatform     SemanticType = "platform"
	SemDevice       SemanticType = "device"
	SemAppVersion   SemanticType = "app_version"
	SemLevel        SemanticType = "level"
	SemScore        SemanticType = "score"
	SemRetentionDay SemanticType = "retention_day"
	SemFunnelStep   SemanticType = "funnel_step"
	SemPlaytime     SemanticType = "playtime"
	SemKills        SemanticType = "kills"
	SemDeaths       SemanticType = "deaths"
	SemDamage       SemanticType = "damage"
	SemPlacement    SemanticType = "placement"
	SemWeapon       SemanticType = "weapon"
	SemItem         SemanticType = "item"
	SemRarity       SemanticType = "rarity"
	SemBanner       SemanticType = "banner"
	SemSpins        SemanticType = "spins"
	SemBet          SemanticType = "bet"
	SemLives        SemanticType = "lives"
	SemMoves        SemanticType = "moves"
	SemQuest        SemanticType = "quest"
	SemCharacter    SemanticType = "character"
	SemGuild        SemanticType = "guild"
	SemUnknown      SemanticType = "unknown"
)

// All primitive types detected from sample values.
const (
	PrimString  PrimitiveType = "string"
	PrimNumber  PrimitiveType = "number"
	PrimBoolean PrimitiveType = "boolean"
	PrimDate    PrimitiveType = "date"
	PrimNull    PrimitiveType = "null"
	PrimMixed   PrimitiveType = "mixed"
)

// All game genres supported.
const (
	PuzzleGame       GameType = "puzzle"
	BattleRoyaleGame GameType = "battle_royale"
	ShooterGame      GameType = "shooter"
	RPGGame          GameType = "rpg"
	CasinoGame       GameType = "casino"
	StrategyGame     GameType = "strategy"
	IdleGame         GameType = "idle"
	RacingGame       GameType = "racing"
	CustomGame       GameType = "custom" // catch-all for ambiguous data
)

// All sampling strategies supported.
const (
	HeadSample       SampleStrategy = "head"
	TailSample       SampleStrategy = "tail"
	RandomSample     SampleStrategy = "random"
	SystematicSample SampleStrategy = "systematic"
	StratifiedSample SampleStrategy = "stratified"
	SmartSample      SampleStrategy = "smart" // default
	FullSample       SampleStrategy = "full"  // reported when no reduction was needed
)

// All quality issue kinds detected.
const (
	MissingValuesIssue IssueKind = "missing_values"
	TypeViolationIssue IssueKind = "type_violation"
	WhitespaceIssue    IssueKind = "whitespace"
	OutlierIssue       IssueKind = "outliers"
	DuplicateRowsIssue IssueKind = "duplicate_rows"
)

// All repair actions supported.
const (
	RemoveRowsAction       RepairAction = "remove_rows"
	FillModeAction         RepairAction = "fill_mode"
	ParseNumberAction      RepairAction = "parse_number"
	TrimWhitespaceAction   RepairAction = "trim_whitespace"
	CapOutliersAction      RepairAction = "cap_outliers"
	RemoveDuplicatesAction RepairAction = "remove_duplicates"
	NoAction               RepairAction = "none"
)

// All severities supported.
const (
	HighSeverity   Severity = "high"
	MediumSeverity Severity = "medium"
	LowSeverity    Severity = "low"
)

// All chart kinds supported.
const (
	LineChart      ChartKind = "line"
	AreaChart      ChartKind = "area"
	BarChart       ChartKind = "bar"
	PieChart       ChartKind = "pie"
	HistogramChart ChartKind = "histogram"
	FunnelChart    ChartKind = "funnel"
	CohortChart    ChartKind = "cohort"
	KPIChart       ChartKind = "kpi"
	ScatterChart   ChartKind = "scatter"
	HeatmapChart   ChartKind = "heatmap"
)

// All chart categories used for layout partitioning.
const (
	TrendCategory        ChartCategory = "trend"
	DistributionCategory ChartCategory = "distribution"
	ComparisonCategory   ChartCategory = "comparison"
	ConversionCategory   ChartCategory = "conversion"
	KPICategory          ChartCategory = "kpi"
)

// All insight polarities supported.
const (
	PositiveInsight    InsightType = "positive"
	NeutralInsight     InsightType = "neutral"
	WarningInsight     InsightType = "warning"
	OpportunityInsight InsightType = "opportunity"
)

// All business impact tiers supported.
const (
	HighImpact   ImpactTier = "high"
	MediumImpact ImpactTier = "medium"
	LowImpact    ImpactTier = "low"
)

// All insight sources supported.
const (
	TemplateSource InsightSource = "template"
	MetricSource   InsightSource = "metric"
	BackendSource  InsightSource = "external-backend"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllSampleStrategies returns a list of all user-selectable strategies.
var AllSampleStrategies = []SampleStrategy{
	HeadSample, TailSample, RandomSample, SystematicSample, StratifiedSample, SmartSample,
}

// AllGameTypes lists every genre the detector can claim.
var AllGameTypes = []GameType{
	PuzzleGame, BattleRoyaleGame, ShooterGame, RPGGame,
	CasinoGame, StrategyGame, IdleGame, RacingGame, CustomGame,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSampleStrategies lists all valid sampling strategies.
var ValidSampleStrategies = map[SampleStrategy]struct{}{
	HeadSample:       {},
	TailSample:       {},
	RandomSample:     {},
	SystematicSample: {},
	StratifiedSample: {},
	SmartSample:      {},
}

// ValidDatabaseBackends lists all valid run store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRepairActions lists all approvable repair actions.
var ValidRepairActions = map[RepairAction]struct{}{
	RemoveRowsAction:       {},
	FillModeAction:         {},
	ParseNumberAction:      {},
	TrimWhitespaceAction:   {},
	CapOutliersAction:      {},
	RemoveDuplicatesAction: {},
}

// impactRank orders impact tiers for sorting (higher is more important).
var impactRank = map[ImpactTier]int{
	HighImpact:   3,
	MediumImpact: 2,
	LowImpact:    1,
}

// ImpactRank returns the sort rank of an impact tier.
func ImpactRank(t ImpactTier) int {
	return impactRank[t]
}

// severityRank orders severities (higher is worse).
var severityRank = map[Severity]int{
	HighSeverity:   3,
	MediumSeverity: 2,
	LowSeverity:    1,
}

// SeverityRank returns the sort rank of a severity.
func SeverityRank(s Severity) int {
	return severityRank[s]
}
