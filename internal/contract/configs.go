package contract

import (
	"fmt"
	"strings"

	"github.com/gamelens/gamelens/schema"
)

// Default values for configuration.
const (
	DefaultMaxSampleRows = 10000
	DefaultResultLimit   = 25
	MaxResultLimit       = 1000
	DefaultPrecision     = 1
	DefaultMinConfidence = 0.3
	DefaultSeed          = 1
)

// DefaultRetentionHorizons are the cohort horizons computed when none
// are configured.
var DefaultRetentionHorizons = []int{1, 3, 7, 14, 30}

// Benchmarks holds the industry reference values insights are compared
// against. These are configuration, not invariants; the defaults below
// reflect common mobile-game baselines.
type Benchmarks struct {
	RetentionD1Good float64
	RetentionD1Bad  float64
	RetentionD7Good float64
	RetentionD7Bad  float64
	ConversionGood  float64 // percent
	ConversionBad   float64
	ARPUGood        float64
	ARPUBad         float64
	StickinessGood  float64
	StickinessBad   float64
}

// DefaultBenchmarks returns the stock benchmark set.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		RetentionD1Good: 40,
		RetentionD1Bad:  20,
		RetentionD7Good: 15,
		RetentionD7Bad:  5,
		ConversionGood:  5,
		ConversionBad:   1,
		ARPUGood:        1.0,
		ARPUBad:         0.1,
		StickinessGood:  0.3,
		StickinessBad:   0.1,
	}
}

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string

	MaxSampleRows   int
	Strategy        schema.SampleStrategy
	PriorityColumns []string
	Seed            int64

	AutoClean       bool
	ApprovedActions []schema.RepairAction // empty plus AutoClean means "all"

	RetentionHorizons []int
	LTVHorizonDays    int
	Benchmarks        Benchmarks
	MinConfidence     float64

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext
}

// Clone returns a deep copy of the config, safe to mutate per request.
func (c *Config) Clone() *Config {
	clone := *c
	clone.PriorityColumns = append([]string(nil), c.PriorityColumns...)
	clone.ApprovedActions = append([]schema.RepairAction(nil), c.ApprovedActions...)
	clone.RetentionHorizons = append([]int(nil), c.RetentionHorizons...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	MaxRows         int     `mapstructure:"max-rows"`
	Strategy        string  `mapstructure:"strategy"`
	PriorityColumns string  `mapstructure:"priority-columns"`
	Seed            int64   `mapstructure:"seed"`
	Clean           bool    `mapstructure:"clean"`
	Actions         string  `mapstructure:"actions"`
	Horizons        string  `mapstructure:"horizons"`
	LTVHorizon      int     `mapstructure:"ltv-horizon"`
	MinConfidence   float64 `mapstructure:"min-confidence"`
	Limit           int     `mapstructure:"limit"`
	Precision       int     `mapstructure:"precision"`
	Output          string  `mapstructure:"output"`
	OutputFile      string  `mapstructure:"output-file"`
	Width           int     `mapstructure:"width"`
	Color           string  `mapstructure:"color"`
	RunBackend      string  `mapstructure:"run-backend"`
	RunDBConnect    string  `mapstructure:"run-db-connect"`
}

// ProcessAndValidate converts raw inputs into the final validated
// Config. It is the single funnel for all flag/env/file values.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.InputPathStr

	if input.MaxRows <= 0 {
		cfg.MaxSampleRows = DefaultMaxSampleRows
	} else {
		cfg.MaxSampleRows = input.MaxRows
	}

	strategy := schema.SampleStrategy(strings.ToLower(input.Strategy))
	if strategy == "" {
		strategy = schema.SmartSample
	}
	if _, ok := schema.ValidSampleStrategies[strategy]; !ok {
		return fmt.Errorf("invalid sample strategy: %q", input.Strategy)
	}
	cfg.Strategy = strategy

	cfg.PriorityColumns = splitCommaList(input.PriorityColumns)
	cfg.Seed = input.Seed
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}

	cfg.AutoClean = input.Clean
	actions, err := ParseApprovedActions(input.Actions)
	if err != nil {
		return err
	}
	cfg.ApprovedActions = actions

	cfg.RetentionHorizons = append([]int(nil), DefaultRetentionHorizons...)
	if input.Horizons != "" {
		horizons, err := ParseHorizons(input.Horizons)
		if err != nil {
			return err
		}
		cfg.RetentionHorizons = horizons
	}

	cfg.LTVHorizonDays = input.LTVHorizon
	if cfg.LTVHorizonDays <= 0 {
		cfg.LTVHorizonDays = 30
	}

	cfg.Benchmarks = DefaultBenchmarks()
	cfg.MinConfidence = input.MinConfidence
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}

	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.ResultLimit > MaxResultLimit {
		cfg.ResultLimit = MaxResultLimit
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode: %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)

	backend := schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid run backend: %q", input.RunBackend)
	}
	cfg.RunBackend = backend
	cfg.RunDBConnect = input.RunDBConnect

	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// ValidateDatabaseConnectionString checks that server backends carry a
// connection string. SQLite falls back to a home-directory file.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s backend requires a connection string", backend)
		}
	}
	return nil
}

// ParseApprovedActions parses a comma-separated action list. The empty
// string and "all" both mean every suggested action.
func ParseApprovedActions(s string) ([]schema.RepairAction, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return nil, nil
	}
	var actions []schema.RepairAction
	for _, part := range strings.Split(s, ",") {
		a := schema.RepairAction(strings.TrimSpace(part))
		if _, ok := schema.ValidRepairActions[a]; !ok {
			return nil, fmt.Errorf("invalid repair action: %q", part)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// ParseHorizons parses a comma-separated list of retention horizons in
// days. Every horizon must be a positive integer.
func ParseHorizons(s string) ([]int, error) {
	var horizons []int
	for _, part := range strings.Split(s, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &n); err != nil || n < 1 {
			return nil, fmt.Errorf("invalid retention horizon: %q", part)
		}
		horizons = append(horizons, n)
	}
	return horizons, nil
}

func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
