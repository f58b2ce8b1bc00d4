package outwriter

import (
	"fmt"
	"io"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
)

// WriteResult prints a full pipeline result. JSON mode emits the whole
// result document; text mode composes the per-stage sections in
// pipeline order.
func (ow *OutWriter) WriteResult(result *schema.PipelineResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}

	// Text mode composes many sections; each section writer opens the
	// output file itself, so route them all to stdout instead of
	// truncating the file repeatedly.
	if cfg.OutputFile != "" {
		sub := *cfg
		sub.OutputFile = ""
		cfg = &sub
	}

	if result.Sample != nil {
		if err := ow.WriteSample(result.Sample, cfg); err != nil {
			return err
		}
	}
	if result.GameType != nil {
		fmt.Printf("Detected genre: %s (confidence %.2f)\n", result.GameType.GameType, result.GameType.Confidence)
		for _, reason := range result.GameType.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	}
	if err := ow.WriteMeanings(result.Meanings, nil, cfg); err != nil {
		return err
	}
	if result.Quality != nil {
		if err := ow.WriteCleaningPlan(result.Quality, cfg); err != nil {
			return err
		}
	}
	if result.Cleaning != nil {
		if err := ow.WriteCleaningResult(result.Cleaning, cfg); err != nil {
			return err
		}
	}
	if result.Metrics != nil {
		if err := ow.WriteMetrics(result.Metrics, cfg); err != nil {
			return err
		}
	}
	if len(result.Charts) > 0 {
		if err := ow.WriteCharts(result.Charts, result.Layout, cfg); err != nil {
			return err
		}
	}
	if len(result.Insights) > 0 {
		if err := ow.WriteInsights(result.Insights, cfg); err != nil {
			return err
		}
	}

	fmt.Printf("Analysis completed in %v (%d rows sampled from %d)\n",
		result.Stats.Elapsed, result.Stats.SampledRows, result.Stats.OriginalRows)
	return nil
}
