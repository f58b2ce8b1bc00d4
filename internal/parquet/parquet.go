// Package parquet exports persisted run and insight data to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gamelens/gamelens/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single pipeline run with metadata. This struct maps
// to the gamelens_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (zero while still running)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the run duration in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// Source is the dataset location the run analyzed
	Source string `parquet:"source,snappy"`

	// OriginalRows is the row count before sampling
	OriginalRows int32 `parquet:"original_rows,snappy"`

	// SampledRows is the row count after sampling
	SampledRows int32 `parquet:"sampled_rows,snappy"`

	// GameType is the detected genre
	GameType string `parquet:"game_type,snappy"`

	// QualityScore is the pre-cleaning data quality score (0-100)
	QualityScore float64 `parquet:"quality_score,snappy"`

	// InsightCount is the number of insights the run produced
	InsightCount int32 `parquet:"insight_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// InsightRow represents one insight for flat-file export.
type InsightRow struct {
	ID             string  `parquet:"insight_id,snappy"`
	Type           string  `parquet:"type,snappy"`
	Category       string  `parquet:"category,snappy"`
	Title          string  `parquet:"title,snappy"`
	Description    string  `parquet:"description,snappy"`
	Priority       int32   `parquet:"priority,snappy"`
	Impact         string  `parquet:"impact,snappy"`
	Recommendation *string `parquet:"recommendation,optional,snappy"`
	RevenueImpact  float64 `parquet:"revenue_impact,snappy"`
	Confidence     float64 `parquet:"confidence,snappy"`
	Source         string  `parquet:"source,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteInsightsParquet writes a slice of InsightRow structs to a
// Parquet file.
func WriteInsightsParquet(data []InsightRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[InsightRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		run := Run{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			DurationMs:   record.DurationMs,
			Source:       record.Source,
			OriginalRows: int32(record.OriginalRows),
			SampledRows:  int32(record.SampledRows),
			GameType:     record.GameType,
			QualityScore: record.QualityScore,
			InsightCount: int32(record.InsightCount),
		}
		if !record.EndTime.IsZero() {
			end := record.EndTime
			run.EndTime = &end
		}
		if record.ConfigParams != "" {
			params := record.ConfigParams
			run.ConfigParams = &params
		}
		result[i] = run
	}
	return result
}

// ConvertInsights converts schema.Insight to InsightRow for Parquet
// export.
func ConvertInsights(insights []schema.Insight) []InsightRow {
	result := make([]InsightRow, len(insights))
	for i, ins := range insights {
		row := InsightRow{
			ID:            ins.ID,
			Type:          string(ins.Type),
			Category:      ins.Category,
			Title:         ins.Title,
			Description:   ins.Description,
			Priority:      int32(ins.Priority),
			Impact:        string(ins.Impact),
			RevenueImpact: ins.RevenueImpact,
			Confidence:    ins.Confidence,
			Source:        string(ins.Source),
		}
		if ins.Recommendation != "" {
			rec := ins.Recommendation
			row.Recommendation = &rec
		}
		result[i] = row
	}
	return result
}
