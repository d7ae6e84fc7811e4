// Package parquet provides data structures and functions for exporting datamart
// panels to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/castinsight/castdash/schema"
	"github.com/parquet-go/parquet-go"
)

// ApplicationSummary is one application of the summaries panel.
type ApplicationSummary struct {
	// ApplicationName is the CAST application name
	ApplicationName string `parquet:"application_name,snappy"`

	// BusinessUnit comes from the application dimension (nullable)
	BusinessUnit *string `parquet:"business_unit,optional,snappy"`

	// AnalysisDate is the date of the latest snapshot
	AnalysisDate time.Time `parquet:"analysis_date,snappy"`

	HealthScore   float64 `parquet:"health_score,snappy"`
	TechnicalDebt float64 `parquet:"technical_debt,snappy"`

	// RiskLevel is the 4-tier risk label of the health score
	RiskLevel string `parquet:"risk_level,snappy"`
}

// HealthScore is one business criterion of an application's latest snapshot.
type HealthScore struct {
	ApplicationName string    `parquet:"application_name,snappy"`
	AnalysisDate    time.Time `parquet:"analysis_date,snappy"`
	Criterion       string    `parquet:"business_criterion_name,snappy"`
	Score           float64   `parquet:"score,snappy"`

	// ComplianceScore is only set for compliance-style criteria (0-1)
	ComplianceScore *float64 `parquet:"compliance_score,optional,snappy"`

	// Grade is the Good/Fair/Poor label of the score
	Grade string `parquet:"grade,snappy"`
}

// WriteApplicationSummariesParquet writes application summaries to a Parquet file.
func WriteApplicationSummariesParquet(data []ApplicationSummary, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteHealthScoresParquet writes health scores to a Parquet file.
func WriteHealthScoresParquet(data []HealthScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteApplicationSummaries writes application summaries as a Parquet stream.
func WriteApplicationSummaries(w io.Writer, data []ApplicationSummary) error {
	return write(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// write derives the schema from the struct tags of T.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertApplicationSummaryRecords converts schema.ApplicationSummaryRecord to ApplicationSummary for Parquet export.
func ConvertApplicationSummaryRecords(records []schema.ApplicationSummaryRecord) []ApplicationSummary {
	result := make([]ApplicationSummary, len(records))
	for i, record := range records {
		result[i] = ApplicationSummary{
			ApplicationName: record.ApplicationName,
			BusinessUnit:    record.BusinessUnit,
			AnalysisDate:    record.AnalysisDate,
			HealthScore:     record.HealthScore,
			TechnicalDebt:   record.TechnicalDebt,
			RiskLevel:       record.RiskLevel,
		}
	}
	return result
}

// ConvertHealthScoreRecords converts schema.HealthScoreRecord to HealthScore for Parquet export.
func ConvertHealthScoreRecords(records []schema.HealthScoreRecord) []HealthScore {
	result := make([]HealthScore, len(records))
	for i, record := range records {
		result[i] = HealthScore{
			ApplicationName: record.ApplicationName,
			AnalysisDate:    record.AnalysisDate,
			Criterion:       record.Criterion,
			Score:           record.Score,
			ComplianceScore: record.ComplianceScore,
			Grade:           record.Grade,
		}
	}
	return result
}

// ConvertApplicationSummaries converts the summaries panel to ApplicationSummary rows.
func ConvertApplicationSummaries(summaries []schema.ApplicationSummary) []ApplicationSummary {
	result := make([]ApplicationSummary, len(summaries))
	for i, s := range summaries {
		row := ApplicationSummary{
			ApplicationName: s.ApplicationName,
			BusinessUnit:    s.BusinessUnit,
			HealthScore:     s.HealthScore,
			TechnicalDebt:   s.TechnicalDebt,
			RiskLevel:       string(s.RiskLevel),
		}
		if s.AnalysisDate != nil {
			row.AnalysisDate = *s.AnalysisDate
		}
		result[i] = row
	}
	return result
}
