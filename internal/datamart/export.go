package datamart

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/castinsight/castdash/core/agg"
	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/parquet"
	"github.com/castinsight/castdash/schema"
	"github.com/dustin/go-humanize"
)

// ExportSummaries implements the DatamartExporter interface. Every latest
// application is exported, not only the summaries panel's top rows.
func (s *Store) ExportSummaries(ctx context.Context) ([]schema.ApplicationSummaryRecord, error) {
	rows, err := s.SummaryRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read application summaries: %w", err)
	}
	summaries := agg.ApplicationSummaries(rows, max(len(rows), 1))

	records := make([]schema.ApplicationSummaryRecord, 0, len(summaries))
	for _, sum := range summaries {
		record := schema.ApplicationSummaryRecord{
			ApplicationName: sum.ApplicationName,
			BusinessUnit:    sum.BusinessUnit,
			HealthScore:     sum.HealthScore,
			TechnicalDebt:   sum.TechnicalDebt,
			RiskLevel:       string(sum.RiskLevel),
		}
		if sum.AnalysisDate != nil {
			record.AnalysisDate = *sum.AnalysisDate
		}
		records = append(records, record)
	}
	return records, nil
}

// ExportHealthScores implements the DatamartExporter interface.
func (s *Store) ExportHealthScores(ctx context.Context) ([]schema.HealthScoreRecord, error) {
	rows, err := s.LatestCriterionRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read health scores: %w", err)
	}

	records := make([]schema.HealthScoreRecord, 0, len(rows))
	for _, r := range rows {
		score := r.Float(schema.ColScore)
		record := schema.HealthScoreRecord{
			ApplicationName: r.String(schema.ColApplicationName),
			Criterion:       r.String(schema.ColCriterion),
			Score:           score,
			Grade:           string(classify.QualityGrade(score)),
		}
		if t, ok := r.Time(schema.ColAnalysisDate); ok {
			record.AnalysisDate = t
		}
		if !r.IsNull(schema.ColComplianceScore) {
			compliance := r.Float(schema.ColComplianceScore)
			record.ComplianceScore = &compliance
		}
		records = append(records, record)
	}
	return records, nil
}

// ExecuteExport writes the latest summaries and health scores of the datamart
// to <outputFile>.summaries.parquet and <outputFile>.health_scores.parquet.
func ExecuteExport(ctx context.Context, store contract.Datamart, exporter contract.DatamartExporter, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get datamart status: %w", err)
	}
	if status.Snapshots == 0 {
		return errors.New("no datamart snapshots found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Applications: %d\n", status.Applications)
	_, _ = fmt.Fprintf(w, "Health score rows: %s\n", humanize.Comma(status.TableRows[healthTable]))

	summaries, err := exporter.ExportSummaries(ctx)
	if err != nil {
		return err
	}
	healthScores, err := exporter.ExportHealthScores(ctx)
	if err != nil {
		return err
	}

	summariesFile := outputFile + ".summaries.parquet"
	if err := parquet.WriteApplicationSummariesParquet(parquet.ConvertApplicationSummaryRecords(summaries), summariesFile); err != nil {
		return fmt.Errorf("failed to write application summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d application summaries to: %s\n", len(summaries), summariesFile)

	healthFile := outputFile + ".health_scores.parquet"
	if err := parquet.WriteHealthScoresParquet(parquet.ConvertHealthScoreRecords(healthScores), healthFile); err != nil {
		return fmt.Errorf("failed to write health scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d health scores to: %s\n", len(healthScores), healthFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	return nil
}
