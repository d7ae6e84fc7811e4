// Package contract provides interfaces and shared utilities for castdash's internal architecture.
package contract

import (
	"context"

	"github.com/castinsight/castdash/schema"
)

// Datamart defines the read operations the dashboard needs from a CAST DataMart.
// Every method returns flat rows; the aggregation core decides what they mean.
// This allows the dashboard to be tested without a real database.
type Datamart interface {
	// --- Connectivity ---

	// Ping verifies that the datamart is reachable.
	Ping(ctx context.Context) error

	// --- Portfolio panels (latest snapshot of every application) ---

	// PortfolioRows returns Total Quality Index scores joined with sizing.
	PortfolioRows(ctx context.Context) ([]schema.Row, error)

	// RiskRows returns the Total Quality Index score of every application.
	RiskRows(ctx context.Context) ([]schema.Row, error)

	// SummaryRows returns one row per latest snapshot with its business unit.
	// When the application dimension cannot be joined the store retries without it.
	SummaryRows(ctx context.Context) ([]schema.Row, error)

	// TechnologyRows returns violation technologies joined with the Total Quality Index.
	TechnologyRows(ctx context.Context) ([]schema.Row, error)

	// ArchitectureRows returns sizing and complexity with the Architectural Design score.
	ArchitectureRows(ctx context.Context) ([]schema.Row, error)

	// SecurityRows returns the Security score with violation totals.
	SecurityRows(ctx context.Context) ([]schema.Row, error)

	// CriterionNames lists the distinct business criteria present in the datamart.
	CriterionNames(ctx context.Context) ([]string, error)

	// PerformanceRows returns the given criterion's score with sizing.
	PerformanceRows(ctx context.Context, criterion string) ([]schema.Row, error)

	// PerformanceFallbackRows returns any latest score below 3 with sizing.
	PerformanceFallbackRows(ctx context.Context) ([]schema.Row, error)

	// LatestCriterionRows returns every latest criterion score.
	LatestCriterionRows(ctx context.Context) ([]schema.Row, error)

	// ApplicationRows returns the id, name and date of every latest snapshot.
	ApplicationRows(ctx context.Context) ([]schema.Row, error)

	// --- History (all snapshots) ---

	// HealthHistoryRows returns the Total Quality Index of every snapshot.
	HealthHistoryRows(ctx context.Context) ([]schema.Row, error)

	// QualityHistoryRows returns the four quality criteria of every snapshot.
	QualityHistoryRows(ctx context.Context) ([]schema.Row, error)

	// --- Single application ---

	// AppExists reports whether the key matches a latest snapshot.
	AppExists(ctx context.Context, key schema.ApplicationKey) (bool, error)

	// AppHealthRows returns one row per criterion of the application's latest snapshot.
	AppHealthRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error)

	// AppViolationRows returns the rule violations of the application's latest snapshot.
	AppViolationRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error)

	// AppRiskRows returns complexity sizing with every violation measure.
	AppRiskRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error)

	// AppProductivityRows returns sizing with the Total Quality Index.
	AppProductivityRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error)

	// AppISORows returns ISO-5055 compliance of every snapshot of the application.
	AppISORows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error)

	// --- Maintenance ---

	// Status returns connection and size information about the datamart.
	Status(ctx context.Context) (schema.DatamartStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// DatamartExporter reads the records written by the parquet export.
type DatamartExporter interface {
	ExportSummaries(ctx context.Context) ([]schema.ApplicationSummaryRecord, error)
	ExportHealthScores(ctx context.Context) ([]schema.HealthScoreRecord, error)
}
