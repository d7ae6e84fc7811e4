package datamart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castinsight/castdash/core/classify"
	"github.com/castinsight/castdash/schema"
)

// SeedSnapshots is the number of monthly snapshots seeded per application.
const SeedSnapshots = 4

// seedAnchor is the analysis date of every latest demo snapshot.
var seedAnchor = time.Date(2026, time.September, 15, 9, 30, 0, 0, time.UTC)

type seedViolation struct {
	technology string
	rule       string
	count      int
	critical   int
}

type seedApplication struct {
	id           int
	name         string
	businessUnit string // empty means no dimension row
	tqi          float64
	loc          int
	files        int
	artifacts    int
	debt         float64
	complexity   [3]int // high, medium, low
	violations   []seedViolation
}

// seedPortfolio is the demo portfolio. Scores are the latest Total Quality Index.
var seedPortfolio = []seedApplication{
	{
		id: 1, name: "Payments Gateway", businessUnit: "Finance", tqi: 3.42,
		loc: 182400, files: 1240, artifacts: 9800, debt: 412000,
		complexity: [3]int{12, 24, 310},
		violations: []seedViolation{
			{"Java", "Avoid empty catch blocks", 14, 0},
			{"Java", "Close database resources", 6, 2},
			{"SQL", "Avoid SELECT * queries", 9, 0},
		},
	},
	{
		id: 2, name: "Customer Portal", businessUnit: "Digital", tqi: 2.87,
		loc: 96300, files: 870, artifacts: 5100, debt: 288500,
		complexity: [3]int{8, 15, 140},
		violations: []seedViolation{
			{"JavaScript", "Avoid cross-site scripting", 11, 4},
			{"JavaScript", "Avoid unused variables", 37, 0},
			{"JEE", "Avoid hardcoded credentials", 2, 2},
		},
	},
	{
		id: 3, name: "Claims Engine", businessUnit: "Insurance", tqi: 2.31,
		loc: 254800, files: 1630, artifacts: 14200, debt: 1150000,
		complexity: [3]int{38, 41, 220},
		violations: []seedViolation{
			{"Java", "Avoid SQL injection", 18, 9},
			{"Java", "Avoid deep inheritance", 23, 0},
			{".NET", "Dispose IDisposable objects", 15, 3},
		},
	},
	{
		id: 4, name: "Legacy Billing", businessUnit: "Finance", tqi: 1.84,
		loc: 611000, files: 2950, artifacts: 31000, debt: 3240000,
		complexity: [3]int{64, 58, 400},
		violations: []seedViolation{
			{"COBOL", "Avoid GOTO statements", 142, 12},
			{"COBOL", "Check file status after I/O", 61, 20},
			{"SQL", "Avoid cursors in loops", 27, 6},
		},
	},
	{
		id: 5, name: "Inventory Service", businessUnit: "Operations", tqi: 3.15,
		loc: 74200, files: 520, artifacts: 3900, debt: 156000,
		complexity: [3]int{4, 9, 95},
		violations: []seedViolation{
			{"Java", "Avoid empty catch blocks", 5, 0},
			{"SQL", "Avoid SELECT * queries", 3, 0},
		},
	},
	{
		id: 6, name: "HR Self-Service", tqi: 2.64,
		loc: 48900, files: 410, artifacts: 2700, debt: 201000,
		complexity: [3]int{6, 11, 60},
		violations: []seedViolation{
			{".NET", "Validate user input", 9, 3},
			{".NET", "Avoid large classes", 12, 0},
		},
	},
}

// criterionOffsets derives the other business criteria from the Total Quality Index.
var criterionOffsets = []struct {
	name   string
	offset float64
}{
	{schema.CriterionTQI, 0},
	{schema.CriterionArchitecture, 0.1},
	{schema.CriterionSecurity, -0.2},
	{schema.CriterionChangeability, 0.05},
	{schema.CriterionRobustness, -0.1},
	{schema.CriterionPerformance, 0.15},
}

var isoCriteria = []string{
	schema.CriterionISOSecurity,
	schema.CriterionISOMaintainability,
	schema.CriterionISOReliability,
	schema.CriterionISOPerformance,
}

// Seed replaces the datamart content with the demo portfolio. Every application
// gets SeedSnapshots monthly snapshots, the newest flagged as latest and older
// ones scoring 0.1 lower per month.
func (s *Store) Seed(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("seeding is not supported for %s backend", s.backend)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := len(datamartTables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+s.table(datamartTables[i])); err != nil {
			return fmt.Errorf("failed to clear %s: %w", datamartTables[i], err)
		}
	}

	insertSnapshot := s.insertQuery(snapshotsTable, schema.ColSnapshotID, schema.ColApplicationID, schema.ColApplicationName, schema.ColAnalysisDate, "is_latest")
	insertApplication := s.insertQuery(applicationsTable, schema.ColApplicationName, s.quote(businessUnitColumn))
	insertHealth := s.insertQuery(healthTable, schema.ColSnapshotID, schema.ColCriterion, schema.ColScore, schema.ColComplianceScore)
	insertSizing := s.insertQuery(sizingTable, schema.ColSnapshotID, schema.ColCodeLines, schema.ColFiles, schema.ColArtifacts,
		schema.ColTechnicalDebt, schema.ColComplexityHigh, schema.ColComplexityMedium, schema.ColComplexityLow)
	insertViolation := s.insertQuery(violationsTable, schema.ColSnapshotID, schema.ColTechnology, schema.ColRuleName, schema.ColViolations, schema.ColCriticalContrib)

	for _, app := range seedPortfolio {
		if app.businessUnit != "" {
			if _, err := tx.ExecContext(ctx, insertApplication, app.name, app.businessUnit); err != nil {
				return fmt.Errorf("failed to seed application %s: %w", app.name, err)
			}
		}

		for back := 0; back < SeedSnapshots; back++ {
			snapshotID := app.id*100 + back
			date := seedAnchor.AddDate(0, -back, 0)
			if _, err := tx.ExecContext(ctx, insertSnapshot, snapshotID, app.id, app.name, formatTime(date, s.backend), back == 0); err != nil {
				return fmt.Errorf("failed to seed snapshot %d: %w", snapshotID, err)
			}

			tqi := app.tqi - 0.1*float64(back)
			for _, c := range criterionOffsets {
				if _, err := tx.ExecContext(ctx, insertHealth, snapshotID, c.name, seedScore(tqi+c.offset), nil); err != nil {
					return fmt.Errorf("failed to seed %s for snapshot %d: %w", c.name, snapshotID, err)
				}
			}
			for i, name := range isoCriteria {
				compliance := classify.Round(0.78+(seedScore(tqi)-1)/3*0.2-0.01*float64(i), 4)
				if _, err := tx.ExecContext(ctx, insertHealth, snapshotID, name, seedScore(tqi), compliance); err != nil {
					return fmt.Errorf("failed to seed %s for snapshot %d: %w", name, snapshotID, err)
				}
			}

			growth := 1 - 0.02*float64(back)
			if _, err := tx.ExecContext(ctx, insertSizing, snapshotID,
				int(float64(app.loc)*growth), int(float64(app.files)*growth), int(float64(app.artifacts)*growth),
				classify.Round(app.debt*growth, 2), app.complexity[0], app.complexity[1], app.complexity[2]); err != nil {
				return fmt.Errorf("failed to seed sizing for snapshot %d: %w", snapshotID, err)
			}

			for _, v := range app.violations {
				if _, err := tx.ExecContext(ctx, insertViolation, snapshotID, v.technology, v.rule, v.count+back, v.critical); err != nil {
					return fmt.Errorf("failed to seed violation %q for snapshot %d: %w", v.rule, snapshotID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	s.logger.Info().Int("applications", len(seedPortfolio)).Int("snapshots", len(seedPortfolio)*SeedSnapshots).Msg("datamart seeded")
	return nil
}

// insertQuery builds an INSERT statement with backend placeholders. Columns
// are passed already quoted when they need it.
func (s *Store) insertQuery(table string, cols ...string) string {
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = s.param(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table(table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// seedScore clamps a score to the 1-4 health range with two decimals.
func seedScore(v float64) float64 {
	return classify.Round(min(4, max(1, v)), 2)
}

// formatTime formats a time value for the backend. SQLite keeps dates as text.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339)
	default:
		return t
	}
}
