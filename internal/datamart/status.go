package datamart

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/castinsight/castdash/schema"
	"github.com/dustin/go-humanize"
)

const statusQuery = `
	SELECT
		COUNT(DISTINCT snap.application_name) AS applications,
		COUNT(*) AS snapshots,
		MAX(snap.analysis_date) AS analysis_date
	FROM {snap} snap
`

// Status implements the Datamart interface.
func (s *Store) Status(ctx context.Context) (schema.DatamartStatus, error) {
	status := schema.DatamartStatus{
		Backend:   string(s.backend),
		Schema:    s.schema,
		TableRows: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	rows, err := s.query(ctx, statusQuery)
	if err != nil {
		return status, fmt.Errorf("failed to count snapshots: %w", err)
	}
	if len(rows) > 0 {
		status.Applications = rows[0].Int("applications")
		status.Snapshots = rows[0].Int("snapshots")
		status.LatestAnalysis = rows[0].TimePtr(schema.ColAnalysisDate)
	}

	for _, table := range datamartTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(table))
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", table, err)
		}
		status.TableRows[table] = count
	}

	// A datamart loaded by CAST tooling has no migration bookkeeping
	var version int
	versionQuery := fmt.Sprintf("SELECT version FROM %s LIMIT 1", s.table(migrationsTable))
	if err := s.db.QueryRowContext(ctx, versionQuery).Scan(&version); err == nil {
		status.MigrationVersion = version
	}
	return status, nil
}

// PrintStatus prints datamart status information.
func PrintStatus(w io.Writer, status schema.DatamartStatus) {
	_, _ = fmt.Fprintf(w, "Datamart Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Schema: %s\n", status.Schema)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Migration Version: %d\n", status.MigrationVersion)
	_, _ = fmt.Fprintf(w, "Applications: %d\n", status.Applications)
	_, _ = fmt.Fprintf(w, "Snapshots: %d\n", status.Snapshots)
	if status.LatestAnalysis != nil {
		_, _ = fmt.Fprintf(w, "Latest Analysis: %s (%s)\n", status.LatestAnalysis.Format("2006-01-02 15:04:05"), humanize.Time(*status.LatestAnalysis))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableRows))
	for table := range status.TableRows {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %s rows\n", table, humanize.Comma(status.TableRows[table]))
	}
}
