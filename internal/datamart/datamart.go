// Package datamart reads a CAST DataMart from SQLite, MySQL or PostgreSQL and
// hands flat rows to the aggregation core.
package datamart

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Table names of the datamart.
const (
	snapshotsTable    = "dim_snapshots"
	applicationsTable = "dim_applications"
	healthTable       = "app_health_scores"
	sizingTable       = "app_sizing_measures"
	violationsTable   = "app_violations_measures"
)

// datamartTables lists every table in creation order.
var datamartTables = []string{snapshotsTable, applicationsTable, healthTable, sizingTable, violationsTable}

// businessUnitColumn is the dimension column as CAST names it, space included.
const businessUnitColumn = "Business Unit"

// Store implements contract.Datamart on top of database/sql.
type Store struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	schema   string
	logger   zerolog.Logger
	replacer *strings.Replacer
}

var _ contract.Datamart = &Store{} // Compile-time check

var _ contract.DatamartExporter = &Store{} // Compile-time check

// Open connects to the datamart with the specified backend. For PostgreSQL the
// tables are read from schemaName; MySQL and SQLite use the connection's database.
func Open(ctx context.Context, backend schema.DatabaseBackend, connStr, schemaName string, logger zerolog.Logger) (*Store, error) {
	if schemaName == "" {
		schemaName = contract.DefaultSchema
	}
	if !contract.IsIdentifier(schemaName) {
		return nil, fmt.Errorf("invalid schema name %q", schemaName)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite datamart at %q: %w. Check that the file exists and is readable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		dsn, dsnErr := mysqlDSN(connStr, false)
		if dsnErr != nil {
			return nil, dsnErr
		}
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL datamart: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL datamart: %w. Check connection string format: host=... dbname=... user=... password=...", err)
		}

	case schema.NoneBackend:
		// No datamart: every panel reads as empty
		return newStore(nil, backend, schemaName, logger), nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the datamart file exists and has been migrated."
		}
		return nil, fmt.Errorf("failed to connect to %s datamart: %w. %s", backend, err, connDetail)
	}

	logger.Debug().Str("backend", string(backend)).Str("schema", schemaName).Msg("datamart connected")
	return newStore(db, backend, schemaName, logger), nil
}

// NewStore wraps an already opened database. It is mostly useful for tests.
func NewStore(db *sql.DB, backend schema.DatabaseBackend, schemaName string, logger zerolog.Logger) *Store {
	if schemaName == "" {
		schemaName = contract.DefaultSchema
	}
	return newStore(db, backend, schemaName, logger)
}

func newStore(db *sql.DB, backend schema.DatabaseBackend, schemaName string, logger zerolog.Logger) *Store {
	s := &Store{db: db, backend: backend, schema: schemaName, logger: logger}
	s.replacer = strings.NewReplacer(
		"{snap}", s.table(snapshotsTable),
		"{apps}", s.table(applicationsTable),
		"{health}", s.table(healthTable),
		"{size}", s.table(sizingTable),
		"{viol}", s.table(violationsTable),
		"{bu}", s.quote(businessUnitColumn),
		"{p1}", s.param(1),
		"{p2}", s.param(2),
		"{p3}", s.param(3),
		"{p4}", s.param(4),
	)
	return s
}

// Backend returns the backend of the store.
func (s *Store) Backend() schema.DatabaseBackend { return s.backend }

// Ping implements the Datamart interface.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close implements the Datamart interface.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// table returns the qualified name of a datamart table. Only PostgreSQL
// qualifies with the schema; the other backends read the connected database.
func (s *Store) table(name string) string {
	if s.backend == schema.PostgreSQLBackend {
		return s.quote(s.schema) + "." + name
	}
	return name
}

// quote quotes an identifier for the backend.
func (s *Store) quote(ident string) string {
	if s.backend == schema.MySQLBackend {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// param returns the n-th bind placeholder for the backend.
func (s *Store) param(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// render expands the table, column and placeholder tokens of a query.
func (s *Store) render(query string) string {
	return s.replacer.Replace(query)
}

// query runs a rendered query and materializes every row.
func (s *Store) query(ctx context.Context, query string, args ...any) ([]schema.Row, error) {
	if s.db == nil {
		return []schema.Row{}, nil
	}
	rows, err := s.db.QueryContext(ctx, s.render(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// scanRows reads every row into a schema.Row keyed by lower-cased column name.
func scanRows(rows *sql.Rows) ([]schema.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	out := make([]schema.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r := make(schema.Row, len(cols))
		for i, col := range cols {
			v := values[i]
			// Drivers reuse byte buffers between rows
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			r[strings.ToLower(col)] = v
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// keyFilter returns the snapshot predicate and bind value for an application key.
func keyFilter(key schema.ApplicationKey) (string, any) {
	if name, ok := key.Name(); ok {
		return "snap.application_name = {p1}", name
	}
	id, _ := key.ID()
	return "snap.application_id = {p1}", id
}

// mysqlDSN normalizes a MySQL connection string. Times are always parsed, and
// migrations need multi-statement support.
func mysqlDSN(connStr string, multiStatements bool) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	if multiStatements {
		cfg.MultiStatements = true
	}
	return cfg.FormatDSN(), nil
}

// postgresDSN adds the search path to a PostgreSQL connection string so that
// unqualified names resolve inside the datamart schema.
func postgresDSN(connStr, schemaName string) string {
	if strings.Contains(connStr, "search_path") {
		return connStr
	}
	if strings.Contains(connStr, "://") {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		return connStr + sep + "search_path=" + schemaName
	}
	return strings.TrimSpace(connStr) + " search_path=" + schemaName
}
