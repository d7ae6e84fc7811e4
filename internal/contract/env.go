package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/castinsight/castdash/schema"
)

// defaultDatamartPort is the port of the CAST DataMart PostgreSQL instance.
const defaultDatamartPort = 2284

// EnvDefaults are configuration defaults derived from the dashboard's
// historical environment variables (VITE_DB_* and BACKEND_PORT). Empty
// fields mean the variable was not set.
type EnvDefaults struct {
	DBBackend schema.DatabaseBackend
	DBConnect string
	DBSchema  string
	Addr      string
}

// LegacyEnvDefaults reads VITE_DB_HOST, VITE_DB_PORT, VITE_DB_NAME, VITE_DB_USER,
// VITE_DB_PASSWORD, VITE_DB_SSL, VITE_DB_SCHEMA and BACKEND_PORT (or
// VITE_BACKEND_PORT) through getenv. A host selects the postgresql backend.
func LegacyEnvDefaults(getenv func(string) string) EnvDefaults {
	var out EnvDefaults

	if host := strings.TrimSpace(getenv("VITE_DB_HOST")); host != "" {
		port, err := strconv.Atoi(getenv("VITE_DB_PORT"))
		if err != nil || port <= 0 {
			port = defaultDatamartPort
		}
		sslMode := "disable"
		if getenv("VITE_DB_SSL") == "true" {
			sslMode = "require"
		}

		parts := []string{
			"host=" + host,
			fmt.Sprintf("port=%d", port),
			"dbname=" + getenv("VITE_DB_NAME"),
		}
		if user := getenv("VITE_DB_USER"); user != "" {
			parts = append(parts, "user="+user)
		}
		if password := getenv("VITE_DB_PASSWORD"); password != "" {
			parts = append(parts, "password="+password)
		}
		parts = append(parts, "sslmode="+sslMode)

		out.DBBackend = schema.PostgreSQLBackend
		out.DBConnect = strings.Join(parts, " ")
	}

	out.DBSchema = strings.TrimSpace(getenv("VITE_DB_SCHEMA"))

	port := getenv("BACKEND_PORT")
	if port == "" {
		port = getenv("VITE_BACKEND_PORT")
	}
	if n, err := strconv.Atoi(port); err == nil && n > 0 {
		out.Addr = fmt.Sprintf(":%d", n)
	}
	return out
}
