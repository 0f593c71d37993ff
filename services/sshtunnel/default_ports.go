package sshtunnel

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// defaultPorts maps a connection string backend to its well-known port.
var defaultPorts = map[string]int{
	"postgresql":  5432,
	"postgres":    5432,
	"redshift":    5439,
	"mysql":       3306,
	"mariadb":     3306,
	"mssql":       1433,
	"oracle":      1521,
	"clickhouse":  8123,
	"trino":       8080,
	"presto":      8080,
	"cockroachdb": 26257,
	"db2":         50000,
	"ibm_db_sa":   50000,
	"hana":        30015,
	"snowflake":   443,
	"databricks":  443,
	"vertica":     5433,
	"exa":         8563,
	"mongodb":     27017,
}

// DefaultPortCount returns the number of backends with a known default port.
func DefaultPortCount() int {
	return len(defaultPorts)
}

// Backend returns the dialect part of a scheme: "postgresql+psycopg2" -> "postgresql".
func Backend(scheme string) string {
	backend, _, _ := strings.Cut(strings.ToLower(scheme), "+")
	return backend
}

// DefaultPort returns the well-known port for the backend of scheme.
func DefaultPort(scheme string) (int, bool) {
	port, ok := defaultPorts[Backend(scheme)]
	return port, ok
}

// ConnectionPort returns the port a connection string points at: the explicit
// port when present, otherwise the default for its scheme.
func ConnectionPort(connectionString string) (int, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return 0, missingPort(fmt.Sprintf("cannot parse connection string: %v", err))
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return 0, missingPort(fmt.Sprintf("invalid port %q in connection string", p))
		}
		return port, nil
	}
	if port, ok := DefaultPort(u.Scheme); ok {
		return port, nil
	}
	return 0, missingPort(fmt.Sprintf("no default port for backend %q", Backend(u.Scheme)))
}
