package dialect

import (
	_ "github.com/lib/pq" // PostgreSQL Driver
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) PingQuery() string {
	return `SELECT 1`
}

func (d *PostgresDialect) ListDatabasesQuery() string {
	// Templates and the maintenance database are never compared.
	return `SELECT datname FROM pg_database WHERE datistemplate = false AND datname <> 'postgres' ORDER BY datname`
}

func (d *PostgresDialect) ListSchemasQuery() string {
	return `SELECT nspname FROM pg_namespace WHERE nspname NOT LIKE 'pg\_%' AND nspname <> 'information_schema' ORDER BY nspname`
}

func (d *PostgresDialect) SupportsSnapshot() bool {
	return true
}
