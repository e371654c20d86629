package dialect

import (
	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string { return "sqlserver" }

// go-mssqldb registers both "sqlserver" and "mssql"; the former takes @p1
// style parameters.
func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

func (d *MSSQLDialect) PingQuery() string {
	return `SELECT 1`
}

func (d *MSSQLDialect) ListDatabasesQuery() string {
	// database_id 1-4 are master, tempdb, model and msdb.
	return `SELECT name FROM sys.databases WHERE database_id > 4 ORDER BY name`
}

func (d *MSSQLDialect) ListSchemasQuery() string {
	return `SELECT name FROM sys.schemas WHERE schema_id < 16384 AND name NOT IN ('sys', 'INFORMATION_SCHEMA', 'guest') ORDER BY name`
}

func (d *MSSQLDialect) SupportsSnapshot() bool {
	return false
}
