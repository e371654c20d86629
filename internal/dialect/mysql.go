package dialect

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL Driver
)

type MysqlDialect struct{}

var mysqlSystemSchemas = systemNames("information_schema", "mysql", "performance_schema", "sys")

func (d *MysqlDialect) Name() string       { return "mysql" }
func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) PingQuery() string {
	return `SELECT 1`
}

func (d *MysqlDialect) ListDatabasesQuery() string {
	return fmt.Sprintf(`SELECT SCHEMA_NAME FROM information_schema.SCHEMATA WHERE SCHEMA_NAME NOT IN (%s) ORDER BY SCHEMA_NAME`, mysqlSystemSchemas)
}

func (d *MysqlDialect) ListSchemasQuery() string {
	// A MySQL database is a schema.
	return d.ListDatabasesQuery()
}

func (d *MysqlDialect) SupportsSnapshot() bool {
	return false
}
