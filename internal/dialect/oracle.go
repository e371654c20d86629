package dialect

import (
	_ "github.com/sijms/go-ora/v2" // Oracle Driver
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string       { return "oracle" }
func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) PingQuery() string {
	return `SELECT 1 FROM DUAL`
}

func (d *OracleDialect) ListDatabasesQuery() string {
	// A session sees a single database.
	return `SELECT SYS_CONTEXT('USERENV', 'DB_NAME') FROM DUAL`
}

func (d *OracleDialect) ListSchemasQuery() string {
	// Oracle schemas are users; ORACLE_MAINTAINED hides the built-in ones.
	return `SELECT USERNAME FROM ALL_USERS WHERE ORACLE_MAINTAINED = 'N' ORDER BY USERNAME`
}

func (d *OracleDialect) SupportsSnapshot() bool {
	return false
}
