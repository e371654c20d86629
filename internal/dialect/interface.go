package dialect

// Dialect abstracts the server-specific catalog queries used around a
// structure comparison.
type Dialect interface {
	// Identity
	Name() string
	DriverName() string

	// Catalog Queries
	PingQuery() string
	ListDatabasesQuery() string
	ListSchemasQuery() string

	// Snapshot support: only servers that pg_dump can talk to produce a dump
	// the snapshot parser understands.
	SupportsSnapshot() bool
}
