package dialect

import (
	"context"
	"database/sql"
	"fmt"
)

// CheckConnection runs the dialect's ping query, which unlike db.PingContext
// also proves the credentials can execute statements.
func CheckConnection(ctx context.Context, db *sql.DB, d Dialect) error {
	var one int
	if err := db.QueryRowContext(ctx, d.PingQuery()).Scan(&one); err != nil {
		return fmt.Errorf("check %s connection: %w", d.Name(), err)
	}
	return nil
}

// ListDatabases returns the user databases visible on the server.
func ListDatabases(ctx context.Context, db *sql.DB, d Dialect) ([]string, error) {
	names, err := queryNames(ctx, db, d.ListDatabasesQuery())
	if err != nil {
		return nil, fmt.Errorf("list %s databases: %w", d.Name(), err)
	}
	return names, nil
}

// ListSchemas returns the user schemas of the connected database.
func ListSchemas(ctx context.Context, db *sql.DB, d Dialect) ([]string, error) {
	names, err := queryNames(ctx, db, d.ListSchemasQuery())
	if err != nil {
		return nil, fmt.Errorf("list %s schemas: %w", d.Name(), err)
	}
	return names, nil
}

func queryNames(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	return names, rows.Err()
}
