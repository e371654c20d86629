package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"struct-sync/internal/schema"
)

func lookupForest() []*schema.Schema {
	s := schema.NewSchema("Sales")
	s.DDL = `CREATE SCHEMA "Sales";`
	t := schema.NewTable("orders", "CREATE TABLE ...")
	t.Columns = append(t.Columns, &schema.Column{Name: "Total", DataType: "numeric", DDL: "ADD total"})
	t.Indexes = append(t.Indexes, &schema.Index{Name: "orders_idx", DDL: "CREATE INDEX orders_idx"})
	s.Tables = append(s.Tables, t)
	s.Views = append(s.Views, &schema.View{Name: "open_orders", DDL: "CREATE VIEW"})
	s.Functions = append(s.Functions, &schema.Function{Name: "total", DDL: "CREATE FUNCTION"})
	s.Procedures = append(s.Procedures, &schema.Procedure{Name: "close", DDL: "CREATE PROCEDURE"})
	return []*schema.Schema{s}
}

func TestLookup(t *testing.T) {
	forest := lookupForest()

	cases := []struct {
		path, kind, ddl string
	}{
		{"sales", "schema", `CREATE SCHEMA "Sales";`},
		{`"Sales".orders`, "table", "CREATE TABLE ..."},
		{"sales.ORDERS.total", "column", "ADD total"},
		{"sales.orders.orders_idx", "index", "CREATE INDEX orders_idx"},
		{"sales.open_orders", "view", "CREATE VIEW"},
		{"sales.total", "function", "CREATE FUNCTION"},
		{"sales.close", "procedure", "CREATE PROCEDURE"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			kind, ddl, ok := schema.Lookup(forest, tc.path)
			assert.True(t, ok)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.ddl, ddl)
		})
	}
}

func TestLookup_Missing(t *testing.T) {
	forest := lookupForest()

	for _, path := range []string{"public", "sales.nope", "sales.orders.nope", "sales.open_orders.x"} {
		_, _, ok := schema.Lookup(forest, path)
		assert.False(t, ok, path)
	}
}
