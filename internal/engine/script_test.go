package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-sync/internal/engine"
)

func indexOf(script []string, substr string) int {
	for i, stmt := range script {
		if strings.Contains(stmt, substr) {
			return i
		}
	}
	return -1
}

func TestSyncScript_EmptyTarget(t *testing.T) {
	source := parse(t, `CREATE TABLE public.order_items (
    "order_id" integer
);
CREATE TABLE public.orders (
    "id" integer,
    "user_id" integer
);
CREATE TABLE public.users (
    "id" integer
);
CREATE INDEX orders_user_idx ON public.orders USING btree (user_id);
CREATE VIEW public.v AS SELECT 1;
ALTER TABLE ONLY public.order_items
    ADD CONSTRAINT items_order_fkey FOREIGN KEY (order_id) REFERENCES public.orders(id);
ALTER TABLE ONLY public.orders
    ADD CONSTRAINT orders_user_fkey FOREIGN KEY (user_id) REFERENCES public.users(id);`)

	engine.Compare(source, nil, nil)
	script := engine.SyncScript(source, nil)

	require.NotEmpty(t, script)
	assert.Equal(t, "CREATE SCHEMA public;", script[0])

	users := indexOf(script, "CREATE TABLE public.users")
	orders := indexOf(script, "CREATE TABLE public.orders")
	items := indexOf(script, "CREATE TABLE public.order_items")
	require.NotEqual(t, -1, users)
	assert.Less(t, users, orders)
	assert.Less(t, orders, items)

	idx := indexOf(script, "orders_user_idx")
	fk := indexOf(script, "orders_user_fkey")
	view := indexOf(script, "CREATE VIEW public.v")
	assert.Less(t, items, idx)
	assert.Less(t, idx, fk)
	assert.Less(t, fk, view)
	assert.Equal(t, -1, indexOf(script, "ADD COLUMN"), "columns of new tables come with the table")
}

func TestSyncScript_PartialDifferences(t *testing.T) {
	source := parse(t, baseDump+`
ALTER TABLE ONLY public.users
    ADD CONSTRAINT users_team_fkey FOREIGN KEY (id) REFERENCES public.teams(id);
`)
	target := parse(t, strings.Replace(baseDump, `    "name" text`, `    "name" character varying`, 1))
	target[1].Functions = nil

	engine.Compare(source, target, nil)
	script := engine.SyncScript(source, target)

	assert.NotEqual(t, -1, indexOf(script, "users_team_fkey"))
	assert.Equal(t, -1, indexOf(script, "orders_user_fkey"), "existing foreign keys are not repeated")
	assert.NotEqual(t, -1, indexOf(script, "CREATE FUNCTION public.add_one"))

	review := indexOf(script, "-- column public.users.name changed")
	require.NotEqual(t, -1, review)
	assert.Contains(t, script[review], `-- ALTER TABLE public.users ADD COLUMN "name" text;`)
	assert.Equal(t, -1, indexOf(script, "CREATE SCHEMA"))
	assert.Equal(t, -1, indexOf(script, "archive"))
}

func TestSyncScript_NothingToDo(t *testing.T) {
	source := parse(t, baseDump)
	target := parse(t, baseDump)

	engine.Compare(source, target, nil)

	assert.Empty(t, engine.SyncScript(source, target))
}
