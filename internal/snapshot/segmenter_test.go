package snapshot_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-sync/internal/snapshot"
)

func segmentText(text string) []snapshot.Statement {
	return snapshot.Segment(snapshot.SplitLines(text))
}

func kinds(stmts []snapshot.Statement) []snapshot.Kind {
	out := make([]snapshot.Kind, len(stmts))
	for i, s := range stmts {
		out[i] = s.Kind
	}
	return out
}

func TestSegment_DollarQuotedBodyIsOneStatement(t *testing.T) {
	text := `CREATE FUNCTION public.f(a integer) RETURNS integer
    LANGUAGE plpgsql
    AS $fn$
BEGIN
    PERFORM (SELECT count(*) FROM (VALUES (1), (2)) v(x));
    RAISE NOTICE 'done; (really)';
    RETURN a;
END;
$fn$;
SET search_path = public;`

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.Equal(t, snapshot.KindFunction, stmts[0].Kind)
	assert.True(t, strings.HasSuffix(stmts[0].Text, "$fn$;"))
	assert.Equal(t, 1, stmts[0].Line)
	assert.Equal(t, snapshot.KindOther, stmts[1].Kind)
	assert.Equal(t, 10, stmts[1].Line)
}

func TestSegment_OnlySameTagClosesBody(t *testing.T) {
	text := `CREATE PROCEDURE public.p()
    LANGUAGE plpgsql
    AS $outer$
BEGIN
    EXECUTE $$SELECT 1;$$;
END;
$outer$;`

	stmts := segmentText(text)

	require.Len(t, stmts, 1)
	assert.Equal(t, snapshot.KindProcedure, stmts[0].Kind)
	assert.Equal(t, text, stmts[0].Text)
}

func TestSegment_BodyClosedOnMarkerLine(t *testing.T) {
	text := "CREATE FUNCTION public.one() RETURNS integer\n    LANGUAGE sql\n    AS $$select 1;$$;\nCREATE SCHEMA s;"

	stmts := segmentText(text)

	assert.Equal(t, []snapshot.Kind{snapshot.KindFunction, snapshot.KindSchema}, kinds(stmts))
}

func TestSegment_TerminatorAfterClosingTag(t *testing.T) {
	text := "CREATE FUNCTION public.f() RETURNS void\n    AS $$\nBEGIN\nEND;\n$$\n    LANGUAGE plpgsql;\nSET x = 1;"

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.True(t, strings.HasSuffix(stmts[0].Text, "LANGUAGE plpgsql;"))
}

func TestSegment_RoutineWithoutBodyEndsAtTerminator(t *testing.T) {
	text := "CREATE FUNCTION public.f() RETURNS integer\n    LANGUAGE sql\n    AS 'select 1';\nSET x = 1;"

	stmts := segmentText(text)

	assert.Equal(t, []snapshot.Kind{snapshot.KindFunction, snapshot.KindOther}, kinds(stmts))
}

func TestSegment_UnclosedBodyFallsBackToFirstTerminator(t *testing.T) {
	text := "CREATE FUNCTION public.f() RETURNS void\n    AS $$\nBEGIN\n  PERFORM 1;\nEND;"

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE FUNCTION public.f() RETURNS void\n    AS $$\nBEGIN\n  PERFORM 1;", stmts[0].Text)
	assert.Equal(t, snapshot.KindOther, stmts[1].Kind)
}

func TestSegment_TableEndsAtClosingParen(t *testing.T) {
	text := `CREATE TABLE public.t (
    a text DEFAULT 'x;',
    b text DEFAULT ');'::text,
    c integer
);
ALTER TABLE public.t OWNER TO app;`

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.Equal(t, snapshot.KindTable, stmts[0].Kind)
	assert.True(t, strings.HasSuffix(stmts[0].Text, "\n);"))
	assert.Equal(t, snapshot.KindAlter, stmts[1].Kind)
}

func TestSegment_PartitionedTable(t *testing.T) {
	text := "CREATE TABLE public.m (\n    a integer\n)\nPARTITION BY RANGE (a);\nSET x = 1;"

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.True(t, strings.HasSuffix(stmts[0].Text, "PARTITION BY RANGE (a);"))
}

func TestSegment_TableFallsBackToTerminator(t *testing.T) {
	text := "CREATE TABLE public.p PARTITION OF public.m\nDEFAULT;\nSET x = 1;"

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE public.p PARTITION OF public.m\nDEFAULT;", stmts[0].Text)
}

func TestSegment_TableWithoutBlockDoesNotSwallowNext(t *testing.T) {
	text := "CREATE TABLE public.p PARTITION OF public.m DEFAULT;\nCREATE TABLE public.q (\n    a integer\n);"

	stmts := segmentText(text)

	assert.Equal(t, []snapshot.Kind{snapshot.KindTable, snapshot.KindTable}, kinds(stmts))
}

func TestSegment_PartialStatementAtEndOfInput(t *testing.T) {
	text := "SET x = 1;\nCREATE VIEW public.v AS\n SELECT 1\n\n-- trailing comment"

	stmts := segmentText(text)

	require.Len(t, stmts, 2)
	assert.Equal(t, snapshot.KindView, stmts[1].Kind)
	assert.Equal(t, "CREATE VIEW public.v AS\n SELECT 1\n\n-- trailing comment", stmts[1].Text)
}

func TestSegment_PreservesBlankAndCommentLines(t *testing.T) {
	text := "ALTER TABLE ONLY public.t\n\n    -- keep me\n    ADD CONSTRAINT t_pkey PRIMARY KEY (id);"

	stmts := segmentText(text)

	require.Len(t, stmts, 1)
	assert.Equal(t, text, stmts[0].Text)
}

func TestSegment_SkipsUnrecognizedLines(t *testing.T) {
	text := "--\n-- header\n--\n\nCOMMENT ON TABLE t IS 'x'\nSET a = 1;"

	stmts := segmentText(text)

	require.Len(t, stmts, 1)
	assert.Equal(t, "SET a = 1;", stmts[0].Text)
}

func TestSegment_CarriageReturns(t *testing.T) {
	stmts := segmentText("CREATE SCHEMA a;\r\nCREATE SCHEMA b;\r\n")

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE SCHEMA a;", stmts[0].Text)
}

func TestSegment_SourceOrderOfFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/app.sql")
	require.NoError(t, err)

	stmts := segmentText(string(data))

	for i := 1; i < len(stmts); i++ {
		assert.Less(t, stmts[i-1].Line, stmts[i].Line)
	}

	counts := make(map[snapshot.Kind]int)
	for _, s := range stmts {
		counts[s.Kind]++
	}
	assert.Equal(t, 1, counts[snapshot.KindSchema])
	assert.Equal(t, 2, counts[snapshot.KindFunction])
	assert.Equal(t, 1, counts[snapshot.KindProcedure])
	assert.Equal(t, 2, counts[snapshot.KindTable])
	assert.Equal(t, 1, counts[snapshot.KindView])
	assert.Equal(t, 3, counts[snapshot.KindIndex])
	assert.Equal(t, 6, counts[snapshot.KindAlter])
}

func TestSegment_Idempotent(t *testing.T) {
	data, err := os.ReadFile("testdata/app.sql")
	require.NoError(t, err)

	for _, s := range segmentText(string(data)) {
		again := segmentText(s.Text)
		require.Len(t, again, 1, "statement at line %d", s.Line)
		assert.Equal(t, s.Kind, again[0].Kind)
		assert.Equal(t, s.Text, again[0].Text)
	}
}

func TestSegment_RandomTablesStaySeparate(t *testing.T) {
	gofakeit.Seed(7)

	var b strings.Builder
	var names []string
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("%s_%d", gofakeit.Regex(`[a-z]{3,10}`), i)
		names = append(names, name)
		fmt.Fprintf(&b, "CREATE TABLE public.%s (\n", name)
		cols := gofakeit.Number(1, 6)
		for c := 0; c < cols; c++ {
			sep := ","
			if c == cols-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "    %s_%d numeric(%d,2) DEFAULT '%s;'%s\n", gofakeit.Regex(`[a-z]{2,8}`), c, gofakeit.Number(3, 12), gofakeit.Word(), sep)
		}
		b.WriteString(");\n\n")
	}

	stmts := segmentText(b.String())

	require.Len(t, stmts, len(names))
	for i, s := range stmts {
		assert.Equal(t, snapshot.KindTable, s.Kind)
		assert.Contains(t, s.Text, "public."+names[i]+" (")
	}
}
