package dialect

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	tests := []struct {
		driver   string
		name     string
		snapshot bool
	}{
		{"postgres", "postgres", true},
		{"postgresql", "postgres", true},
		{"sqlserver", "sqlserver", false},
		{"mssql", "sqlserver", false},
		{"oracle", "oracle", false},
		{"mysql", "mysql", false},
		{"", "mysql", false},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d := GetDialect(tt.driver)
			assert.Equal(t, tt.name, d.Name())
			assert.Equal(t, tt.snapshot, d.SupportsSnapshot())
		})
	}
}

func TestMysqlListDatabasesSkipsSystemSchemas(t *testing.T) {
	q := (&MysqlDialect{}).ListDatabasesQuery()
	assert.Contains(t, q, "NOT IN ('information_schema', 'mysql', 'performance_schema', 'sys')")
}

func TestCheckConnection(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		expectErr bool
	}{
		{
			name: "ok",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
			},
		},
		{
			name: "query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnError(assert.AnError)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = CheckConnection(context.Background(), db, &PostgresDialect{})
			if tt.expectErr {
				assert.ErrorIs(t, err, assert.AnError)
				assert.Contains(t, err.Error(), "check postgres connection")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListDatabases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := &PostgresDialect{}
	mock.ExpectQuery(regexp.QuoteMeta(d.ListDatabasesQuery())).
		WillReturnRows(sqlmock.NewRows([]string{"datname"}).AddRow("app").AddRow("billing").AddRow(nil))

	names, err := ListDatabases(context.Background(), db, d)

	require.NoError(t, err)
	assert.Equal(t, []string{"app", "billing"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDatabases_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("sys.databases").WillReturnRows(sqlmock.NewRows([]string{"name"}))

	names, err := ListDatabases(context.Background(), db, &MSSQLDialect{})

	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestListSchemas_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("ALL_USERS").
		WillReturnRows(sqlmock.NewRows([]string{"USERNAME"}).AddRow("APP").RowError(0, assert.AnError))

	_, err = ListSchemas(context.Background(), db, &OracleDialect{})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "list oracle schemas")
}
