package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/querydesk/internal/config"
	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetupFallbackLogger()
	m.Run()
}

func testConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	return config.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "court.db"),
		Driver:          "sqlite3",
		MaxConnections:  2,
		MaxIdleConns:    1,
		ConnMaxIdleTime: "1m",
		QueryTimeout:    "10s",
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Path = filepath.Join(t.TempDir(), "data", "nested", "court.db")

	db, err := Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite3", db.Driver())
}

func TestRunExecAndQuery(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rs, err := db.Run(ctx, `CREATE TABLE PARTICIPANT (participant_id INTEGER PRIMARY KEY, first_name TEXT)`)
	require.NoError(t, err)
	assert.Empty(t, rs.Columns)

	rs, err = db.Run(ctx, `INSERT INTO PARTICIPANT (participant_id, first_name) VALUES (1, 'Dana'), (2, 'Lee')`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rs.RowsAffected)

	rs, err = db.Run(ctx, `SELECT participant_id, first_name FROM PARTICIPANT ORDER BY participant_id`)
	require.NoError(t, err)
	assert.Equal(t, []string{"participant_id", "first_name"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	assert.Equal(t, "Dana", rs.Rows[0][1])
}

func TestRunPreservesNull(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Run(ctx, `CREATE TABLE RISK_ASSESSMENT (assessment_id INTEGER, score INTEGER)`)
	require.NoError(t, err)

	_, err = db.Run(ctx, `INSERT INTO RISK_ASSESSMENT VALUES (1, NULL)`)
	require.NoError(t, err)

	rs, err := db.Run(ctx, `SELECT score FROM RISK_ASSESSMENT`)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Nil(t, rs.Rows[0][0])
}

func TestRunInvalidSQL(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Run(context.Background(), `SELECT * FROM no_such_table`)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeQueryExecution))
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1", true},
		{"  select 1", true},
		{"WITH t AS (SELECT 1) SELECT * FROM t", true},
		{"PRAGMA table_info(PARTICIPANT)", true},
		{"EXPLAIN SELECT 1", true},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a = 1", false},
		{"CREATE TABLE t (a INTEGER)", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, returnsRows(tc.sql), tc.sql)
	}
}
