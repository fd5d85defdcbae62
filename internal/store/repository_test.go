// AngelaMos | 2026
// repository_test.go

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingConn captures issued queries so their shape can be asserted
// without a live database.
type recordedQuery struct {
	query string
	args  []driver.NamedValue
}

type recordingConnector struct {
	queries *[]recordedQuery
}

func (c recordingConnector) Connect(context.Context) (driver.Conn, error) {
	return &recordingConn{queries: c.queries}, nil
}

func (c recordingConnector) Driver() driver.Driver { return recordingDriver{} }

type recordingDriver struct{}

func (recordingDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

type recordingConn struct {
	queries *[]recordedQuery
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin not supported")
}

func (c *recordingConn) QueryContext(
	ctx context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Rows, error) {
	*c.queries = append(*c.queries, recordedQuery{query: query, args: args})
	return &singleBoolRows{}, nil
}

type singleBoolRows struct {
	done bool
}

func (r *singleBoolRows) Columns() []string { return []string{"exists"} }

func (r *singleBoolRows) Close() error { return nil }

func (r *singleBoolRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = false
	return nil
}

func newRecordingDB(t *testing.T) (*sqlx.DB, *[]recordedQuery) {
	t.Helper()
	queries := &[]recordedQuery{}
	db := sqlx.NewDb(sql.OpenDB(recordingConnector{queries: queries}), "pgx")
	t.Cleanup(func() { _ = db.Close() })
	return db, queries
}

// Create-path uniqueness checks run with an empty exclude id. The exclusion
// must compare on id::text; a bare uuid comparison cannot bind "" and store
// creation fails before the insert.
func TestRepository_ExistsByEmail_EmptyExcludeID(t *testing.T) {
	db, queries := newRecordingDB(t)
	repo := NewRepository(db)

	exists, err := repo.ExistsByEmail(
		context.Background(),
		"hello@corner.example",
		"",
	)
	require.NoError(t, err)
	assert.False(t, exists)

	require.Len(t, *queries, 1)
	q := (*queries)[0]

	assert.Contains(t, q.query, "id::text <> $2")
	require.Len(t, q.args, 2)
	assert.Equal(t, "hello@corner.example", q.args[0].Value)
	assert.Equal(t, "", q.args[1].Value)
}

func TestRepository_ExistsByOwner_EmptyExcludeID(t *testing.T) {
	db, queries := newRecordingDB(t)
	repo := NewRepository(db)

	exists, err := repo.ExistsByOwner(context.Background(), "owner-1", "")
	require.NoError(t, err)
	assert.False(t, exists)

	require.Len(t, *queries, 1)
	q := (*queries)[0]

	assert.Contains(t, q.query, "id::text <> $2")
	require.Len(t, q.args, 2)
	assert.Equal(t, "owner-1", q.args[0].Value)
	assert.Equal(t, "", q.args[1].Value)
}
