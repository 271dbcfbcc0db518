package items

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	statements []string
}

func (f *execRecorder) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (f *execRecorder) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (f *execRecorder) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func TestDeleteDetachesDocumentLineSnapshots(t *testing.T) {
	rec := &execRecorder{}
	repo := &repository{db: rec}

	require.NoError(t, repo.Delete(context.Background(), 10))

	require.Len(t, rec.statements, 2)
	assert.Contains(t, rec.statements[0], "SET item_id = NULL")
	assert.Contains(t, rec.statements[1], "DELETE FROM items")
}
