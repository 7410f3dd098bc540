package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/store/storetest"
)

func TestContract(t *testing.T) {
	dsn := os.Getenv("CHECKLIST_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CHECKLIST_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `DELETE FROM checklist_kv`)
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestOpenWrapsDriverError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	var gotDriver, gotDSN string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return nil, errors.New("boom")
	}

	_, err := Open(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open postgres")
	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, DefaultDSN, gotDSN)
}
