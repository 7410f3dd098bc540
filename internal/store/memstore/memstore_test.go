package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, New(nil))
}

func TestSeedIsCopied(t *testing.T) {
	seed := map[string]string{"currentDate": "2024-01-05"}
	s := New(seed)
	require.NoError(t, s.Set(context.Background(), "currentDate", "2024-01-06"))

	assert.Equal(t, "2024-01-05", seed["currentDate"])
	assert.Equal(t, "2024-01-06", s.Snapshot()["currentDate"])
	assert.Equal(t, 1, s.Writes())
}
