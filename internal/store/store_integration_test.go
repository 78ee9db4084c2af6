package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/buyer-intel/internal/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	st, err := Connect(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.EnsureSchema(ctx))
	_, err = st.DeleteRegistry(ctx, types.RegistryVerra)
	require.NoError(t, err)

	return st
}

func TestSaveAndLoadRecords(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	records := []types.RawRecord{
		{"retirement_beneficiary": "Acme Corp", "quantity_issued": float64(1500)},
		{"retirement_beneficiary": "Beta LLC", "quantity_issued": float64(100)},
		{"retirement_beneficiary": "Gamma GmbH"},
	}

	saved, err := st.SaveRecords(ctx, types.RegistryVerra, uuid.New(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	loaded, err := st.LoadRecords(ctx, types.RegistryVerra)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "Acme Corp", loaded[0]["retirement_beneficiary"], "load order must match ingest order")
	assert.Equal(t, "Beta LLC", loaded[1]["retirement_beneficiary"])
	assert.Equal(t, "Gamma GmbH", loaded[2]["retirement_beneficiary"])

	count, err := st.CountRecords(ctx, types.RegistryVerra)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeleteRegistry(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	records := []types.RawRecord{{"retirement_beneficiary": "Acme Corp"}}
	_, err := st.SaveRecords(ctx, types.RegistryVerra, uuid.New(), records)
	require.NoError(t, err)

	deleted, err := st.DeleteRegistry(ctx, types.RegistryVerra)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := st.CountRecords(ctx, types.RegistryVerra)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
