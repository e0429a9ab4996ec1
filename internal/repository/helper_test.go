package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/resto-manager/pkg/store"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *store.DB {
	db := store.New(store.Config{DSN: "file::memory:"})
	require.NoError(t, db.Init(context.Background()))
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
