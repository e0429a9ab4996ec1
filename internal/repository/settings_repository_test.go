package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_GetBeforeSave(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsRepository_SaveIsSingleton(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	key, err := repo.Save(ctx, &model.Settings{
		ID:               "something-else",
		TelegramBotToken: "123:abc",
		TelegramChatID:   "42",
		RestaurantName:   "Osh Markazi",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SettingsID, key)

	_, err = repo.Save(ctx, &model.Settings{
		TelegramBotToken: "456:def",
		TelegramChatID:   "43",
		RestaurantName:   "Plov House",
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.SettingsID, got.ID)
	assert.Equal(t, "456:def", got.TelegramBotToken)
	assert.Equal(t, "43", got.TelegramChatID)
	assert.Equal(t, "Plov House", got.RestaurantName)

	conn, err := db.Session(ctx)
	require.NoError(t, err)
	var count int64
	require.NoError(t, conn.Table("settings").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
