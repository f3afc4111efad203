package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/testutil"
)

func TestSettingsRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingsRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestSettings(t, db, user.ID)

	s, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, 7, s.DaysBefore)
	assert.Equal(t, model.ChannelBrowser, s.Channel)
}

func TestSettingsRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingsRepository(db)
	user := testutil.TestUser(t, db)
	s := testutil.TestSettings(t, db, user.ID)

	s.DaysBefore = 3
	s.Channel = model.ChannelBoth
	require.NoError(t, repo.Update(s))

	found, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.DaysBefore)
	assert.True(t, found.EmailEnabled())
}

func TestSettingsRepository_UpdateLastCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingsRepository(db)
	user := testutil.TestUser(t, db)
	testutil.TestSettings(t, db, user.ID)

	checkedAt := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastCheck(user.ID, checkedAt))

	found, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastCheckAt)
	assert.True(t, found.LastCheckAt.Equal(checkedAt))
}

func TestSettingsRepository_ListEnabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingsRepository(db)
	u1 := testutil.TestUser(t, db)
	u2 := testutil.TestUser(t, db)

	testutil.TestSettings(t, db, u1.ID)
	disabled := testutil.TestSettings(t, db, u2.ID)
	disabled.Enabled = false
	require.NoError(t, repo.Update(disabled))

	list, err := repo.ListEnabled()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, u1.ID, list[0].UserID)
}
