package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/testutil"
)

func testNotification(userID, subID int64, key string) *model.Notification {
	return &model.Notification{
		UserID:         userID,
		SubscriptionID: subID,
		DedupKey:       key,
		Kind:           model.NotificationUpcoming,
		Title:          "付款提醒",
		Message:        "Netflix 订阅即将扣款",
		DueDate:        time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC),
		Priority:       model.PriorityMedium,
	}
}

func TestNotificationRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	inserted, err := repo.Create(testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25"))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestNotificationRepository_Create_DuplicateKeyIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	key := "upcoming:1:2025-09-25"
	inserted, err := repo.Create(testNotification(user.ID, sub.ID, key))
	require.NoError(t, err)
	assert.True(t, inserted)

	// 同一去重键再次写入被忽略，不报错、不产生第二条
	inserted, err = repo.Create(testNotification(user.ID, sub.ID, key))
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotificationRepository_ListDedupKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	_, err := repo.Create(testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25"))
	require.NoError(t, err)
	_, err = repo.Create(testNotification(user.ID, sub.ID, "overdue:1:2025-08-25"))
	require.NoError(t, err)

	keys, err := repo.ListDedupKeys(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"upcoming:1:2025-09-25", "overdue:1:2025-08-25"}, keys)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	n := testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25")
	_, err := repo.Create(n)
	require.NoError(t, err)

	count, err := repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.MarkRead(n.ID, user.ID))

	count, err = repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationRepository_MarkRead_WrongUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	n := testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25")
	_, err := repo.Create(n)
	require.NoError(t, err)

	// 非属主操作不生效
	require.NoError(t, repo.MarkRead(n.ID, other.ID))

	count, err := repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	_, err := repo.Create(testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25"))
	require.NoError(t, err)
	_, err = repo.Create(testNotification(user.ID, sub.ID, "upcoming:1:2025-10-25"))
	require.NoError(t, err)

	require.NoError(t, repo.MarkAllRead(user.ID))

	count, err := repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationRepository_ClearByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	_, err := repo.Create(testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25"))
	require.NoError(t, err)

	require.NoError(t, repo.ClearByUser(user.ID))

	list, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationRepository_DeleteReadBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	old := testNotification(user.ID, sub.ID, "upcoming:1:2025-01-25")
	old.Read = true
	_, err := repo.Create(old)
	require.NoError(t, err)
	db.Model(old).Update("created_at", time.Now().AddDate(0, -2, 0))

	fresh := testNotification(user.ID, sub.ID, "upcoming:1:2025-09-25")
	fresh.Read = true
	_, err = repo.Create(fresh)
	require.NoError(t, err)

	deleted, err := repo.DeleteReadBefore(time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	list, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
