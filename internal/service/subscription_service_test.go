package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/billing"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/repository"
	"github.com/subtrack/subtrack_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewSubscriptionService(repository.NewSubscriptionRepository(db))

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestSubscriptionService_Create(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	sub, err := service.Create(user.ID, &dto.CreateSubscriptionRequest{
		Name:            "Netflix",
		Amount:          29.9,
		BillingCycle:    "monthly",
		NextBillingDate: "2026-10-15",
		Category:        "娱乐",
	})
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.Equal(t, model.StatusActive, sub.Status)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), sub.NextBillingDate)
}

func TestSubscriptionService_Create_InvalidCycle(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Create(user.ID, &dto.CreateSubscriptionRequest{
		Name:            "Netflix",
		Amount:          29.9,
		BillingCycle:    "weekly",
		NextBillingDate: "2026-10-15",
	})
	assert.Equal(t, billing.ErrInvalidCycle, err)
}

func TestSubscriptionService_Create_InvalidDate(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Create(user.ID, &dto.CreateSubscriptionRequest{
		Name:            "Netflix",
		Amount:          29.9,
		BillingCycle:    "monthly",
		NextBillingDate: "15/10/2026",
	})
	assert.Equal(t, ErrInvalidBillingDate, err)
}

func TestSubscriptionService_Get_Ownership(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, owner.ID)

	got, err := service.Get(sub.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = service.Get(sub.ID, other.ID)
	assert.Equal(t, ErrNoPermission, err)

	_, err = service.Get(99999, owner.ID)
	assert.Equal(t, ErrSubscriptionNotFound, err)
}

func TestSubscriptionService_Update_PartialFields(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID, testutil.WithAmount(9.99))

	amount := 19.99
	status := model.StatusCanceled
	updated, err := service.Update(sub.ID, user.ID, &dto.UpdateSubscriptionRequest{
		Amount: &amount,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Amount)
	assert.Equal(t, model.StatusCanceled, updated.Status)
	// Untouched fields survive
	assert.Equal(t, sub.Name, updated.Name)
	assert.Equal(t, sub.BillingCycle, updated.BillingCycle)
}

func TestSubscriptionService_Delete(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	assert.Equal(t, ErrNoPermission, service.Delete(sub.ID, other.ID))

	require.NoError(t, service.Delete(sub.ID, user.ID))
	_, err := service.Get(sub.ID, user.ID)
	assert.Equal(t, ErrSubscriptionNotFound, err)
}

func TestSubscriptionService_List_StatusFilter(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID)
	testutil.TestSubscription(t, db, user.ID, testutil.WithStatus(model.StatusCanceled))

	all, err := service.List(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := service.List(user.ID, model.StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSubscriptionService_Upcoming(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	soon := time.Now().AddDate(0, 0, 3)
	far := time.Now().AddDate(0, 0, 60)
	testutil.TestSubscription(t, db, user.ID, testutil.WithBillingDate(soon))
	testutil.TestSubscription(t, db, user.ID, testutil.WithBillingDate(far))

	upcoming, err := service.Upcoming(user.ID, 30)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, 3, upcoming[0].DaysUntilDue)
}

func TestSubscriptionService_Stats(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	due := time.Now().AddDate(0, 0, 5)
	testutil.TestSubscription(t, db, user.ID,
		testutil.WithAmount(30),
		testutil.WithBillingDate(due))
	testutil.TestSubscription(t, db, user.ID,
		testutil.WithAmount(120),
		testutil.WithCycle(model.CycleYearly),
		testutil.WithBillingDate(time.Now().AddDate(0, 2, 0)))
	testutil.TestSubscription(t, db, user.ID, testutil.WithStatus(model.StatusCanceled))

	stats, err := service.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSubscriptions)
	assert.Equal(t, 2, stats.TotalActive)
	// 30 + 120/12
	assert.InDelta(t, 40, stats.MonthlySpend, 0.001)
	assert.Equal(t, 1, stats.UpcomingPaymentsCount)
	require.NotNil(t, stats.NextPaymentDueDays)
	assert.Equal(t, 5, *stats.NextPaymentDueDays)
	require.NotNil(t, stats.NextPaymentAmount)
	assert.Equal(t, 30.0, *stats.NextPaymentAmount)
}
