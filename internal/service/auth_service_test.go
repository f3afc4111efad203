package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/repository"
	"github.com/subtrack/subtrack_go_server/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		Reminder: config.ReminderConfig{
			DefaultEnabled:    true,
			DefaultDaysBefore: 7,
		},
		Budget: config.BudgetConfig{
			DefaultThresholds: []float64{75, 90, 100},
		},
	}
}

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewBudgetRepository(db),
		testConfig(),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestAuthService_Register_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "password123",
	}

	resp, err := service.Register(req)
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)

	// Registration initializes default reminder settings
	settings, err := repository.NewSettingsRepository(db).GetByUser(resp.UserID)
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	assert.Equal(t, 7, settings.DaysBefore)

	// And an empty budget
	budget, err := repository.NewBudgetRepository(db).GetByUser(resp.UserID)
	require.NoError(t, err)
	assert.Zero(t, budget.MonthlyLimit)
	assert.Equal(t, []float64{75, 90, 100}, budget.ThresholdList())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Username: "user1",
		Email:    "duplicate@example.com",
		Password: "password123",
	}
	_, err := service.Register(req)
	require.NoError(t, err)

	req2 := &dto.RegisterRequest{
		Username: "user2",
		Email:    "duplicate@example.com",
		Password: "password123",
	}
	_, err = service.Register(req2)
	assert.Equal(t, ErrEmailExists, err)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Username: "sameuser",
		Email:    "first@example.com",
		Password: "password123",
	}
	_, err := service.Register(req)
	require.NoError(t, err)

	req2 := &dto.RegisterRequest{
		Username: "sameuser",
		Email:    "second@example.com",
		Password: "password123",
	}
	_, err = service.Register(req2)
	assert.Equal(t, ErrUsernameExists, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "loginuser", resp.User.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrongpassword",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Email:    "missing@example.com",
		Password: "password123",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}
