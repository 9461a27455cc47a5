package services

import (
	"testing"

	"github.com/huyng/kanban-api/internal/auth"
	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/events"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	publisher := &recordingPublisher{}
	tokens := auth.NewTokenManager("test-secret", 1)
	return NewAuthService(repository.NewUserRepository(db), tokens, publisher), publisher
}

func TestRegisterNormalizesEmailAndPublishes(t *testing.T) {
	service, publisher := newTestAuthService(t)

	user, err := service.Register(RegisterInput{
		Email:    "  Alice@Example.COM ",
		FullName: "Alice",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "password123", user.PasswordHash)

	require.Len(t, publisher.types, 1)
	require.Equal(t, events.UserRegistered, publisher.types[0])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(RegisterInput{
		Email:    "alice@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(RegisterInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{Email: "ALICE@example.com", Password: "password456"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginReturnsTokenForValidCredentials(t *testing.T) {
	service, _ := newTestAuthService(t)

	registered, err := service.Register(RegisterInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	token, user, err := service.Login(LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, registered.ID, user.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(RegisterInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = service.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, _, err := service.Login(LoginInput{Email: "nobody@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
