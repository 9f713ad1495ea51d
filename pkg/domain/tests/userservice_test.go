package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
)

func setupUserService(t *testing.T) (service.UserService, *mockStorage) {
	t.Helper()
	storage := newMockStorage()
	return service.NewUserService(storage, stubPasswordManager{}), storage
}

func TestRegisterUser(t *testing.T) {
	userService, storage := setupUserService(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user, err := userService.RegisterUser(ctx, "Ivan", "Petrov", "ivan@example.com", "qwerty123")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.IsActive)
		assert.Equal(t, "hashed:qwerty123", user.HashedPassword)

		saved, ok := storage.users[user.ID]
		require.True(t, ok)
		assert.Equal(t, "ivan@example.com", saved.Email)
	})

	t.Run("Fail on taken email", func(t *testing.T) {
		_, err := userService.RegisterUser(ctx, "Petr", "Ivanov", "ivan@example.com", "qwerty123")
		assert.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("Fail on name with digits", func(t *testing.T) {
		_, err := userService.RegisterUser(ctx, "Ivan42", "Petrov", "ivan2@example.com", "qwerty123")
		assert.ErrorIs(t, err, service.ErrInvalidName)
	})

	t.Run("Fail on surname with spaces", func(t *testing.T) {
		_, err := userService.RegisterUser(ctx, "Ivan", "van Petrov", "ivan2@example.com", "qwerty123")
		assert.ErrorIs(t, err, service.ErrInvalidSurname)
	})

	t.Run("Fail on malformed email", func(t *testing.T) {
		_, err := userService.RegisterUser(ctx, "Ivan", "Petrov", "not-an-email", "qwerty123")
		assert.ErrorIs(t, err, service.ErrInvalidEmail)
	})

	t.Run("Fail on short password", func(t *testing.T) {
		_, err := userService.RegisterUser(ctx, "Ivan", "Petrov", "ivan2@example.com", "short")
		assert.ErrorIs(t, err, service.ErrPasswordTooShort)
	})
}

func TestUpdateUser(t *testing.T) {
	userService, storage := setupUserService(t)
	ctx := context.Background()
	user := seedUser(t, storage, "ivan@example.com")

	t.Run("Success on partial patch", func(t *testing.T) {
		updatedID, err := userService.UpdateUser(ctx, user.ID, model.UserPatch{
			Name: ptr("Oleg"),
		})

		require.NoError(t, err)
		assert.Equal(t, user.ID, updatedID)
		saved := storage.users[user.ID]
		assert.Equal(t, "Oleg", saved.Name)
		assert.Equal(t, "Petrov", saved.Surname)
		assert.Equal(t, "ivan@example.com", saved.Email)
	})

	t.Run("Fail on empty patch", func(t *testing.T) {
		_, err := userService.UpdateUser(ctx, user.ID, model.UserPatch{})
		assert.ErrorIs(t, err, service.ErrNoFieldsProvided)
	})

	t.Run("Fail on malformed email", func(t *testing.T) {
		_, err := userService.UpdateUser(ctx, user.ID, model.UserPatch{Email: ptr("broken")})
		assert.ErrorIs(t, err, service.ErrInvalidEmail)
	})

	t.Run("Fail on deactivated user", func(t *testing.T) {
		inactive := seedUser(t, storage, "gone@example.com")
		inactive.IsActive = false

		_, err := userService.UpdateUser(ctx, inactive.ID, model.UserPatch{Name: ptr("Oleg")})
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestDeactivateUser(t *testing.T) {
	userService, storage := setupUserService(t)
	ctx := context.Background()
	user := seedUser(t, storage, "ivan@example.com")

	t.Run("Success", func(t *testing.T) {
		deletedID, err := userService.DeactivateUser(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, deletedID)
		assert.False(t, storage.users[user.ID].IsActive)
	})

	t.Run("Second deactivation reports not found", func(t *testing.T) {
		_, err := userService.DeactivateUser(ctx, user.ID)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("Fail on unknown user", func(t *testing.T) {
		_, err := userService.DeactivateUser(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestGetUserWithOrders(t *testing.T) {
	userService, storage := setupUserService(t)
	ctx := context.Background()
	user := seedUser(t, storage, "ivan@example.com")
	product := seedProduct(t, storage, 100)

	t.Run("Zero orders yields zero aggregates", func(t *testing.T) {
		view, err := userService.GetUserWithOrders(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, view.TotalOrders)
		assert.Equal(t, 0.0, view.TotalAmount)
	})

	t.Run("Deleted orders are excluded from aggregates", func(t *testing.T) {
		seedOrder(t, storage, user, product, 1, 10.5, model.OrderStatusPending)
		seedOrder(t, storage, user, product, 2, 21.0, model.OrderStatusDelivered)
		seedOrder(t, storage, user, product, 3, 31.5, model.OrderStatusDeleted)

		view, err := userService.GetUserWithOrders(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, 2, view.TotalOrders)
		assert.InDelta(t, 31.5, view.TotalAmount, 1e-9)
	})

	t.Run("Inactive user is still returned", func(t *testing.T) {
		inactive := seedUser(t, storage, "gone@example.com")
		inactive.IsActive = false

		view, err := userService.GetUserWithOrders(ctx, inactive.ID)

		require.NoError(t, err)
		assert.False(t, view.IsActive)
	})

	t.Run("Fail on unknown user", func(t *testing.T) {
		_, err := userService.GetUserWithOrders(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestAuthenticate(t *testing.T) {
	userService, storage := setupUserService(t)
	ctx := context.Background()
	seedUser(t, storage, "ivan@example.com")

	t.Run("Success", func(t *testing.T) {
		user, err := userService.Authenticate(ctx, "ivan@example.com", "qwerty123")

		require.NoError(t, err)
		assert.Equal(t, "ivan@example.com", user.Email)
	})

	t.Run("Fail on wrong password", func(t *testing.T) {
		_, err := userService.Authenticate(ctx, "ivan@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Fail on unknown email", func(t *testing.T) {
		_, err := userService.Authenticate(ctx, "nobody@example.com", "qwerty123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
