package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
	"quickbite/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account with a hashed password", func(t *testing.T) {
		svc := newAuthService(t)

		user, err := svc.Register("Eater@Example.com", "hunter2pass", "Eater", "9999999999")
		require.NoError(t, err)
		assert.Equal(t, "eater@example.com", user.Email)
		assert.Equal(t, entity.RoleUser, user.Role)
		assert.NotEqual(t, "hunter2pass", user.Password)
	})

	t.Run("rejects duplicate emails regardless of case", func(t *testing.T) {
		svc := newAuthService(t)

		_, err := svc.Register("eater@example.com", "hunter2pass", "Eater", "")
		require.NoError(t, err)

		_, err = svc.Register("EATER@example.com", "otherpass123", "Copycat", "")
		assert.True(t, apperr.Is(err, apperr.CodeConflict))
	})
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	registered, err := svc.Register("eater@example.com", "hunter2pass", "Eater", "")
	require.NoError(t, err)

	t.Run("issues a token carrying the user's id and role", func(t *testing.T) {
		token, user, err := svc.Login("eater@example.com", "hunter2pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		claims, err := utils.ParseToken(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, entity.RoleUser, claims.Role)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, errPass := svc.Login("eater@example.com", "wrongpass")
		_, _, errMail := svc.Login("nobody@example.com", "hunter2pass")

		require.Error(t, errPass)
		require.Error(t, errMail)
		assert.Equal(t, errPass.Error(), errMail.Error())
		assert.True(t, apperr.Is(errPass, apperr.CodeUnauthorized))
		assert.True(t, apperr.Is(errMail, apperr.CodeUnauthorized))
	})
}

func TestUpdateProfile(t *testing.T) {
	svc := newAuthService(t)
	user, err := svc.Register("eater@example.com", "hunter2pass", "Eater", "111")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, &UpdateProfileIn{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	// Blank fields keep their previous values.
	assert.Equal(t, "111", updated.PhoneNumber)
}
