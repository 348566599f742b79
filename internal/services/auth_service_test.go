// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricetrail/pricetrail-backend/internal/models"
)

func TestRegisterCreatesUserWithDefaultWishlist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-9",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)

	var wishlists []models.Wishlist
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).Find(&wishlists).Error)
	assert.Len(t, wishlists, 1)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := &RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-9",
		Name:     "Alice",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.EqualError(t, err, "user with this email already exists")
}

func TestRegisterValidationFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{Email: "not-an-email", Password: "correct-horse-9", Name: "X"})
	assert.Error(t, err)

	_, err = svc.Register(&RegisterRequest{Email: "bob@example.com", Password: "short", Name: "Bob"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-9",
		Name:     "Alice",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "alice@example.com", Password: "correct-horse-9"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-9",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.EqualError(t, err, "invalid email or password")

	// Unknown emails produce the same message so accounts cannot be probed.
	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "correct-horse-9"})
	assert.EqualError(t, err, "invalid email or password")
}

func TestLoginSuspendedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-9",
		Name:     "Alice",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(resp.User).Update("status", models.UserStatusSuspended).Error)

	_, err = svc.Login(&LoginRequest{Email: "alice@example.com", Password: "correct-horse-9"})
	assert.EqualError(t, err, "account is suspended")
}
