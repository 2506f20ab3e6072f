package services

import (
	"testing"

	"github.com/jfuentes/bookshelf-be/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	created, err := s.Register("alice@example.com", "s3cret", strPtr("Alice"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "Alice", *created.Name)
	assert.Empty(t, created.PasswordHash)

	// the stored hash is bcrypt, not the plaintext password
	var hash string
	require.NoError(t, db.QueryRow(
		`SELECT password_hash FROM users WHERE email = ?`, "alice@example.com",
	).Scan(&hash))
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	user, err := s.Authenticate("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "Alice", *user.Name)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterWithoutName(t *testing.T) {
	s := NewUserService(newTestDB(t))

	created, err := s.Register("bob@example.com", "hunter2", nil)
	require.NoError(t, err)
	assert.Nil(t, created.Name)

	user, err := s.Authenticate("bob@example.com", "hunter2")
	require.NoError(t, err)
	assert.Nil(t, user.Name)
}

func TestRegisterMissingFields(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("", "s3cret", nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = s.Register("alice@example.com", "", nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.Register("alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	_, err = s.Register("alice@example.com", "other", nil)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// the rejected attempt must not have created a second row
	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE email = ?`, "alice@example.com",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAuthenticateFailures(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.Register("alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	_, wrongPassword := s.Authenticate("alice@example.com", "nope")
	assert.ErrorIs(t, wrongPassword, apperror.ErrInvalidCredentials)

	_, unknownEmail := s.Authenticate("nobody@example.com", "s3cret")
	assert.ErrorIs(t, unknownEmail, apperror.ErrInvalidCredentials)

	// the two failure modes must be textually indistinguishable
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}
