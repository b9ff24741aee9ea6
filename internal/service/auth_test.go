package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/hash"
)

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.Auth.Register(ctx, "Alice", "alice@example.com", "secret123", nil)
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.NotZero(t, res.User.ID)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, "user", res.User.Role)

	// stored password is a hash, never the plaintext
	assert.NotEqual(t, "secret123", res.User.Password)
	assert.True(t, hash.CheckPassword(res.User.Password, "secret123"))

	claims, err := env.Auth.Issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, "Alice", "alice@example.com", "secret123", nil)
	require.NoError(t, err)

	_, err = env.Auth.Register(ctx, "Other Alice", "alice@example.com", "different", nil)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 422, ae.Status)
	assert.Equal(t, "Email already exists", ae.Message)
}

// Two registrations can race past the email pre-check; the loser's insert
// hits the unique index and must come back as the same 422. A create
// callback slips the competing row in between the pre-check and the
// insert.
func TestAuthService_Register_LosesInsertRace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	raced := false
	err := env.DB.Callback().Create().Before("gorm:create").Register("competing_register", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "users" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)",
			"First Alice", "alice@example.com", "x", "user",
		)
	})
	require.NoError(t, err)

	_, regErr := env.Auth.Register(ctx, "Second Alice", "alice@example.com", "secret123", nil)
	require.True(t, raced)

	var ae *apperr.Error
	require.ErrorAs(t, regErr, &ae)
	assert.Equal(t, 422, ae.Status)
	assert.Equal(t, "Email already exists", ae.Message)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.Auth.Register(ctx, "Bob", "bob@example.com", "secret123", nil)
	require.NoError(t, err)

	res, err := env.Auth.Login(ctx, "bob@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	require.NotEmpty(t, res.Token)

	claims, err := env.Auth.Issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, "Bob", "bob@example.com", "secret123", nil)
	require.NoError(t, err)

	_, wrongPassword := env.Auth.Login(ctx, "bob@example.com", "wrong-password")
	_, unknownEmail := env.Auth.Login(ctx, "nobody@example.com", "secret123")

	var ae1, ae2 *apperr.Error
	require.ErrorAs(t, wrongPassword, &ae1)
	require.ErrorAs(t, unknownEmail, &ae2)
	assert.Equal(t, 401, ae1.Status)
	assert.Equal(t, 401, ae2.Status)
	assert.Equal(t, ae1.Message, ae2.Message)
	assert.Equal(t, "Invalid email or password", ae1.Message)
}
