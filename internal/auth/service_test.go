package auth

import (
	"context"
	"strconv"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogapi/service/internal/user"
)

const testSecret = "test-secret"

type fakeAccounts struct {
	byName map[string]*user.User
	nextID int64
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byName: map[string]*user.User{}, nextID: 1}
}

func (f *fakeAccounts) Create(_ context.Context, username, passwordHash string) (*user.User, error) {
	if _, taken := f.byName[username]; taken {
		return nil, user.ErrAlreadyExists
	}
	u := &user.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, Enabled: true}
	f.byName[username] = u
	f.nextID++
	return u, nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := NewService(accounts, testSecret)

	token, u, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	// Only a bcrypt hash may reach the store.
	stored := accounts.byName["alice"]
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))

	claims := parseToken(t, token)
	assert.Equal(t, strconv.FormatInt(u.ID, 10), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeAccounts(), testSecret)

	_, _, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "another-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := NewService(accounts, testSecret)

	_, registered, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	claims := parseToken(t, token)
	assert.Equal(t, strconv.FormatInt(u.ID, 10), claims["sub"])
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	accounts := newFakeAccounts()
	svc := NewService(accounts, testSecret)

	_, _, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	accounts.byName["alice"].Enabled = false
	_, _, err = svc.Login(ctx, "alice", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func parseToken(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}
