package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mentormatch/internal/apptest"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

func validRegister() auth.RegisterInput {
	return auth.RegisterInput{
		Name:                 "Ada Lovelace",
		Email:                "Ada@Example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		Role:                 "mentor",
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(apptest.New(t))

	res, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	require.NotNil(t, res.User.Profile)
	assert.NotEmpty(t, res.Token)

	identity, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, identity.UserID)

	login, err := svc.Login(ctx, auth.LoginInput{Email: "ada@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, login.Token)

	me, err := svc.CurrentUser(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.Name)

	require.NoError(t, svc.Logout(ctx, identity))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// the second session is unaffected
	_, err = svc.Authenticate(ctx, login.Token)
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(apptest.New(t))

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.Email = "ada@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	mismatch := validRegister()
	mismatch.Email = "other@example.com"
	mismatch.PasswordConfirmation = "different"
	_, err = svc.Register(ctx, mismatch)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	badRole := validRegister()
	badRole.Email = "third@example.com"
	badRole.Role = "admin"
	_, err = svc.Register(ctx, badRole)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	appCtx := apptest.New(t)
	apptest.SeedUsers(t, appCtx.DB, 1)
	svc := auth.NewService(appCtx)

	_, err := svc.Login(ctx, auth.LoginInput{Email: "u1@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginInput{Email: "nobody@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginInput{Email: "u1@test.com", Password: apptest.Password})
	assert.NoError(t, err)
}

func TestAuthenticate_RejectsForgedAndExpired(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(apptest.New(t))

	_, err := svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	other := auth.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Generate(1, "sid")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// valid signature but no session behind it
	same := auth.NewJWTManager("test-secret", time.Hour)
	orphan, _, err := same.Generate(1, "no-such-session")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := auth.NewJWTManager("k", time.Minute)
	raw, exp, err := m.Generate(42, "sid-42")
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "sid-42", claims.SID)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)

	_, _, err = m.Generate(0, "sid")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	tok, ok := auth.ExtractBearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = auth.ExtractBearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = auth.ExtractBearerToken("Bearer ")
	assert.False(t, ok)
}
