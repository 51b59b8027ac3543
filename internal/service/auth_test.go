package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

const testPassword = "correct-horse-battery"

func newAuthFixture(t *testing.T) (*AuthService, *sqlx.DB) {
	t.Helper()

	database := newTestDB(t)
	emailService := NewEmailService("", "test@example.com", "http://localhost:8090", "Arbor", true)
	svc := NewAuthService(
		repository.NewUserRepository(database),
		repository.NewProfileRepository(database),
		repository.NewTokenRepository(database),
		emailService,
		"test-secret",
		false,
		24*time.Hour,
		time.Hour,
		15*time.Minute,
	)

	return svc, database
}

func TestRegisterAndLogin(t *testing.T) {
	svc, database := newAuthFixture(t)

	user, err := svc.Register("Anna@Example.com", testPassword, "Anna", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email, "email is normalized")
	assert.NotNil(t, user.EmailVerifiedAt)

	// Registration seeds a planter profile
	profile, err := repository.NewProfileRepository(database).ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.Name)
	assert.Equal(t, model.RolePlanter, profile.Role)

	loggedIn, err := svc.Login("anna@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login("anna@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register("anna@example.com", testPassword, "Anna", "")
	require.NoError(t, err)

	_, err = svc.Register("anna@example.com", testPassword, "Other", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register("not-an-email", testPassword, "Anna", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register("anna@example.com", testPassword, "", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register("anna@example.com", "short", "Anna", "")
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register("anna@example.com", testPassword, "Anna", "")
	require.NoError(t, err)

	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])

	_, err = svc.VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestMagicLinkFlow(t *testing.T) {
	svc, database := newAuthFixture(t)

	// Sending a magic link to an unknown address creates a passwordless user
	require.NoError(t, svc.SendMagicLink("new@example.com"))

	user, err := repository.NewUserRepository(database).ByEmail("new@example.com")
	require.NoError(t, err)
	assert.False(t, user.HasPassword())

	var token string
	require.NoError(t, database.Get(&token, `SELECT token FROM tokens WHERE user_id = $1 AND type = $2`, user.ID, model.TokenTypeMagicLink))

	verified, err := svc.VerifyMagicLink(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.NotNil(t, verified.EmailVerifiedAt, "magic link verifies the email")

	// Tokens are single use
	_, err = svc.VerifyMagicLink(token)
	assert.Error(t, err)
}

func TestForgotPasswordFlow(t *testing.T) {
	svc, database := newAuthFixture(t)

	user, err := svc.Register("anna@example.com", testPassword, "Anna", "")
	require.NoError(t, err)

	require.NoError(t, svc.SendForgotPasswordLink("anna@example.com"))

	// Unknown addresses are silently ignored to prevent enumeration
	require.NoError(t, svc.SendForgotPasswordLink("ghost@example.com"))

	var token string
	require.NoError(t, database.Get(&token, `SELECT token FROM tokens WHERE user_id = $1 AND type = $2`, user.ID, model.TokenTypePasswordReset))

	verified, err := svc.VerifyForgotPasswordLink(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.False(t, verified.HasPassword(), "old password is removed so a new one can be set")

	// The old password no longer works
	_, err = svc.Login("anna@example.com", testPassword)
	assert.Error(t, err)
}

func TestAuthenticateOAuth(t *testing.T) {
	svc, database := newAuthFixture(t)

	user, err := svc.AuthenticateOAuth("anna@example.com", "Anna", "google")
	require.NoError(t, err)
	assert.NotNil(t, user.EmailVerifiedAt)

	profile, err := repository.NewProfileRepository(database).ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.Name)

	// Subsequent logins reuse the account
	again, err := svc.AuthenticateOAuth("anna@example.com", "Anna", "google")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}
