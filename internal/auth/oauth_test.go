package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shynora-backend/internal/models"
)

func newTestOAuth(users UserStore) *GoogleOAuth {
	return NewGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback/google", users, testSecret)
}

func TestOAuthStateRoundTrip(t *testing.T) {
	o := newTestOAuth(newMemUsers())

	authURL, err := o.AuthURL("http://localhost:3000/account")
	require.NoError(t, err)
	assert.Contains(t, authURL, "state=")
}

func TestOAuthDisabledWithoutCredentials(t *testing.T) {
	o := NewGoogleOAuth("", "", "", newMemUsers(), testSecret)
	assert.False(t, o.Enabled())

	_, err := o.AuthURL("http://localhost:3000")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
}

func TestOAuthResolveCreatesVerifiedAccount(t *testing.T) {
	users := newMemUsers()
	o := newTestOAuth(users)
	ctx := context.Background()

	profile := &googleProfile{ID: "g-123", Email: "asha@example.com", Name: "Asha", Picture: "http://img/a.png"}
	u, err := o.resolve(ctx, profile)
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
	assert.Equal(t, "g-123", u.GoogleID)
	assert.Equal(t, "http://img/a.png", u.Avatar)

	// Resolving the same identity again returns the same account.
	again, err := o.resolve(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestOAuthResolveLinksExistingEmail(t *testing.T) {
	users := newMemUsers()
	existing := &models.User{Name: "Asha", Email: "asha@example.com", EmailVerified: true}
	require.NoError(t, users.Insert(context.Background(), existing))

	o := newTestOAuth(users)
	u, err := o.resolve(context.Background(), &googleProfile{ID: "g-123", Email: "asha@example.com", Name: "Google Asha"})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, u.ID)
	assert.Equal(t, "g-123", u.GoogleID)
	// The local name is kept over the provider's.
	assert.Equal(t, "Asha", u.Name)

	stored, err := users.ByGoogleID(context.Background(), "g-123")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, stored.ID)
}

func TestRedirectWithToken(t *testing.T) {
	got := RedirectWithToken("http://localhost:3000/account", "tok123")
	assert.Equal(t, "http://localhost:3000/account?token=tok123", got)

	got = RedirectWithToken("http://localhost:3000/account?tab=orders", "tok123")
	assert.Contains(t, got, "tab=orders")
	assert.Contains(t, got, "token=tok123")

	// An existing token parameter is replaced, not duplicated.
	got = RedirectWithToken("http://localhost:3000/account?token=old", "new")
	assert.Equal(t, "http://localhost:3000/account?token=new", got)
}
