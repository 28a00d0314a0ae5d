package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"shynora-backend/internal/models"
	"shynora-backend/internal/store"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrOAuthDisabled = errors.New("google oauth is not configured")

// GoogleOAuth drives the anonymous -> oauth_pending -> authenticated flow.
// The pending leg is carried entirely by the signed state parameter; no
// server-side session is kept.
type GoogleOAuth struct {
	conf   *oauth2.Config
	users  UserStore
	secret []byte
}

func NewGoogleOAuth(clientID, clientSecret, callbackURL string, users UserStore, secret []byte) *GoogleOAuth {
	if clientID == "" || clientSecret == "" {
		return &GoogleOAuth{users: users, secret: secret}
	}
	return &GoogleOAuth{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		users:  users,
		secret: secret,
	}
}

// Enabled reports whether credentials were configured.
func (o *GoogleOAuth) Enabled() bool { return o.conf != nil }

type stateClaims struct {
	Redirect string `json:"redirect"`
	Type     string `json:"typ"`
	jwt.StandardClaims
}

// AuthURL returns the provider redirect, encoding the post-login redirect
// URL into a short-lived signed state.
func (o *GoogleOAuth) AuthURL(redirect string) (string, error) {
	if !o.Enabled() {
		return "", ErrOAuthDisabled
	}
	claims := stateClaims{
		Redirect: redirect,
		Type:     "oauth_state",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(10 * time.Minute).Unix(),
		},
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(o.secret)
	if err != nil {
		return "", err
	}
	return o.conf.AuthCodeURL(state), nil
}

// parseState validates the state token and recovers the redirect URL.
func (o *GoogleOAuth) parseState(state string) (string, error) {
	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(t *jwt.Token) (interface{}, error) {
		return o.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid oauth state: %w", err)
	}
	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid || claims.Type != "oauth_state" {
		return "", errors.New("invalid oauth state")
	}
	return claims.Redirect, nil
}

type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleCallback exchanges the authorization code and performs one
// idempotent lookup-or-link-or-create, returning the authenticated user and
// the redirect URL recovered from the state.
func (o *GoogleOAuth) HandleCallback(ctx context.Context, code, state string) (*models.User, string, error) {
	if !o.Enabled() {
		return nil, "", ErrOAuthDisabled
	}
	redirect, err := o.parseState(state)
	if err != nil {
		return nil, "", err
	}
	token, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("code exchange failed: %w", err)
	}
	profile, err := o.fetchProfile(ctx, token)
	if err != nil {
		return nil, "", err
	}
	u, err := o.resolve(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	return u, redirect, nil
}

func (o *GoogleOAuth) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := o.conf.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: status %d", resp.StatusCode)
	}
	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, errors.New("userinfo response missing id or email")
	}
	return &profile, nil
}

// resolve finds the account for a Google identity: by provider id first,
// then by email (linking the provider id), else creates a pre-verified
// account. Safe to repeat for the same profile.
func (o *GoogleOAuth) resolve(ctx context.Context, profile *googleProfile) (*models.User, error) {
	u, err := o.users.ByGoogleID(ctx, profile.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	u, err = o.users.ByEmail(ctx, profile.Email)
	if err == nil {
		u.GoogleID = profile.ID
		if profile.Picture != "" {
			u.Avatar = profile.Picture
		}
		if u.Name == "" {
			u.Name = profile.Name
		}
		if err := o.users.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	u = &models.User{
		Name:          profile.Name,
		Email:         profile.Email,
		GoogleID:      profile.ID,
		Avatar:        profile.Picture,
		EmailVerified: true,
		Addresses:     []models.Address{},
	}
	if err := o.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RedirectWithToken appends the session token to the post-login redirect,
// replacing any token parameter already present.
func RedirectWithToken(redirect, token string) string {
	u, err := url.Parse(redirect)
	if err != nil {
		sep := "?"
		if strings.Contains(redirect, "?") {
			sep = "&"
		}
		return redirect + sep + "token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Del("token")
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
