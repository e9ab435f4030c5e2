package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/avaldezm/task-tracker/internal/oauth"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// stubProvider satisfies oauth.Provider without any network traffic.
type stubProvider struct {
	profile     *oauth.Profile
	exchangeErr error
	profileErr  error
}

func (p *stubProvider) Name() string        { return "stub" }
func (p *stubProvider) SupportsNonce() bool { return false }

func (p *stubProvider) AuthCodeURL(state, _ string) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (p *stubProvider) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &oauth2.Token{AccessToken: "stub-token-" + code}, nil
}

func (p *stubProvider) FetchProfile(_ context.Context, _ *oauth2.Token) (*oauth.Profile, error) {
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	return p.profile, nil
}

// beginOAuth starts the stub flow and returns the state the handler issued
// plus the session cookies carrying it.
func beginOAuth(t *testing.T, env *testEnv) (string, []*http.Cookie) {
	t.Helper()

	w := env.get("/login/stub", nil)
	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	return state, w.Result().Cookies()
}

func TestOAuthCallback_CreatesAccountOnFirstLogin(t *testing.T) {
	provider := &stubProvider{profile: &oauth.Profile{Email: "ana.lopez@example.com", Name: "Ana"}}
	env := setupTestEnv(t, provider)

	state, cookies := beginOAuth(t, env)

	w := env.get("/login/stub/callback?state="+url.QueryEscape(state)+"&code=abc", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/tasks/", w.Header().Get("Location"))

	user, err := env.userRepo.FindByEmail("ana.lopez@example.com")
	require.NoError(t, err)
	require.Equal(t, "ana.lopez", user.Username)
	require.NotEmpty(t, user.PasswordHash)

	// The session from the callback response is usable.
	cookies = mergeCookies(cookies, w)
	w = env.get("/tasks/", cookies)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestOAuthCallback_ReusesExistingAccount(t *testing.T) {
	provider := &stubProvider{profile: &oauth.Profile{Email: "existing@example.com"}}
	env := setupTestEnv(t, provider)

	env.registerAndLogin(t, "existing", "existing@example.com", "supersecret")

	state, cookies := beginOAuth(t, env)
	w := env.get("/login/stub/callback?state="+url.QueryEscape(state)+"&code=abc", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/tasks/", w.Header().Get("Location"))

	users, err := env.userRepo.FindByEmail("existing@example.com")
	require.NoError(t, err)
	require.Equal(t, "existing", users.Username)
}

func TestOAuthCallback_StateMismatch(t *testing.T) {
	provider := &stubProvider{profile: &oauth.Profile{Email: "ana@example.com"}}
	env := setupTestEnv(t, provider)

	_, cookies := beginOAuth(t, env)

	w := env.get("/login/stub/callback?state=forged&code=abc", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))

	// No session was established.
	cookies = mergeCookies(cookies, w)
	w = env.get("/tasks/", cookies)
	require.Equal(t, http.StatusFound, w.Code)
}

func TestOAuthCallback_ExchangeFailure(t *testing.T) {
	provider := &stubProvider{exchangeErr: errors.New("provider unavailable")}
	env := setupTestEnv(t, provider)

	state, cookies := beginOAuth(t, env)

	w := env.get("/login/stub/callback?state="+url.QueryEscape(state)+"&code=abc", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))
}

func TestOAuthCallback_ProviderError(t *testing.T) {
	provider := &stubProvider{profile: &oauth.Profile{Email: "ana@example.com"}}
	env := setupTestEnv(t, provider)

	state, cookies := beginOAuth(t, env)

	w := env.get("/login/stub/callback?state="+url.QueryEscape(state)+"&error=access_denied", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))
}
