// Package oauth implements federated login against third-party identity
// providers. Each provider exposes the same two capabilities, exchanging an
// authorization code and fetching the user profile, so the callback handler
// never branches on the provider name.
package oauth

import (
	"context"

	"github.com/avaldezm/task-tracker/internal/config"
	"golang.org/x/oauth2"
)

// Profile is the subset of a provider's userinfo the application needs.
type Profile struct {
	Email string
	Name  string
}

// Provider is one configured identity provider.
type Provider interface {
	// Name returns the provider's registry key ("google", "github").
	Name() string

	// SupportsNonce reports whether the authorization request should carry
	// an anti-replay nonce (OIDC providers).
	SupportsNonce() bool

	// AuthCodeURL builds the authorization redirect URL for one flow.
	AuthCodeURL(state, nonce string) string

	// Exchange trades the callback's authorization code for a token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile retrieves the provider profile for a token.
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Registry maps provider names to configured providers.
type Registry map[string]Provider

// NewRegistry builds the provider registry from configuration. Providers
// without credentials are left unregistered and treated as unknown.
func NewRegistry(cfg *config.Config) Registry {
	reg := Registry{}

	if cfg.GoogleClientID != "" {
		p := NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, callbackURL(cfg.BaseURL, "google"))
		reg[p.Name()] = p
	}
	if cfg.GitHubClientID != "" {
		p := NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, callbackURL(cfg.BaseURL, "github"))
		reg[p.Name()] = p
	}

	return reg
}

// Lookup returns the provider registered under name.
func (r Registry) Lookup(name string) (Provider, bool) {
	p, ok := r[name]
	return p, ok
}

func callbackURL(baseURL, provider string) string {
	return baseURL + "/login/" + provider + "/callback"
}
