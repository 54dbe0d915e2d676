package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

const (
	defaultGitHubAPIURL = "https://api.github.com"
	gitHubUserAgent     = "task-manager-project"
	gitHubTimeout       = 10 * time.Second
)

const (
	msgExchangeFailed    = "OAuth exchange failed."
	msgProfileFailed     = "Failed to fetch GitHub profile."
	msgProfileIncomplete = "GitHub profile is missing required fields."
)

// GitHubConfig holds the OAuth app credentials. The URL fields override the
// public GitHub endpoints, e.g. in tests.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL  string
	TokenURL string
	APIURL   string

	HTTPClient *http.Client
}

// GitHubProvider talks to GitHub's OAuth and REST endpoints.
type GitHubProvider struct {
	oauth  *oauth2.Config
	apiURL string
	client *http.Client
}

func NewGitHubProvider(cfg GitHubConfig) *GitHubProvider {
	endpoint := github.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultGitHubAPIURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: gitHubTimeout}
	}

	return &GitHubProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiURL: strings.TrimRight(apiURL, "/"),
		client: client,
	}
}

// Configured reports whether client id, secret and redirect URI are set.
func (p *GitHubProvider) Configured() bool {
	return p.oauth.ClientID != "" && p.oauth.ClientSecret != "" && p.oauth.RedirectURL != ""
}

// AuthorizeURL builds the consent-page URL for a PKCE (S256) flow. The
// verifier stays with the client; only its challenge is forwarded.
func (p *GitHubProvider) AuthorizeURL(state, codeChallenge string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Exchange trades the authorization code for a GitHub access token.
func (p *GitHubProvider) Exchange(ctx context.Context, code, codeVerifier string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.ErrorDescription != "" {
			return "", apperrors.Upstream(rerr.ErrorDescription, err)
		}
		return "", apperrors.Upstream(msgExchangeFailed, err)
	}
	return tok.AccessToken, nil
}

type gitHubUser struct {
	ID        json.Number `json:"id"`
	Login     string      `json:"login"`
	Email     *string     `json:"email"`
	AvatarURL *string     `json:"avatar_url"`
}

type gitHubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile loads the account behind accessToken. A missing public email
// is looked up in the account's email list; failing that it stays nil.
func (p *GitHubProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var user gitHubUser
	if err := p.getJSON(ctx, "/user", accessToken, &user); err != nil {
		return nil, apperrors.Upstream(msgProfileFailed, err)
	}

	id := user.ID.String()
	if id == "" || id == "0" || user.Login == "" {
		return nil, apperrors.Upstream(msgProfileIncomplete, nil)
	}

	email := user.Email
	if email == nil || *email == "" {
		email = p.primaryEmail(ctx, accessToken)
	}

	return &Profile{
		Provider:       ProviderGitHub,
		ProviderUserID: id,
		Username:       user.Login,
		Email:          email,
		AvatarURL:      user.AvatarURL,
	}, nil
}

func (p *GitHubProvider) primaryEmail(ctx context.Context, accessToken string) *string {
	var emails []gitHubEmail
	if err := p.getJSON(ctx, "/user/emails", accessToken, &emails); err != nil {
		return nil
	}
	for _, e := range emails {
		if e.Primary && e.Verified && e.Email != "" {
			email := e.Email
			return &email
		}
	}
	return nil
}

func (p *GitHubProvider) getJSON(ctx context.Context, path, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("User-Agent", gitHubUserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
