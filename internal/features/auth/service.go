package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xyz-asif/taskmanager/internal/pkg/token"
	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

const tokenTypeBearer = "Bearer"

const (
	msgNotConfigured       = "GitHub OAuth is not configured."
	msgSecretMissing       = "JWT_SECRET is not configured."
	msgAuthorizeParams     = "code_challenge and state are required."
	msgIdentityUnavailable = "Unable to create or load the GitHub user."
	msgInvalidRefresh      = "Invalid refresh token."
	msgUserNotFound        = "User not found."
)

// Stage names the step of the login flow a failure happened in.
type Stage string

const (
	StageAuthorize Stage = "authorize"
	StageExchange  Stage = "exchange"
	StageProfile   Stage = "profile"
	StageIssue     Stage = "issue"
	StageRefresh   Stage = "refresh"
)

// Provider is an OAuth identity provider. *GitHubProvider satisfies it.
type Provider interface {
	Configured() bool
	AuthorizeURL(state, codeChallenge string) string
	Exchange(ctx context.Context, code, codeVerifier string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// IdentityStore persists identities. *Repository satisfies it.
type IdentityStore interface {
	Upsert(ctx context.Context, profile Profile) (*Identity, error)
	FindByID(ctx context.Context, id string) (*Identity, error)
}

// FailureRecorder counts failed login attempts per stage.
type FailureRecorder interface {
	OAuthFailure(stage string)
}

type nopRecorder struct{}

func (nopRecorder) OAuthFailure(string) {}

type Service struct {
	provider Provider
	store    IdentityStore
	tokens   *token.Issuer
	failures FailureRecorder
}

// NewService accepts a nil recorder.
func NewService(provider Provider, store IdentityStore, tokens *token.Issuer, failures FailureRecorder) *Service {
	if failures == nil {
		failures = nopRecorder{}
	}
	return &Service{provider: provider, store: store, tokens: tokens, failures: failures}
}

// AuthorizeURL starts a login. Nothing is stored server side: state and the
// PKCE verifier live with the client.
func (s *Service) AuthorizeURL(ctx context.Context, state, codeChallenge string) (string, error) {
	if !s.provider.Configured() {
		return "", s.fail(ctx, StageAuthorize, apperrors.NotConfigured(msgNotConfigured))
	}
	if codeChallenge == "" || state == "" {
		return "", s.fail(ctx, StageAuthorize, apperrors.BadRequest(msgAuthorizeParams))
	}
	return s.provider.AuthorizeURL(state, codeChallenge), nil
}

// Exchange completes a login: code for provider token, provider token for
// profile, profile for local identity, identity for a token pair.
func (s *Service) Exchange(ctx context.Context, req ExchangeRequest) (*LoginResponse, error) {
	if !s.provider.Configured() {
		return nil, s.fail(ctx, StageExchange, apperrors.NotConfigured(msgNotConfigured))
	}
	if !s.tokens.Configured() {
		return nil, s.fail(ctx, StageExchange, apperrors.NotConfigured(msgSecretMissing))
	}

	providerToken, err := s.provider.Exchange(ctx, req.Code, req.CodeVerifier)
	if err != nil {
		return nil, s.fail(ctx, StageExchange, err)
	}

	profile, err := s.provider.FetchProfile(ctx, providerToken)
	if err != nil {
		return nil, s.fail(ctx, StageProfile, err)
	}

	identity, err := s.store.Upsert(ctx, *profile)
	if err != nil {
		return nil, s.fail(ctx, StageIssue, apperrors.Internal(err))
	}
	if identity == nil || identity.ID.IsZero() {
		return nil, s.fail(ctx, StageIssue, apperrors.Upstream(msgIdentityUnavailable, nil))
	}

	pair, err := s.tokens.GeneratePair(identity.ID.Hex(), ProviderGitHub)
	if err != nil {
		return nil, s.fail(ctx, StageIssue, apperrors.Internal(err))
	}

	slog.InfoContext(ctx, "user signed in",
		slog.String("user_id", identity.ID.Hex()),
		slog.String("provider", identity.Provider),
	)

	return &LoginResponse{
		User:         identity.View(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// Refresh mints a new pair for the subject of a valid refresh token. The
// presented token is not revoked.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	if !s.tokens.Configured() {
		return nil, s.fail(ctx, StageRefresh, apperrors.NotConfigured(msgSecretMissing))
	}

	claims, err := s.tokens.Verify(req.RefreshToken, token.Refresh)
	if err != nil {
		return nil, s.fail(ctx, StageRefresh, apperrors.Wrap(apperrors.KindUnauthorized, msgInvalidRefresh, err))
	}

	pair, err := s.tokens.GeneratePair(claims.Subject, claims.Provider)
	if err != nil {
		return nil, s.fail(ctx, StageRefresh, apperrors.Internal(err))
	}

	return &TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// Me returns the identity behind an access token's subject.
func (s *Service) Me(ctx context.Context, userID string) (*UserView, error) {
	identity, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if identity == nil {
		return nil, apperrors.NotFound(msgUserNotFound)
	}
	view := identity.View()
	return &view, nil
}

func (s *Service) fail(ctx context.Context, stage Stage, err error) error {
	s.failures.OAuthFailure(string(stage))

	level := slog.LevelWarn
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && (appErr.Kind == apperrors.KindInternal || appErr.Kind == apperrors.KindConfiguration) {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "oauth flow failed",
		slog.String("stage", string(stage)),
		slog.Any("error", err),
	)
	return err
}
