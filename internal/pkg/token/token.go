// ================== internal/pkg/token/token.go ==================
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type tags what a token may be used for.
type Type string

const (
	Access  Type = "access"
	Refresh Type = "refresh"
)

const (
	DefaultIssuer     = "task-manager"
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

var (
	ErrNotConfigured = errors.New("token signing secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongType     = errors.New("unexpected token type")
)

// Claims represents JWT claims
type Claims struct {
	Type     Type   `json:"type"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Config represents JWT configuration
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Pair is what a login or refresh hands back to the client.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer signs and verifies HS256 tokens. It holds no per-token state:
// a token stays valid until it expires.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// New fills in defaults for unset fields. An empty secret is allowed here and
// reported as ErrNotConfigured on use.
func New(cfg Config) *Issuer {
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Issuer{cfg: cfg, now: time.Now}
}

// Configured reports whether a signing secret is present.
func (i *Issuer) Configured() bool {
	return i.cfg.Secret != ""
}

// Generate signs a single token of the given type.
func (i *Issuer) Generate(subject, provider string, typ Type) (string, error) {
	if !i.Configured() {
		return "", ErrNotConfigured
	}

	ttl := i.cfg.AccessTTL
	if typ == Refresh {
		ttl = i.cfg.RefreshTTL
	}

	now := i.now()
	claims := &Claims{
		Type:     typ,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

// GeneratePair generates both access and refresh tokens
func (i *Issuer) GeneratePair(subject, provider string) (Pair, error) {
	access, err := i.Generate(subject, provider, Access)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.Generate(subject, provider, Refresh)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, issuer and expiry, then the type claim.
// A token that fails the first three wraps ErrInvalidToken; a valid token of
// the wrong type returns ErrWrongType.
func (i *Issuer) Verify(tokenString string, want Type) (*Claims, error) {
	if !i.Configured() {
		return nil, ErrNotConfigured
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != want {
		return nil, ErrWrongType
	}
	return claims, nil
}
