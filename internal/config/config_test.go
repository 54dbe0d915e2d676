package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GITHUB_CLIENT_ID", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("REQUIRE_AUTH", "")

	cfg := Load()
	require.Equal(t, "task-manager", cfg.JWTIssuer)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	require.False(t, cfg.SigningConfigured())
	require.False(t, cfg.GitHubConfigured())
	require.False(t, cfg.RequireAuth)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "tests")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "7d")
	t.Setenv("GITHUB_CLIENT_ID", "id")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")
	t.Setenv("GITHUB_REDIRECT_URI", "http://localhost:3000/callback.html")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("FRONTEND_URL", "http://a.test, http://b.test")

	cfg := Load()
	require.True(t, cfg.SigningConfigured())
	require.True(t, cfg.GitHubConfigured())
	require.Equal(t, "tests", cfg.JWTIssuer)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.True(t, cfg.RequireAuth)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestGitHubConfiguredNeedsAllThree(t *testing.T) {
	cfg := &Config{GitHubClientID: "id", GitHubClientSecret: "secret"}
	require.False(t, cfg.GitHubConfigured())
	cfg.GitHubRedirectURI = "http://localhost/cb"
	require.True(t, cfg.GitHubConfigured())
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"15m": 15 * time.Minute,
		"30d": 30 * 24 * time.Hour,
		"900": 900 * time.Second,
		"1h":  time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "xd", "-5m", "0", "soon"} {
		_, err := ParseDuration(bad)
		require.Error(t, err, bad)
	}
}
