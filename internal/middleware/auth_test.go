package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/taskmanager/internal/pkg/token"
)

func protectedRouter(tokens *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(UserIDKey), "provider": c.GetString(ProviderKey)})
	})
	return r
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	w := get(protectedRouter(token.New(token.Config{Secret: "s"})), "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Authorization header missing."}`, w.Body.String())
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	w := get(protectedRouter(token.New(token.Config{Secret: "s"})), "Basic abc")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Authorization header missing."}`, w.Body.String())
}

func TestAuthMiddleware_ValidAccessToken(t *testing.T) {
	tokens := token.New(token.Config{Secret: "s"})
	access, err := tokens.Generate("user-1", "github", token.Access)
	require.NoError(t, err)

	w := get(protectedRouter(tokens), "bearer "+access)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user":"user-1","provider":"github"}`, w.Body.String())
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	tokens := token.New(token.Config{Secret: "s"})
	refresh, err := tokens.Generate("user-1", "github", token.Refresh)
	require.NoError(t, err)

	w := get(protectedRouter(tokens), "Bearer "+refresh)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Invalid access token."}`, w.Body.String())
}

func TestAuthMiddleware_Garbage(t *testing.T) {
	w := get(protectedRouter(token.New(token.Config{Secret: "s"})), "Bearer not-a-token")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Unauthorized."}`, w.Body.String())
}

func TestAuthMiddleware_ExtraWordsAreInvalidToken(t *testing.T) {
	tokens := token.New(token.Config{Secret: "s"})
	access, err := tokens.Generate("user-1", "github", token.Access)
	require.NoError(t, err)

	for _, header := range []string{"Bearer a b", "Bearer " + access + " extra", "BEARER "} {
		w := get(protectedRouter(tokens), header)

		require.Equal(t, http.StatusUnauthorized, w.Code, header)
		require.JSONEq(t, `{"message":"Unauthorized."}`, w.Body.String(), header)
	}
}

func TestAuthMiddleware_SchemeWithoutToken(t *testing.T) {
	w := get(protectedRouter(token.New(token.Config{Secret: "s"})), "Bearer")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Authorization header missing."}`, w.Body.String())
}

func TestAuthMiddleware_NoSecret(t *testing.T) {
	w := get(protectedRouter(token.New(token.Config{})), "Bearer whatever")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Unauthorized."}`, w.Body.String())
}
