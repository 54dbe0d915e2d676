package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xyz-asif/taskmanager/internal/config"
	"github.com/xyz-asif/taskmanager/internal/database"
	"github.com/xyz-asif/taskmanager/internal/features/auth"
	"github.com/xyz-asif/taskmanager/internal/features/categories"
	"github.com/xyz-asif/taskmanager/internal/features/tasks"
	"github.com/xyz-asif/taskmanager/internal/middleware"
	"github.com/xyz-asif/taskmanager/internal/pkg/metrics"
	"github.com/xyz-asif/taskmanager/internal/pkg/ratelimit"
	"github.com/xyz-asif/taskmanager/internal/pkg/response"
	"github.com/xyz-asif/taskmanager/internal/pkg/token"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies are the process-wide handles built once in main.
type Dependencies struct {
	Config   *config.Config
	DB       *database.MongoDB
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Limiter  *ratelimit.RateLimiter

	// GitHubHTTPClient overrides the client used for GitHub calls.
	GitHubHTTPClient *http.Client
}

// NewRouter builds the engine with the global middleware chain, /health,
// /metrics and every feature route.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.CORS(deps.Config.AllowedOrigins()))

	RegisterHealth(router, deps.DB)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	SetupRoutes(router, deps)
	return router
}

// RegisterHealth mounts GET /health. It answers 503 while the store is
// unreachable.
func RegisterHealth(router *gin.Engine, checker HealthChecker) {
	router.GET("/health", func(c *gin.Context) {
		now := time.Now().Unix()
		if err := checker.HealthCheck(c.Request.Context()); err != nil {
			slog.ErrorContext(c.Request.Context(), "health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"time":   now,
			})
			return
		}
		response.Success(c, gin.H{
			"status": "ok",
			"time":   now,
		})
	})
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	api := router.Group("/api")

	tokens := token.New(token.Config{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	requireAuth := middleware.Auth(tokens)

	if !tokens.Configured() {
		slog.Warn("JWT_SECRET is not set; login and bearer-protected routes will fail")
	}

	// Optional recorders stay nil interfaces when metrics are off.
	var (
		failures auth.FailureRecorder
		observer ratelimit.Observer
	)
	if deps.Metrics != nil {
		failures = deps.Metrics
		observer = deps.Metrics
	}

	// Categories and tasks
	var protected []gin.HandlerFunc
	if cfg.RequireAuth {
		protected = append(protected, requireAuth)
	}

	categoryService := categories.NewService(categories.NewRepository(deps.DB.Categories()))
	taskService := tasks.NewService(tasks.NewRepository(deps.DB.Tasks()), categoryService)

	categories.RegisterRoutes(api, categoryService, protected...)
	tasks.RegisterRoutes(api, taskService, protected...)

	// Auth
	provider := auth.NewGitHubProvider(auth.GitHubConfig{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		RedirectURL:  cfg.GitHubRedirectURI,
		AuthURL:      cfg.GitHubAuthorizeURL,
		TokenURL:     cfg.GitHubTokenURL,
		APIURL:       cfg.GitHubAPIURL,
		HTTPClient:   deps.GitHubHTTPClient,
	})
	if !provider.Configured() {
		slog.Warn("GitHub OAuth is not configured; auth endpoints will answer 500")
	}

	authService := auth.NewService(provider, auth.NewRepository(deps.DB.Users()), tokens, failures)

	var authMiddlewares []gin.HandlerFunc
	if deps.Limiter != nil {
		authMiddlewares = append(authMiddlewares, ratelimit.Middleware(deps.Limiter, observer))
	}
	auth.RegisterRoutes(api, authService, requireAuth, authMiddlewares...)
}
