package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/taskmanager/internal/middleware"
	"github.com/xyz-asif/taskmanager/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Authorize godoc
// @Summary Begin GitHub OAuth flow
// @Description Redirects to GitHub's consent page with a PKCE S256 challenge.
// @Tags auth
// @Param code_challenge query string true "PKCE code challenge"
// @Param state query string true "Opaque client state"
// @Success 302
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/github/authorize [get]
func (h *Handler) Authorize(c *gin.Context) {
	url, err := h.service.AuthorizeURL(c.Request.Context(), c.Query("state"), c.Query("code_challenge"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Exchange godoc
// @Summary Exchange GitHub OAuth code for tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "Code and verifier"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /auth/github/exchange [post]
func (h *Handler) Exchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	result, err := h.service.Exchange(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh godoc
// @Summary Refresh access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserView
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
