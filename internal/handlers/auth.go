package handlers

import (
	"log"
	"net/http"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/google"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

type AuthHandler struct {
	authService *services.AuthService
	credentials *services.CredentialService
	oauthCfg    *oauth2.Config
	frontendURL string
}

func NewAuthHandler(authService *services.AuthService, credentials *services.CredentialService, oauthCfg *oauth2.Config, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		credentials: credentials,
		oauthCfg:    oauthCfg,
		frontendURL: frontendURL,
	}
}

// GoogleLogin godoc
// @Summary      Start Google sign-in
// @Description  Redirects to the Google consent screen with offline access
// @Tags         auth
// @Success      307
// @Router       /api/v1/auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.authService.GenerateStateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, google.ConsentURL(h.oauthCfg, state))
}

// GoogleCallback godoc
// @Summary      Google OAuth callback
// @Description  Exchanges the authorization code, stores the credential and redirects to the frontend with a session token
// @Tags         auth
// @Param        code  query string true  "Authorization code"
// @Param        state query string true  "State token"
// @Success      307
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if err := h.authService.ValidateStateToken(c.Query("state")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing authorization code"})
		return
	}

	ctx := c.Request.Context()
	tok, err := h.oauthCfg.Exchange(ctx, code)
	if err != nil {
		log.Printf("auth: code exchange: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code exchange failed"})
		return
	}

	info, err := google.GetUserInfo(ctx, h.oauthCfg.Client(ctx, tok))
	if err != nil {
		log.Printf("auth: userinfo: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch user info"})
		return
	}

	user, err := h.authService.GetOrCreateUser(info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.credentials.Upsert(user.ID, info.ID, tok); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	sessionToken, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?token="+sessionToken)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.authService.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Disconnect godoc
// @Summary      Disconnect Google account
// @Description  Deletes the stored Google credential so the next sign-in issues fresh consent. Idempotent.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/auth/disconnect [post]
func (h *AuthHandler) Disconnect(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.credentials.Disconnect(userID); err != nil {
		log.Printf("auth: disconnect user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to disconnect"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "disconnected"})
}
