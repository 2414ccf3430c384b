package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/middleware"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *services.AuthService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	authService := services.NewAuthService(db, "test-secret")
	credentialService := services.NewCredentialService(db)
	oauthCfg := &oauth2.Config{
		ClientID: "client-id",
		Endpoint: oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth"},
	}
	h := NewAuthHandler(authService, credentialService, oauthCfg, "http://localhost:3000")

	r := gin.New()
	r.GET("/api/v1/auth/google/login", h.GoogleLogin)
	r.GET("/api/v1/auth/me", middleware.JWTAuth(authService), h.Me)
	r.POST("/api/v1/auth/disconnect", middleware.JWTAuth(authService), h.Disconnect)
	return r, authService, db
}

func TestGoogleLoginRedirectsToConsent(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "https://accounts.example.com/auth"), location)

	u, err := url.Parse(location)
	require.NoError(t, err)
	assert.Equal(t, "offline", u.Query().Get("access_type"))
	assert.Equal(t, "consent", u.Query().Get("prompt"))
	assert.NotEmpty(t, u.Query().Get("state"))
}

func TestMe(t *testing.T) {
	r, authService, db := newAuthRouter(t)

	user := models.User{Email: "teacher@example.com", Name: "Teacher"}
	require.NoError(t, db.Create(&user).Error)

	token, err := authService.GenerateToken(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "teacher@example.com", got.Email)
}

func TestDisconnectDeletesCredentialAndIsIdempotent(t *testing.T) {
	r, authService, db := newAuthRouter(t)

	user := models.User{Email: "teacher@example.com"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Credential{
		UserID:            user.ID,
		Provider:          models.ProviderGoogle,
		ProviderAccountID: "acct-1",
		AccessToken:       "access-1",
		RefreshToken:      "refresh-1",
	}).Error)

	token, err := authService.GenerateToken(user.ID)
	require.NoError(t, err)

	disconnect := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/disconnect", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, disconnect().Code)

	var count int64
	db.Model(&models.Credential{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Second disconnect deletes nothing and still succeeds.
	assert.Equal(t, http.StatusOK, disconnect().Code)
}
