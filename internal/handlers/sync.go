package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"

	"github.com/gin-gonic/gin"
)

// Syncer runs a full reconciliation for one user. Satisfied by
// services.SyncService.
type Syncer interface {
	Sync(ctx context.Context, userID uint) error
}

type SyncHandler struct {
	syncService Syncer
}

func NewSyncHandler(syncService Syncer) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Sync godoc
// @Summary      Sync Classroom data
// @Description  Pulls courses, form-linked assignments, questions, responses and uploaded-file metadata for the signed-in teacher
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	userID := c.GetUint("user_id")

	err := h.syncService.Sync(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, MessageResponse{Message: "sync complete"})
	case errors.Is(err, services.ErrNotConnected):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Google account not connected. Please sign out and sign in again to reconnect.",
		})
	case errors.Is(err, services.ErrCredentialExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Your Google session has expired or was revoked. Please sign out and sign in again.",
		})
	default:
		log.Printf("sync: user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "sync failed: " + err.Error()})
	}
}
