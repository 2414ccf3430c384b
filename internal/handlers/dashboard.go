package handlers

import (
	"net/http"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	analytics *services.AnalyticsService
}

func NewDashboardHandler(analytics *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// GetDashboard godoc
// @Summary      Dashboard overview
// @Description  Courses with assignments and submission counts plus headline totals
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Dashboard
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := c.GetUint("user_id")

	dash, err := h.analytics.GetDashboard(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dash)
}

// GetAssignment godoc
// @Summary      Assignment analytics
// @Description  One assignment with questions, submissions, uploaded files and per-question answer distributions
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Assignment ID"
// @Success      200 {object} AssignmentAnalytics
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assignments/{id} [get]
func (h *DashboardHandler) GetAssignment(c *gin.Context) {
	userID := c.GetUint("user_id")

	analytics, err := h.analytics.GetAssignment(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
