package handlers

import (
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type User = models.User
type Assignment = models.Assignment
type Dashboard = services.Dashboard
type AssignmentAnalytics = services.AssignmentAnalytics
