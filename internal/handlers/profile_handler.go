package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// ProfileHandler handles the signed-in user's profile.
type ProfileHandler struct {
	sessionService   services.SessionServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(sessionService services.SessionServicer, dashboardService services.DashboardServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{sessionService: sessionService, dashboardService: dashboardService, auditService: auditService}
}

// ProfileResponse is the user together with their all-time statistics.
type ProfileResponse struct {
	User  models.User           `json:"user"`
	Stats services.ProfileStats `json:"stats"`
}

// UpdatePreferencesRequest represents the request payload for updating preferences
type UpdatePreferencesRequest struct {
	Currency string       `json:"currency" binding:"required,iso4217"`
	Language string       `json:"language" binding:"required,max=10"`
	Theme    models.Theme `json:"theme" binding:"required,theme"`
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the signed-in user with all-time income, expense and transaction totals
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.sessionService.CurrentUser()
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.dashboardService.GetProfileStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: *user, Stats: *stats})
}

// UpdatePreferences replaces the user's display preferences
// @Summary     Update preferences
// @Description Replace the currency, language and theme of the signed-in user
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdatePreferencesRequest true "New preferences"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/preferences [put]
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.sessionService.UpdatePreferences(userID, models.Preferences{
		Currency: req.Currency,
		Language: req.Language,
		Theme:    req.Theme,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PREFERENCES", "user", userID, c.ClientIP(),
		map[string]interface{}{"currency": req.Currency, "language": req.Language, "theme": req.Theme})

	c.JSON(http.StatusOK, gin.H{"user": user})
}
