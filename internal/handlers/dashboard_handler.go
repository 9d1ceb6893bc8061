package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// DashboardHandler serves the date-range scoped views.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	loc              *time.Location
}

// NewDashboardHandler creates a new DashboardHandler. Dates without an
// offset are read in loc.
func NewDashboardHandler(dashboardService services.DashboardServicer, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, loc: loc}
}

// DateRangeRequest represents the request payload for setting the date range
type DateRangeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// PresetRequest represents the request payload for applying a date preset
type PresetRequest struct {
	Preset models.DatePreset `json:"preset" binding:"required,date_preset"`
}

// GetDateRange returns the active date range
// @Summary     Get date range
// @Description Get the date range every dashboard view is scoped to
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.DateRange "Active date range"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /date-range [get]
func (h *DashboardHandler) GetDateRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rng, err := h.dashboardService.GetDateRange(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dateRange": rng})
}

// SetDateRange replaces the active date range
// @Summary     Set date range
// @Description Replace the active date range. A reversed range is swapped.
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DateRangeRequest true "Start and end (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} models.DateRange "New date range"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /date-range [put]
func (h *DashboardHandler) SetDateRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	start, err := parseFlexibleTime(req.Start, h.loc)
	if err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	end, err := parseFlexibleTime(req.End, h.loc)
	if err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	rng, err := h.dashboardService.SetDateRange(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dateRange": rng})
}

// ApplyPreset sets the date range to a preset ending now
// @Summary     Apply date preset
// @Description Set the date range to the last week, month, 3 months, 6 months or year
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PresetRequest true "Preset name (week, month, 3months, 6months, year)"
// @Success     200 {object} models.DateRange "New date range"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /date-range/preset [post]
func (h *DashboardHandler) ApplyPreset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	rng, err := h.dashboardService.ApplyPreset(userID, req.Preset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dateRange": rng})
}

// GetSummary returns the totals of the active date range
// @Summary     Dashboard summary
// @Description Income, expenses, balance and per-type counts within the active date range
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDailyTotals returns the per-day time series
// @Summary     Daily totals
// @Description One entry per calendar day between the earliest and latest transaction in range
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} analytics.DailyTotal "Daily totals"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /dashboard/daily [get]
func (h *DashboardHandler) GetDailyTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := h.dashboardService.GetDailyTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetCategoryBreakdown returns expense totals per category
// @Summary     Category breakdown
// @Description Expense totals grouped by category name, largest first
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} analytics.CategoryTotal "Category totals"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /dashboard/categories [get]
func (h *DashboardHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.dashboardService.GetCategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetRecentTransactions returns the newest transactions in range
// @Summary     Recent transactions
// @Description The newest transactions within the active date range
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum number of transactions (default 10, max 100)"
// @Success     200 {array} models.Transaction "Recent transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Router      /dashboard/recent [get]
func (h *DashboardHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := services.DefaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, parseErr := strconv.Atoi(v)
		if parseErr != nil || n < 1 || n > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	txns, err := h.dashboardService.GetRecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
