package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/services"
)

// adminActor is the audit user id of operator requests.
const adminActor = "admin"

// maxImportBytes bounds the body of an import request.
const maxImportBytes = 10 << 20

// AdminHandler exposes whole-state operations behind the admin API key.
type AdminHandler struct {
	maintenanceService services.MaintenanceServicer
	sessionService     services.SessionServicer
	auditService       services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(maintenanceService services.MaintenanceServicer, sessionService services.SessionServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{maintenanceService: maintenanceService, sessionService: sessionService, auditService: auditService}
}

// ImportResponse reports the entries skipped by an import.
type ImportResponse struct {
	Message string   `json:"message"`
	Issues  []string `json:"issues"`
}

// GetState returns the whole application state
// @Summary     Get state
// @Description Dump the whole application state in its persisted layout
// @Tags        admin
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {object} models.AppState "Application state"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Admin API not configured"
// @Router      /admin/state [get]
func (h *AdminHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.maintenanceService.Snapshot())
}

// ListUsers returns the users that can sign in
// @Summary     List users
// @Description List the users of the credential list, without passwords
// @Tags        admin
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {array} models.User "Users"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.sessionService.Users()})
}

// Reset restores the initial state
// @Summary     Reset state
// @Description Replace the state with the initial one: no session, no transactions, default categories
// @Tags        admin
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {object} MessageResponse "State reset"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	h.maintenanceService.Reset()
	h.auditService.Log(adminActor, "RESET_STATE", "state", "", c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "State reset"})
}

// Import restores a persisted state record
// @Summary     Import state
// @Description Restore the fields present in a persisted state record. Invalid entries are skipped and reported.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {object} ImportResponse "State imported"
// @Failure     400 {object} ErrorResponse "Malformed record"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/import [post]
func (h *AdminHandler) Import(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	issues, err := h.maintenanceService.Import(payload)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if issues == nil {
		issues = []string{}
	}

	h.auditService.Log(adminActor, "IMPORT_STATE", "state", "", c.ClientIP(),
		map[string]interface{}{"issues": len(issues)})

	c.JSON(http.StatusOK, ImportResponse{Message: "State imported", Issues: issues})
}
