package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	sessionService services.SessionServicer
	tokens         *middleware.TokenManager
	auditService   services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessionService services.SessionServicer, tokens *middleware.TokenManager, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{sessionService: sessionService, tokens: tokens, auditService: auditService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int64       `json:"expires_in"`
	User      models.User `json:"user"`
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate with a demo credential. The user becomes the session principal, replacing any previous one.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.sessionService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "LOGIN", "session", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
		User:      *user,
	})
}

// Logout ends the session
// @Summary     Logout user
// @Description End the current session. Every token issued so far stops working.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sessionService.Logout()
	h.auditService.Log(userID, "LOGOUT", "session", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// ListDemoUsers returns the accounts that can sign in
// @Summary     List demo users
// @Description List the users of the demo credential list, without passwords
// @Tags        auth
// @Produce     json
// @Success     200 {array} models.User "Demo users"
// @Router      /auth/demo-users [get]
func (h *AuthHandler) ListDemoUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.sessionService.Users()})
}
