package services

import (
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// sessionService handles sign-in and the current principal.
type sessionService struct {
	store state.Dispatcher
	auth  Authenticator
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(store state.Dispatcher, auth Authenticator) SessionServicer {
	return &sessionService{store: store, auth: auth}
}

// Login verifies the credentials and makes the matching user the current
// principal, replacing any previous one.
func (s *sessionService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	user, ok := s.auth.Authenticate(email, password)
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.store.Dispatch(state.Login{User: user})
	return &user, nil
}

// Logout clears the current principal.
func (s *sessionService) Logout() {
	s.store.Dispatch(state.Logout{})
}

// CurrentUser returns the signed-in user.
func (s *sessionService) CurrentUser() (*models.User, error) {
	st := s.store.State()
	if !st.IsAuthenticated || st.CurrentUser == nil {
		return nil, apperrors.ErrSessionEnded
	}
	return st.CurrentUser, nil
}

// UpdatePreferences replaces the preferences of the signed-in user.
func (s *sessionService) UpdatePreferences(userID string, prefs models.Preferences) (*models.User, error) {
	if _, err := requireSession(s.store, userID); err != nil {
		return nil, err
	}
	if err := prefs.Validate(); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	s.store.Dispatch(state.UpdateUserPreferences{Preferences: prefs})
	return s.CurrentUser()
}

// Users lists the users that can sign in.
func (s *sessionService) Users() []models.User {
	return s.auth.Users()
}

// requireSession returns the current state if userID is the signed-in
// principal.
func requireSession(store state.Dispatcher, userID string) (models.AppState, error) {
	st := store.State()
	if !st.IsAuthenticated || st.CurrentUser == nil || st.CurrentUser.ID != userID {
		return models.AppState{}, apperrors.ErrSessionEnded
	}
	return st, nil
}
