package models

import "fmt"

// Theme is the UI theme preference of a user.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Preferences holds the per-user display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Language string `json:"language"`
	Theme    Theme  `json:"theme"`
}

// Validate checks that the preferences carry a currency, a language and a known theme.
func (p Preferences) Validate() error {
	if p.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if p.Language == "" {
		return fmt.Errorf("language is required")
	}
	if !p.Theme.Valid() {
		return fmt.Errorf("unsupported theme %q", p.Theme)
	}
	return nil
}

// User is a session principal. Users come from the credential list and are
// only ever mutated through preference updates.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Avatar      string      `json:"avatar,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// Validate checks the identity fields of a user.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	return u.Preferences.Validate()
}
