// Package auth verifies sign-in credentials against the fixed list of known
// users.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"expensetracker/internal/models"
)

// DemoPassword is the password shared by every demo account.
const DemoPassword = "password123"

// Credential pairs a user with a plain-text password. Passwords are hashed
// when the Authenticator is built and never kept in memory afterwards.
type Credential struct {
	User     models.User
	Password string
}

type account struct {
	user models.User
	hash []byte
}

// Authenticator matches an email and password pair to a user.
type Authenticator struct {
	accounts  []account
	dummyHash []byte
}

// NewAuthenticator hashes every credential with the given bcrypt cost.
func NewAuthenticator(cost int, creds ...Credential) (*Authenticator, error) {
	a := &Authenticator{accounts: make([]account, 0, len(creds))}
	for _, c := range creds {
		if err := c.User.Validate(); err != nil {
			return nil, fmt.Errorf("credential %q: %w", c.User.Email, err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", c.User.Email, err)
		}
		a.accounts = append(a.accounts, account{user: c.User, hash: hash})
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	a.dummyHash = dummy
	return a, nil
}

// Authenticate returns the user whose email matches exactly and whose
// password verifies. Unknown emails still pay for one bcrypt comparison.
func (a *Authenticator) Authenticate(email, password string) (models.User, bool) {
	for _, acc := range a.accounts {
		if acc.user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
			return models.User{}, false
		}
		return acc.user, true
	}
	_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
	return models.User{}, false
}

// Users returns the known users without their secrets.
func (a *Authenticator) Users() []models.User {
	out := make([]models.User, 0, len(a.accounts))
	for _, acc := range a.accounts {
		out = append(out, acc.user)
	}
	return out
}

// Lookup returns the known user with the given id.
func (a *Authenticator) Lookup(id string) (models.User, bool) {
	for _, acc := range a.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return models.User{}, false
}

// DemoCredentials returns the three built-in demo accounts.
func DemoCredentials() []Credential {
	return []Credential{
		{
			User: models.User{
				ID:          "1",
				Name:        "John Doe",
				Email:       "john@example.com",
				Avatar:      "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
				Preferences: models.Preferences{Currency: "USD", Language: "en", Theme: models.ThemeLight},
			},
			Password: DemoPassword,
		},
		{
			User: models.User{
				ID:          "2",
				Name:        "Sarah Wilson",
				Email:       "sarah@example.com",
				Avatar:      "https://images.unsplash.com/photo-1494790108755-2616b626b343?w=150&h=150&fit=crop&crop=face",
				Preferences: models.Preferences{Currency: "EUR", Language: "en", Theme: models.ThemeLight},
			},
			Password: DemoPassword,
		},
		{
			User: models.User{
				ID:          "3",
				Name:        "Mike Johnson",
				Email:       "mike@example.com",
				Avatar:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
				Preferences: models.Preferences{Currency: "GBP", Language: "en", Theme: models.ThemeDark},
			},
			Password: DemoPassword,
		},
	}
}
