// Package auth implements the admin login gate: a small state machine over
// the admins collection with the record id doubling as the bearer token.
package auth

import (
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/techschool/student-showcase-backend/models"
	"golang.org/x/crypto/bcrypt"
)

// State of the admin auth gate.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

// InvalidCredentialsMessage is the single message reported for both unknown
// email and wrong password, so callers cannot enumerate accounts.
const InvalidCredentialsMessage = "Invalid credentials"

// AdminStore is the slice of the data store the gate needs. Both lookups
// are tolerant: a missing record is (nil, nil), not an error.
type AdminStore interface {
	FindByEmail(email string) (*models.Admin, error)
	FindByID(id uuid.UUID) (*models.Admin, error)
}

// Session is the process-wide admin session the gate maintains.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	IsAdmin       bool   `json:"is_admin"`
	Email         string `json:"email,omitempty"`
}

type Gate struct {
	mu      sync.Mutex
	state   State
	isAdmin bool
	email   string

	store  AdminStore
	tokens TokenStore
	logger zerolog.Logger
}

func NewGate(store AdminStore, tokens TokenStore) *Gate {
	logger := log.With().Str("serviceName", "authGate").Logger()
	return &Gate{store: store, tokens: tokens, logger: logger}
}

// Hydrate restores a previous session at startup. A persisted token is
// validated against the admins collection; a stale or malformed token is
// discarded and the gate stays anonymous. A store failure keeps the token
// for the next start.
func (g *Gate) Hydrate() {
	token, ok := g.tokens.Read()
	if !ok {
		return
	}

	id, err := uuid.Parse(token)
	if err != nil {
		_ = g.tokens.Clear()
		return
	}

	admin, err := g.store.FindByID(id)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Auth check failed")
		return
	}
	if admin == nil {
		_ = g.tokens.Clear()
		return
	}

	g.setAuthenticated(admin)
}

// Login looks up the credential record by email and compares the supplied
// password against the stored credential. Unknown email and wrong password
// are indistinguishable to the caller.
func (g *Gate) Login(email, password string) bool {
	g.setState(StateAuthenticating)

	admin, err := g.store.FindByEmail(email)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Login lookup failed")
		g.reset()
		return false
	}

	if admin == nil || !credentialMatches(admin.PasswordHash, password) {
		g.logger.Info().Msg(InvalidCredentialsMessage)
		g.reset()
		return false
	}

	if err := g.tokens.Write(admin.ID.String()); err != nil {
		// the in-process session is still valid; only persistence failed
		g.logger.Warn().Err(err).Msg("Failed to persist session token")
	}

	g.setAuthenticated(admin)
	g.logger.Info().Str("email", admin.Email).Msg("Login successful")
	return true
}

// Logout clears the session and discards the persisted token.
func (g *Gate) Logout() {
	_ = g.tokens.Clear()
	g.reset()
	g.logger.Info().Msg("Logged out successfully")
}

// Session returns a snapshot of the current admin session.
func (g *Gate) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Session{
		Authenticated: g.state == StateAuthenticated,
		IsAdmin:       g.isAdmin,
		Email:         g.email,
	}
}

// State returns the gate's current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) setState(state State) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
}

func (g *Gate) setAuthenticated(admin *models.Admin) {
	g.mu.Lock()
	g.state = StateAuthenticated
	g.isAdmin = admin.IsAdmin()
	g.email = admin.Email
	g.mu.Unlock()
}

func (g *Gate) reset() {
	g.mu.Lock()
	g.state = StateAnonymous
	g.isAdmin = false
	g.email = ""
	g.mu.Unlock()
}

// credentialMatches accepts bcrypt digests and, for legacy seed records that
// store the bare credential, falls back to a constant-time equality check.
func credentialMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
