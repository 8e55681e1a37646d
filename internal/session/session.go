// Package session is the single source of truth for "who is logged in".
// Credentials persist as a JSON file so a restart restores the identity
// exactly like a page reload restores it from browser storage. All reads
// and writes go through the Store; nothing else touches the file.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nearfix-client/internal/common/logger"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

type state struct {
	Token string `json:"token"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

type Store struct {
	mu     sync.RWMutex
	path   string
	state  state
	logger logger.Logger
}

// DefaultStatePath places the session file under the user config
// directory.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "nearfix", "session.json"), nil
}

// New creates a Store backed by the given file and synchronously restores
// any persisted identity. A partial record (missing token, phone or role)
// restores nothing.
func New(path string, log logger.Logger) *Store {
	s := &Store{path: path, logger: log}
	s.restore()
	return s
}

func (s *Store) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var persisted state
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Warn("discarding unreadable session file", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	if persisted.Token == "" || persisted.Phone == "" || persisted.Role == "" {
		return
	}

	s.state = persisted
	s.logger.Info("session restored", map[string]interface{}{
		"phone": persisted.Phone,
		"role":  string(persisted.Role),
	})
}

// Login persists the credentials then updates the in-memory identity.
func (s *Store) Login(token, phone string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := state{Token: token, Phone: phone, Role: role}
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next

	s.logger.Info("logged in", map[string]interface{}{
		"phone": phone,
		"role":  string(role),
	})
	return nil
}

// Logout clears both the persisted file and the in-memory identity.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	s.logger.Info("logged out", nil)
	return nil
}

func (s *Store) persist(st state) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Token implements httpclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) Phone() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Phone
}

// DisplayPhone renders the stored number with the Indian country prefix,
// e.g. "+91 9876543210". Empty when nobody is logged in.
func (s *Store) DisplayPhone() string {
	phone := s.Phone()
	if phone == "" {
		return ""
	}
	return "+91 " + phone
}

func (s *Store) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Role
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token != ""
}

func (s *Store) IsCustomer() bool { return s.Role() == RoleCustomer }
func (s *Store) IsProvider() bool { return s.Role() == RoleProvider }
func (s *Store) IsAdmin() bool    { return s.Role() == RoleAdmin }

// TokenExpiry peeks at the bearer token's exp claim without verifying the
// signature — the backend owns verification, this is diagnostics only.
// Returns the zero time for opaque or claimless tokens.
func (s *Store) TokenExpiry() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
