// Package auth holds the authenticated dashboard user and mediates
// credential flows. The demo backend verifies a single configured
// credential pair; the current user survives restarts through a persisted
// key-value slot.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/kv"
)

// UserSlotKey is the persisted slot holding the serialized current user.
const UserSlotKey = "user"

// Config configures the auth service.
type Config struct {
	// DemoEmail and DemoPassword are the credential pair Login accepts.
	DemoEmail    string
	DemoPassword string
	// Latency is the simulated backend delay per credential operation.
	Latency time.Duration
}

// Service holds at most one authenticated user.
type Service struct {
	slots kv.Store

	mu   sync.RWMutex
	user *domain.User

	inflight atomic.Int32
	latency  time.Duration

	demoEmail string
	demoHash  []byte

	newID func() string
}

// New creates the auth service and restores any persisted user from the
// slot. A malformed slot is discarded and the service starts
// unauthenticated.
func New(ctx context.Context, slots kv.Store, cfg Config) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	s := &Service{
		slots:     slots,
		latency:   cfg.Latency,
		demoEmail: cfg.DemoEmail,
		demoHash:  hash,
		newID:     uuid.NewString,
	}

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) restore(ctx context.Context) error {
	raw, err := s.slots.Get(ctx, UserSlotKey)
	if err != nil {
		return fmt.Errorf("read user slot: %w", err)
	}
	if raw == nil {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		slog.Warn("Discarding malformed user slot", "error", err)
		if delErr := s.slots.Delete(ctx, UserSlotKey); delErr != nil {
			return fmt.Errorf("clear malformed user slot: %w", delErr)
		}
		return nil
	}

	s.user = &user
	slog.Info("Restored persisted user", "user_id", user.ID, "email", user.Email)
	return nil
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *Service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Busy reports whether a credential operation is in flight.
func (s *Service) Busy() bool {
	return s.inflight.Load() > 0
}

func (s *Service) begin() {
	s.inflight.Add(1)
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *Service) end() {
	s.inflight.Add(-1)
}

// Login verifies the credential pair against the configured demo account.
// On mismatch the current user is left untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.begin()
	defer s.end()

	if email != s.demoEmail || bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	user := domain.User{
		ID:    "1",
		Email: email,
		Name:  "Test User",
	}
	if err := s.setUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// Register creates a fresh account. The demo backend performs no
// uniqueness check; registration always succeeds.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", domain.ErrValidation)
	}

	s.begin()
	defer s.end()

	user := domain.User{
		ID:    s.newID(),
		Email: email,
		Name:  name,
	}
	if err := s.setUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

func (s *Service) setUser(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	if err := s.slots.Set(ctx, UserSlotKey, raw); err != nil {
		return fmt.Errorf("persist user slot: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout clears the current user and the persisted slot. It is idempotent.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.slots.Delete(ctx, UserSlotKey); err != nil {
		return fmt.Errorf("clear user slot: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	slog.Info("User logged out")
	return nil
}

// ForgotPassword simulates sending a reset email. It always succeeds and
// mutates nothing.
func (s *Service) ForgotPassword(_ context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	s.begin()
	defer s.end()

	slog.Info("Password reset requested", "email", email)
	return nil
}
