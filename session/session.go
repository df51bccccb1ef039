package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrWalletUnavailable = errors.New("wallet provider unavailable")
	ErrRoleRequired      = errors.New("please select your role first")
)

// Session is the authenticated identity behind a dashboard
type Session struct {
	ID            string         `json:"id"`
	User          map[string]any `json:"user"`
	Role          Role           `json:"role"`
	WalletAddress string         `json:"walletAddress"`
	LoginTime     time.Time      `json:"loginTimestamp"`
}

// Authenticated reports whether the session carries a role
func (s *Session) Authenticated() bool {
	return s != nil && s.ID != "" && s.Role != ""
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.User = maps.Clone(s.User)
	return &c
}

// Store persists sessions as a unit
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context, id string) error
}

// Service logs users in and out and keeps the active sessions
type Service struct {
	store  Store
	logger cmtlog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	broker *broker
}

// NewService creates a session service backed by store
func NewService(store Store, logger cmtlog.Logger) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
		broker:   newBroker(),
	}
}

// Login stores role and wallet for a new session. No credentials are checked.
// Unknown roles are kept as given; the dashboard renders them as invalid.
func (s *Service) Login(ctx context.Context, user map[string]any, role string, walletAddress string) (*Session, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, ErrRoleRequired
	}
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, ErrWalletUnavailable
	}

	parsed, _ := ParseRole(role)
	loginTime := s.now().UTC()

	if user == nil {
		user = map[string]any{}
	}
	user = maps.Clone(user)
	if _, ok := user["address"]; !ok {
		user["address"] = walletAddress
	}
	if _, ok := user["role"]; !ok {
		user["role"] = string(parsed)
	}
	if _, ok := user["loginTime"]; !ok {
		user["loginTime"] = loginTime.Format(time.RFC3339)
	}

	sess := &Session{
		ID:            uuid.New().String(),
		User:          user,
		Role:          parsed,
		WalletAddress: walletAddress,
		LoginTime:     loginTime,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Session started", "session_id", sess.ID, "role", sess.Role, "wallet", walletAddress)
	s.broker.publish(Event{Kind: EventLoggedIn, Session: sess.clone()})

	return sess.clone(), nil
}

// Get returns the session with id, consulting the store when it was not
// started by this service. Loaded sessions are not cached.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess.clone(), nil
	}

	return s.store.Load(ctx, id)
}

// Logout clears the session from memory and from the store
func (s *Service) Logout(ctx context.Context, id string) error {
	if err := s.store.Clear(ctx, id); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		sess = &Session{ID: id}
	}

	s.logger.Info("Session ended", "session_id", id)
	s.broker.publish(Event{Kind: EventLoggedOut, Session: sess.clone()})
	return nil
}

// Subscribe returns a channel of login/logout events and a function that stops delivery
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.broker.subscribe()
}
