package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// ErrLoginRequired is returned by RequireAdmin when no usable token is held
var ErrLoginRequired = errors.New("login required")

// Session holds the admin token for one client. It is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	username  string
	expiresAt time.Time
}

// NewSession restores a session from a previously saved token
func NewSession(token string, expiresAt time.Time) *Session {
	return &Session{token: token, expiresAt: expiresAt}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Authenticated reports whether a token is held and has not expired locally.
// It does not ask the server; Verify does.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || time.Now().Before(s.expiresAt)
}

func (s *Session) set(token, username string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
	s.expiresAt = expiresAt
}

func (s *Session) clear() {
	s.set("", "", time.Time{})
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// User is the account behind the session
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Login exchanges credentials for a token and stores it in the session
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp tokenResponse
	err := c.call(ctx, http.MethodPost, "/api/login", models.Credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return err
	}

	c.session.set(resp.Token, username, resp.ExpiresAt)
	c.cache.Clear()
	return nil
}

// Register creates the admin account. It fails with 403 once one exists.
func (c *Client) Register(ctx context.Context, username, password string) (User, error) {
	var user User
	err := c.call(ctx, http.MethodPost, "/api/register", models.Credentials{Username: username, Password: password}, &user)
	return user, err
}

// Logout drops the local token whatever the server answers
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.session.clear()
	c.cache.Clear()
	return err
}

// Verify asks the server whether the held token is still accepted. Any
// failure, including a network error, clears the session.
func (c *Client) Verify(ctx context.Context) (User, error) {
	var user User
	if !c.session.Authenticated() {
		c.session.clear()
		return user, ErrLoginRequired
	}

	if err := c.call(ctx, http.MethodGet, "/api/whoami", nil, &user); err != nil {
		c.session.clear()
		c.cache.Clear()
		return user, err
	}

	c.session.mu.Lock()
	c.session.username = user.Username
	c.session.mu.Unlock()
	return user, nil
}

// RequireAdmin is the guard for admin screens: it succeeds only while a
// verified session is held
func (c *Client) RequireAdmin(ctx context.Context) error {
	if _, err := c.Verify(ctx); err != nil {
		return errors.Join(ErrLoginRequired, err)
	}
	return nil
}
