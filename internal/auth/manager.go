package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/chiruit2077/partslink/internal/api"
)

// Manager owns the in-memory session and keeps it in sync with the
// backing store. It is the api.TokenProvider for the HTTP client:
// there is exactly one logical session per client, last writer wins.
type Manager struct {
	store  Store
	client *api.Client
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	session *Session
}

// NewManager constructs a Manager. Call Init to load persisted state.
func NewManager(store Store, client *api.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, client: client, logger: logger, now: time.Now}
}

// Init loads the persisted session, if any. A missing session is not
// an error; the caller lands on login.
func (m *Manager) Init() error {
	sess, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	m.mu.Lock()
	m.session = sess
	m.mu.Unlock()
	return nil
}

// Current returns a copy of the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	copied := *m.session
	return &copied
}

// SetSession installs and persists a fresh session.
func (m *Manager) SetSession(sess *Session) error {
	m.mu.Lock()
	m.session = sess
	m.mu.Unlock()
	return m.store.Save(sess)
}

// Clear drops the session from memory and storage.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	return m.store.Clear()
}

// AccessToken implements api.TokenProvider.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// RefreshAccess exchanges the refresh token for a new access token.
// On any failure the session is cleared so the caller is forced back
// to login.
func (m *Manager) RefreshAccess(ctx context.Context) (string, error) {
	m.mu.RLock()
	var refreshToken string
	if m.session != nil {
		refreshToken = m.session.RefreshToken
	}
	m.mu.RUnlock()

	if refreshToken == "" {
		_ = m.Clear()
		return "", api.ErrSessionExpired
	}

	var resp refreshWire
	body := map[string]string{"refresh_token": refreshToken}
	if err := m.client.Post(ctx, "/auth/refresh", body, &resp, api.Anonymous()); err != nil {
		m.logger.Warn("token refresh failed", slog.Any("error", err))
		_ = m.Clear()
		return "", api.ErrSessionExpired
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		_ = m.Clear()
		return "", api.ErrSessionExpired
	}

	m.mu.Lock()
	if m.session == nil {
		m.session = &Session{}
	}
	m.session.Token = token
	if resp.RefreshToken != "" {
		m.session.RefreshToken = resp.RefreshToken
	}
	if secs := resp.ExpiresIn.Or(0); secs > 0 {
		m.session.ExpiresAt = m.now().Add(time.Duration(secs) * time.Second)
	}
	updated := *m.session
	m.mu.Unlock()

	if err := m.store.Save(&updated); err != nil {
		m.logger.Warn("persist refreshed session failed", slog.Any("error", err))
	}
	return token, nil
}
