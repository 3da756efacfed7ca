package session

import (
	"context"
	"log/slog"
	"time"
)

// Mirror drives the local session cache against the server. Every mutation
// flows through the server and overwrites the cache from the response, so
// there is exactly one wishlist source of truth.
type Mirror struct {
	api    *Client
	store  *Store
	logger *slog.Logger
}

func NewMirror(api *Client, store *Store, logger *slog.Logger) *Mirror {
	return &Mirror{
		api:    api,
		store:  store,
		logger: logger.With("component", "session_mirror"),
	}
}

func (m *Mirror) State() State { return m.store.Snapshot() }

func (m *Mirror) Subscribe(fn func(State)) func() { return m.store.Subscribe(fn) }

// Login authenticates, stores the new session, then refreshes the wishlist
// from the server. On failure the existing local state is left untouched.
func (m *Mirror) Login(ctx context.Context, email, password string) (*User, error) {
	creds, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := m.store.SetSession(creds.Token, &creds.User); err != nil {
		return nil, err
	}
	m.RefreshWishlist(ctx)
	return &creds.User, nil
}

// Signup mirrors Login for a fresh account.
func (m *Mirror) Signup(ctx context.Context, input SignupInput) (*User, error) {
	creds, err := m.api.Signup(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := m.store.SetSession(creds.Token, &creds.User); err != nil {
		return nil, err
	}
	m.RefreshWishlist(ctx)
	return &creds.User, nil
}

// Logout clears the local mirror. The token itself stays valid until its
// natural expiry; the server keeps no session state to invalidate.
func (m *Mirror) Logout() error {
	return m.store.Clear()
}

// VerifyAuth reports whether the cached token still works. Any failure
// (expired token, deleted user, network) clears the local session and
// reports unauthenticated. Success leaves cached user data untouched.
func (m *Mirror) VerifyAuth(ctx context.Context) bool {
	state := m.store.Snapshot()
	if state.Token == "" {
		return false
	}

	if _, err := m.api.Me(ctx, state.Token); err != nil {
		m.logger.Debug("auth verification failed", "error", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("clear session", "error", clearErr)
		}
		return false
	}
	return true
}

// RefreshWishlist overwrites the cached wishlist from the server. A failed
// fetch degrades to an empty result and leaves the cache as it was; the
// wishlist is never worth blocking on.
func (m *Mirror) RefreshWishlist(ctx context.Context) []Item {
	state := m.store.Snapshot()
	if state.Token == "" {
		return []Item{}
	}

	items, err := m.api.Wishlist(ctx, state.Token)
	if err != nil {
		m.logger.Warn("wishlist refresh", "error", err)
		return []Item{}
	}
	if err := m.store.SetWishlist(items); err != nil {
		m.logger.Warn("persist wishlist", "error", err)
	}
	return items
}

// AddItem adds through the server and syncs the cache from the response.
func (m *Mirror) AddItem(ctx context.Context, input AddItemInput) error {
	state := m.store.Snapshot()
	items, err := m.api.AddWishlistItem(ctx, state.Token, input)
	if err != nil {
		return err
	}
	return m.store.SetWishlist(items)
}

// RemoveItem removes through the server and syncs the cache.
func (m *Mirror) RemoveItem(ctx context.Context, productID string) error {
	state := m.store.Snapshot()
	items, err := m.api.RemoveWishlistItem(ctx, state.Token, productID)
	if err != nil {
		return err
	}
	return m.store.SetWishlist(items)
}

// ToggleItem adds the product if absent, removes it if present.
func (m *Mirror) ToggleItem(ctx context.Context, input AddItemInput) (added bool, err error) {
	for _, item := range m.store.Snapshot().Wishlist {
		if item.ProductID == input.ProductID {
			return false, m.RemoveItem(ctx, input.ProductID)
		}
	}
	return true, m.AddItem(ctx, input)
}

// Watch runs the store's cross-process watcher; see Store.Watch.
func (m *Mirror) Watch(ctx context.Context) {
	m.store.Watch(ctx, 500*time.Millisecond)
}
