// Package session is the client-side counterpart of the wardrobe API: a
// local mirror of (token, user, wishlist) persisted across runs, kept in
// sync with the server and with other processes sharing the same state
// file, so separate processes behave like browser tabs sharing one
// logged-in session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// User is the public user shape the server returns; it never carries
// password material.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Item struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	DateAdded time.Time `json:"dateAdded"`
}

// State is the cached view of server truth. It can lag the server until a
// login or refresh overwrites it.
type State struct {
	Token    string `json:"token"`
	User     *User  `json:"user"`
	Wishlist []Item `json:"wishlist"`
}

func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Store owns the persisted state file and an observer list. All reads and
// writes go through the store; the UI layer subscribes instead of poking
// at ambient globals.
type Store struct {
	path string

	mu      sync.Mutex
	state   State
	lastMod time.Time
	nextID  int
	subs    map[int]func(State)
}

func NewStore(path string) (*Store, error) {
	s := &Store{path: path, subs: make(map[int]func(State))}
	if err := s.loadLocked(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Subscribe registers fn to run on every state change, including changes
// picked up from other processes by Watch. Returns an unsubscribe func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetSession stores a fresh token and user, leaving the wishlist alone
// until the follow-up refresh overwrites it.
func (s *Store) SetSession(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	s.state.User = user
	return s.persistLocked()
}

func (s *Store) SetWishlist(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Wishlist = items
	return s.persistLocked()
}

// Clear wipes token, user, and wishlist in one step. This is the whole of logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.persistLocked()
}

// Watch polls the state file and reloads when another process has written
// it, propagating login/logout across "tabs" without a network round-trip.
// Blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reloadIfChanged()
		}
	}
}

func (s *Store) reloadIfChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return
	}
	if !info.ModTime().After(s.lastMod) {
		return
	}
	if err := s.loadLocked(); err != nil {
		return
	}
	s.notifyLocked()
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode session state: %w", err)
	}
	s.state = state
	if info, err := os.Stat(s.path); err == nil {
		s.lastMod = info.ModTime()
	}
	return nil
}

// persistLocked writes atomically (temp file + rename) so a concurrent
// Watch in another process never sees a torn file.
func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session state: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		s.lastMod = info.ModTime()
	}
	s.notifyLocked()
	return nil
}

func (s *Store) notifyLocked() {
	snapshot := s.copyLocked()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

func (s *Store) copyLocked() State {
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	out.Wishlist = append([]Item(nil), s.state.Wishlist...)
	return out
}
