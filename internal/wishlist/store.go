// Package wishlist implements the saved-items store: a deduplicated set
// keyed by item ID with the same snapshot persistence contract as the cart.
package wishlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/wali-jeweller/storefront/internal/snapshot"
)

// SnapshotKey is the fixed key the wishlist snapshot lives under. It is
// independent of the cart's key.
const SnapshotKey = "storefront:wishlist"

// Item is a saved catalog entry. Unlike cart items the slug is required.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // in cents
	Image string `json:"image,omitempty"`
	Slug  string `json:"slug"`
}

// State holds the wishlist items in insertion order. Set semantics are
// enforced on mutation: no two items share an ID.
type State struct {
	Items []Item `json:"items"`
}

// Count returns the number of saved items.
func (s State) Count() int {
	return len(s.Items)
}

func (s State) findIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Store is the single source of truth for the wishlist. It mirrors the cart
// store's contract: mutex-serialized mutations, hydrate-once, snapshot write
// after every change with failures logged and absorbed.
type Store struct {
	mu       sync.Mutex
	state    State
	hydrated bool

	snapshots snapshot.Store
	logger    *slog.Logger
}

// NewStore creates a wishlist store backed by the given snapshot store.
func NewStore(snapshots snapshot.Store, logger *slog.Logger) *Store {
	return &Store{
		state:     State{Items: []Item{}},
		snapshots: snapshots,
		logger:    logger.With(slog.String("store", "wishlist")),
	}
}

// Hydrate loads the persisted snapshot once. Missing or corrupt data is
// logged and treated as an empty wishlist.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	data, ok, err := s.snapshots.Load(ctx, SnapshotKey)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load wishlist snapshot, starting empty",
			slog.String("error", err.Error()),
		)
		return
	}
	if !ok {
		return
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.WarnContext(ctx, "corrupt wishlist snapshot, starting empty",
			slog.String("error", err.Error()),
		)
		return
	}
	if state.Items == nil {
		state.Items = []Item{}
	}
	s.state = state
}

// IsLoading reports whether the store has not yet been hydrated.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hydrated
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items}
}

// Add saves the item. Adding an item whose ID is already present is a no-op.
func (s *Store) Add(ctx context.Context, item Item) error {
	s.mu.Lock()
	if s.state.findIndex(item.ID) >= 0 {
		s.mu.Unlock()
		return nil
	}
	items := make([]Item, len(s.state.Items), len(s.state.Items)+1)
	copy(items, s.state.Items)
	s.state = State{Items: append(items, item)}
	state := s.state
	s.mu.Unlock()

	s.persist(ctx, state)
	return nil
}

// Remove deletes the item if present. Removing an absent ID is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.state.findIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	items := make([]Item, 0, len(s.state.Items)-1)
	items = append(items, s.state.Items[:idx]...)
	items = append(items, s.state.Items[idx+1:]...)
	s.state = State{Items: items}
	state := s.state
	s.mu.Unlock()

	s.persist(ctx, state)
	return nil
}

// Contains reports whether the item is saved.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.findIndex(id) >= 0
}

// Count returns the number of saved items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Count()
}

// Clear resets the wishlist to empty.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{Items: []Item{}}
	state := s.state
	s.mu.Unlock()

	s.persist(ctx, state)
	return nil
}

func (s *Store) persist(ctx context.Context, state State) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal wishlist snapshot",
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.snapshots.Save(ctx, SnapshotKey, data); err != nil {
		s.logger.WarnContext(ctx, "failed to persist wishlist snapshot",
			slog.String("error", err.Error()),
		)
	}
}
