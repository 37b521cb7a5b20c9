package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wali-jeweller/storefront/internal/snapshot"
)

// SnapshotKey is the fixed key the cart snapshot lives under.
const SnapshotKey = "storefront:cart"

// Store is the single source of truth for the shopping cart. Mutations are
// serialized by a mutex, applied through the pure reducer, and followed by a
// snapshot write. Persistence failures are logged and absorbed: the cart
// never visibly fails.
type Store struct {
	mu       sync.Mutex
	state    State
	hydrated bool

	snapshots snapshot.Store
	logger    *slog.Logger
}

// NewStore creates a cart store backed by the given snapshot store. The
// store starts empty; call Hydrate before serving reads.
func NewStore(snapshots snapshot.Store, logger *slog.Logger) *Store {
	return &Store{
		state:     State{Items: []Item{}},
		snapshots: snapshots,
		logger:    logger.With(slog.String("store", "cart")),
	}
}

// Hydrate loads the persisted snapshot once. Missing or corrupt data is
// logged and treated as an empty cart, never an error. Subsequent calls are
// no-ops.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	data, ok, err := s.snapshots.Load(ctx, SnapshotKey)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load cart snapshot, starting empty",
			slog.String("error", err.Error()),
		)
		return
	}
	if !ok {
		return
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.WarnContext(ctx, "corrupt cart snapshot, starting empty",
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

// AddItem adds quantity units of the item, merging with an existing line
// item by ID. A quantity below 1 is treated as 1.
func (s *Store) AddItem(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	return s.dispatch(ctx, action{kind: actionAddItem, item: item})
}

// UpdateQuantity sets the item's quantity. A quantity of zero or below
// removes the item entirely.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return s.dispatch(ctx, action{kind: actionUpdateQuantity, id: id, quantity: quantity})
}

// RemoveItem removes the item unconditionally. Removing an absent item is a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.dispatch(ctx, action{kind: actionRemoveItem, id: id})
}

// Clear resets the cart to empty.
func (s *Store) Clear(ctx context.Context) error {
	return s.dispatch(ctx, action{kind: actionClear})
}

// dispatch applies the action under the lock and persists the new snapshot.
func (s *Store) dispatch(ctx context.Context, a action) error {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	state := s.state
	s.mu.Unlock()

	s.persist(ctx, state)
	return nil
}

func (s *Store) persist(ctx context.Context, state State) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal cart snapshot",
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.snapshots.Save(ctx, SnapshotKey, data); err != nil {
		s.logger.WarnContext(ctx, "failed to persist cart snapshot",
			slog.String("error", err.Error()),
		)
	}
}

// String implements fmt.Stringer for debug logging.
func (s *Store) String() string {
	state := s.Snapshot()
	return fmt.Sprintf("cart{items:%d, total:%d}", len(state.Items), state.Total())
}
