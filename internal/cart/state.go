// Package cart implements the shopping cart store: a pure reducer over a
// tagged action union wrapped in a mutex-serialized store that persists a
// full JSON snapshot after every mutation.
package cart

// Item is a single line item in the cart.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // unit price in cents, never negative
	Image    string `json:"image,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Quantity int    `json:"quantity"` // always > 0 when observable
}

// State holds the cart's line items in insertion order. Totals are derived,
// never stored.
type State struct {
	Items []Item `json:"items"`
}

// Total returns the sum of price * quantity over all items, in cents.
func (s State) Total() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all items.
func (s State) ItemCount() int {
	var count int
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

func (s State) findIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

type actionKind int

const (
	actionAddItem actionKind = iota
	actionUpdateQuantity
	actionRemoveItem
	actionClear
)

// action is the tagged union dispatched through the reducer.
type action struct {
	kind     actionKind
	item     Item
	id       string
	quantity int
}

// reduce applies an action to the previous state and returns the next state.
// It never mutates prev: item slices are copied before modification.
func reduce(prev State, a action) State {
	switch a.kind {
	case actionAddItem:
		items := make([]Item, len(prev.Items))
		copy(items, prev.Items)
		if idx := prev.findIndex(a.item.ID); idx >= 0 {
			items[idx].Quantity += a.item.Quantity
		} else {
			items = append(items, a.item)
		}
		return State{Items: items}

	case actionUpdateQuantity:
		idx := prev.findIndex(a.id)
		if idx < 0 {
			return prev
		}
		if a.quantity <= 0 {
			items := make([]Item, 0, len(prev.Items)-1)
			items = append(items, prev.Items[:idx]...)
			items = append(items, prev.Items[idx+1:]...)
			return State{Items: items}
		}
		items := make([]Item, len(prev.Items))
		copy(items, prev.Items)
		items[idx].Quantity = a.quantity
		return State{Items: items}

	case actionRemoveItem:
		idx := prev.findIndex(a.id)
		if idx < 0 {
			return prev
		}
		items := make([]Item, 0, len(prev.Items)-1)
		items = append(items, prev.Items[:idx]...)
		items = append(items, prev.Items[idx+1:]...)
		return State{Items: items}

	case actionClear:
		return State{Items: []Item{}}

	default:
		return prev
	}
}
