// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"sort"
	"sync"

	"shawarma/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
// A single mutex guards both the id counter and the map so that create
// (allocate + insert) and update/cancel (check + mutate) are atomic.
// Nothing survives a restart.
type Repository struct {
	mu     sync.Mutex
	nextID int
	orders map[int]order.Order
}

// New creates a new in-memory repository. IDs start at 1 and are never
// reused, even after cancellation.
func New() *Repository {
	return &Repository{nextID: 1, orders: make(map[int]order.Order)}
}

// Create allocates the next id, stores the order, and returns the stored
// copy.
func (r *Repository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	o.Items = cloneItems(o.Items)
	r.orders[o.ID] = o
	return clone(o), nil
}

// Get retrieves an order by id.
func (r *Repository) Get(ctx context.Context, id int) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return clone(o), nil
}

// List returns all orders in ascending id order.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, clone(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateItems replaces the items of an in-progress order. A ready order is
// left untouched and order.ErrOrderReady is returned.
func (r *Repository) UpdateItems(ctx context.Context, id int, items []string) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	if o.Status != order.StatusInProgress {
		return order.Order{}, order.ErrOrderReady
	}
	o.Items = cloneItems(items)
	r.orders[id] = o
	return clone(o), nil
}

// SetStatus stamps the given status on an order.
func (r *Repository) SetStatus(ctx context.Context, id int, status order.Status) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return clone(o), nil
}

// Cancel removes an in-progress order from the store. The id is not
// returned to the counter.
func (r *Repository) Cancel(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if o.Status == order.StatusReady {
		return order.ErrOrderReady
	}
	delete(r.orders, id)
	return nil
}

// clone copies an order so callers never share the stored items slice.
func clone(o order.Order) order.Order {
	o.Items = cloneItems(o.Items)
	return o
}

func cloneItems(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
