// Package order defines the order lifecycle: types, the repository
// contract, and the service that drives create/read/update/cancel.
package order

import (
	"context"
	"errors"
	"time"
)

// Status is the closed set of order states. Orders are always created
// InProgress; MarkReady is the only transition, and Ready is terminal for
// mutation and cancellation.
type Status string

const (
	StatusInProgress Status = "in progress"
	StatusReady      Status = "ready"
)

// Order represents a customer shawarma order.
type Order struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customerName"`
	Items        []string  `json:"items"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewOrder carries the fields a customer submits when ordering.
// SpecialRequests is accepted and logged but not kept on the record.
type NewOrder struct {
	CustomerName    string   `json:"customerName"`
	Items           []string `json:"items"`
	SpecialRequests string   `json:"specialRequests,omitempty"`
}

// Repository defines behavior for storing orders. Implementations must make
// each method a single atomic step: Create allocates the id and inserts under
// one critical section, UpdateItems and Cancel check status and mutate under
// one critical section.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id int) (Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateItems(ctx context.Context, id int, items []string) (Order, error)
	SetStatus(ctx context.Context, id int, status Status) (Order, error)
	Cancel(ctx context.Context, id int) error
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrOrderReady indicates a ready order was asked to change or cancel.
var ErrOrderReady = errors.New("a ready order cannot be changed or cancelled")

// ValidationError indicates malformed customer input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
