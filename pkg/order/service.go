package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shawarma/pkg/logger"
	"shawarma/pkg/menu"
)

// Service drives the order lifecycle against a repository. Input validation
// lives here; atomicity of the store mutations lives in the repository.
type Service struct {
	repo      Repository
	catalog   *menu.Catalog
	prepDelay time.Duration
	log       *logger.Logger
}

// NewService creates a Service. prepDelay simulates kitchen processing time
// on creation; pass zero to disable it (tests do). The delay is applied
// after the store mutation, so no lock is held while sleeping.
func NewService(repo Repository, catalog *menu.Catalog, prepDelay time.Duration, log *logger.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, prepDelay: prepDelay, log: log}
}

// Create validates the submission and stores a new in-progress order.
func (s *Service) Create(ctx context.Context, no NewOrder) (Order, error) {
	name := strings.TrimSpace(no.CustomerName)
	if len([]rune(name)) < 2 {
		return Order{}, &ValidationError{Message: "customerName must be at least 2 characters"}
	}
	if err := s.validateItems(no.Items); err != nil {
		return Order{}, err
	}

	o, err := s.repo.Create(ctx, Order{
		CustomerName: name,
		Items:        no.Items,
		Status:       StatusInProgress,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return Order{}, err
	}

	s.log.Info(ctx, "preparing order", "id", o.ID, "customer", o.CustomerName, "specialRequests", no.SpecialRequests)
	if s.prepDelay > 0 {
		time.Sleep(s.prepDelay)
	}
	return o, nil
}

// Get returns the stored order.
func (s *Service) Get(ctx context.Context, id int) (Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns all orders in ascending id order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// UpdateItems replaces the items of an in-progress order. The new items are
// validated against the catalog.
func (s *Service) UpdateItems(ctx context.Context, id int, items []string) (Order, error) {
	if err := s.validateItems(items); err != nil {
		return Order{}, err
	}
	return s.repo.UpdateItems(ctx, id, items)
}

// MarkReady moves an order to the ready state. Marking an already-ready
// order is a no-op that returns the order unchanged.
func (s *Service) MarkReady(ctx context.Context, id int) (Order, error) {
	return s.repo.SetStatus(ctx, id, StatusReady)
}

// Cancel permanently removes an in-progress order.
func (s *Service) Cancel(ctx context.Context, id int) error {
	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "order cancelled", "id", id)
	return nil
}

func (s *Service) validateItems(items []string) error {
	for _, it := range items {
		if !s.catalog.Has(it) {
			return &ValidationError{
				Message: fmt.Sprintf("unknown item %q. Options are: [%s]", it, strings.Join(s.catalog.Names(), ", ")),
			}
		}
	}
	return nil
}
