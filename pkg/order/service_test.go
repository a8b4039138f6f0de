package order_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"shawarma/pkg/logger"
	"shawarma/pkg/menu"
	"shawarma/pkg/order"
	"shawarma/pkg/order/memory"
)

func newService() *order.Service {
	log := logger.New(io.Discard, logger.LevelInfo, "test", nil)
	return order.NewService(memory.New(), menu.Default(), 0, log)
}

func TestCreateTrimsName(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	o, err := svc.Create(ctx, order.NewOrder{CustomerName: " An ", Items: []string{"havov"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.CustomerName != "An" {
		t.Fatalf("expected trimmed name An, got %q", o.CustomerName)
	}
	if o.ID != 1 {
		t.Fatalf("expected id 1, got %d", o.ID)
	}
	if o.Status != order.StatusInProgress {
		t.Fatalf("expected status %q, got %q", order.StatusInProgress, o.Status)
	}
	if o.CreatedAt.IsZero() {
		t.Fatal("createdAt not set")
	}
}

func TestCreateRejectsShortNames(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	for _, name := range []string{"", "A", " A ", "   ", "\t\n"} {
		_, err := svc.Create(ctx, order.NewOrder{CustomerName: name, Items: []string{"havov"}})
		var ve *order.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("name %q: expected ValidationError, got %v", name, err)
		}
	}
}

func TestCreateRejectsUnknownItems(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov", "pizza"}})
	var ve *order.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	created, err := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov", "banjar"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.CustomerName != created.CustomerName || got.Status != created.Status {
		t.Fatalf("round trip mismatch: created=%+v got=%+v", created, got)
	}
	again, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != got.ID || again.CustomerName != got.CustomerName || len(again.Items) != len(got.Items) {
		t.Fatalf("get is not idempotent: first=%+v second=%+v", got, again)
	}
}

func TestSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	first, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov"}})
	second, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Aram", Items: []string{"tavarov"}})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestUpdateItemsValidates(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	o, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov"}})
	updated, err := svc.UpdateItems(ctx, o.ID, []string{"hatuk"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Items[0] != "hatuk" {
		t.Fatalf("items not replaced: %v", updated.Items)
	}
	_, err = svc.UpdateItems(ctx, o.ID, []string{"sushi"})
	var ve *order.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown item, got %v", err)
	}
}

func TestReadyOrderRejectsChanges(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	o, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov"}})
	ready, err := svc.MarkReady(ctx, o.ID)
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	if ready.Status != order.StatusReady {
		t.Fatalf("expected ready status, got %q", ready.Status)
	}
	if _, err := svc.UpdateItems(ctx, o.ID, []string{"banjar"}); !errors.Is(err, order.ErrOrderReady) {
		t.Fatalf("expected ErrOrderReady, got %v", err)
	}
	if err := svc.Cancel(ctx, o.ID); !errors.Is(err, order.ErrOrderReady) {
		t.Fatalf("expected ErrOrderReady, got %v", err)
	}
	got, err := svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Items[0] != "havov" {
		t.Fatalf("rejected update mutated items: %v", got.Items)
	}
}

func TestMarkReadyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	o, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov"}})
	if _, err := svc.MarkReady(ctx, o.ID); err != nil {
		t.Fatalf("first mark ready: %v", err)
	}
	again, err := svc.MarkReady(ctx, o.ID)
	if err != nil {
		t.Fatalf("second mark ready: %v", err)
	}
	if again.Status != order.StatusReady {
		t.Fatalf("expected ready, got %q", again.Status)
	}
}

func TestCancelRemovesOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	o, _ := svc.Create(ctx, order.NewOrder{CustomerName: "Ani", Items: []string{"havov"}})
	if err := svc.Cancel(ctx, o.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Get(ctx, o.ID); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Cancel(ctx, o.ID); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second cancel, got %v", err)
	}
}

func TestListAscending(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	for _, name := range []string{"Ani", "Aram", "Nare"} {
		if _, err := svc.Create(ctx, order.NewOrder{CustomerName: name, Items: []string{"havov"}}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(list))
	}
	for i, o := range list {
		if o.ID != i+1 {
			t.Fatalf("list not ascending: %v", list)
		}
	}
}
