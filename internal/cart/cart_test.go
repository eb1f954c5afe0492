package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, owner, message string) {
	r.messages = append(r.messages, message)
}

func newTestManager(t *testing.T) (*Manager, kvstore.Store, *recordingNotifier) {
	t.Helper()
	store := kvstore.NewMemory()
	notifier := &recordingNotifier{}
	manager, err := NewManager(store, notifier)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager, store, notifier
}

func tomato() Entry {
	return Entry{
		ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Tomato",
		Price:     decimal.NewFromInt(30),
		Unit:      "kg",
	}
}

func mango() Entry {
	return Entry{
		ProductID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:      "Mango",
		Price:     decimal.NewFromFloat(55.50),
		Unit:      "kg",
	}
}

func TestAddMergesQuantitiesForSameProduct(t *testing.T) {
	manager, _, notifier := newTestManager(t)
	ctx := context.Background()

	engine, err := manager.For(ctx, "alice")
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}

	if err := engine.Add(ctx, tomato(), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := engine.Add(ctx, tomato(), 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	entries := engine.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 line, got %d", len(entries))
	}
	if entries[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", entries[0].Quantity)
	}
	if len(notifier.messages) != 2 || notifier.messages[0] != "Tomato added to cart" {
		t.Fatalf("unexpected notices %v", notifier.messages)
	}
}

func TestAddPreservesFirstAddOrder(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 1)
	engine.Add(ctx, mango(), 1)
	engine.Add(ctx, tomato(), 1)

	entries := engine.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(entries))
	}
	if entries[0].Name != "Tomato" || entries[1].Name != "Mango" {
		t.Fatalf("order not preserved: %v", entries)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 2)

	if err := engine.UpdateQuantity(ctx, tomato().ProductID, 0); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(engine.Entries()) != 0 {
		t.Fatal("expected line removed")
	}

	engine.Add(ctx, tomato(), 2)
	if err := engine.UpdateQuantity(ctx, tomato().ProductID, -3); err != nil {
		t.Fatalf("update quantity negative: %v", err)
	}
	if len(engine.Entries()) != 0 {
		t.Fatal("expected line removed for negative quantity")
	}
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 5)

	if err := engine.UpdateQuantity(ctx, tomato().ProductID, 2); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := engine.Entries()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 1)

	if err := engine.Remove(ctx, tomato().ProductID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := engine.Remove(ctx, tomato().ProductID); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	if err := engine.Remove(ctx, uuid.New()); err != nil {
		t.Fatalf("removing absent product should be a no-op, got %v", err)
	}
}

func TestTotalsRecomputedFromSnapshots(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 2) // 2 * 30
	engine.Add(ctx, mango(), 3)  // 3 * 55.50

	if got := engine.TotalItems(); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}
	want := decimal.NewFromFloat(226.50)
	if !engine.TotalPrice().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, engine.TotalPrice())
	}
}

func TestCartRoundTripsThroughStore(t *testing.T) {
	manager, store, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 2)
	engine.Add(ctx, mango(), 1)

	// a second engine for the same owner sees the persisted state
	reloaded, err := manager.For(ctx, "alice")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Entries()) != 2 {
		t.Fatalf("expected 2 lines after reload, got %d", len(reloaded.Entries()))
	}

	raw, err := store.Get(ctx, "cart:alice")
	if err != nil {
		t.Fatalf("stored cart missing: %v", err)
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("stored cart not valid JSON: %v", err)
	}
}

func TestCorruptStoredCartDegradesToEmpty(t *testing.T) {
	manager, store, _ := newTestManager(t)
	ctx := context.Background()

	if err := store.Set(ctx, "cart:alice", "{not json"); err != nil {
		t.Fatalf("seed corrupt state: %v", err)
	}

	engine, err := manager.For(ctx, "alice")
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(engine.Entries()) != 0 {
		t.Fatal("expected empty cart for corrupt state")
	}

	// the next mutation overwrites the corrupt document
	if err := engine.Add(ctx, tomato(), 1); err != nil {
		t.Fatalf("add after corrupt load: %v", err)
	}
	raw, _ := store.Get(ctx, "cart:alice")
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("store still corrupt: %v", err)
	}
}

func TestClearEmptiesUnconditionally(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	engine, _ := manager.For(ctx, "alice")
	engine.Add(ctx, tomato(), 2)
	engine.Add(ctx, mango(), 4)

	if err := engine.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if engine.TotalItems() != 0 {
		t.Fatal("expected empty cart after clear")
	}
	if err := engine.Clear(ctx); err != nil {
		t.Fatalf("clearing an empty cart should succeed, got %v", err)
	}
}
