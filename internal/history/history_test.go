package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

func newTestService(t *testing.T) (Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestAddKeepsMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "tomato")
	svc.Add(ctx, "alice", "mango")
	terms, err := svc.Add(ctx, "alice", "rice")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	want := []string{"rice", "mango", "tomato"}
	if len(terms) != len(want) {
		t.Fatalf("expected %v, got %v", want, terms)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, terms)
		}
	}
}

func TestAddDeduplicatesCaseInsensitively(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "tomato")
	svc.Add(ctx, "alice", "mango")
	terms, _ := svc.Add(ctx, "alice", "Tomato")

	if len(terms) != 2 {
		t.Fatalf("expected dedup to 2 terms, got %v", terms)
	}
	if terms[0] != "Tomato" || terms[1] != "mango" {
		t.Fatalf("repeated term should move to front: %v", terms)
	}
}

func TestAddCapsAtTwenty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.Add(ctx, "alice", fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	terms, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(terms) != 20 {
		t.Fatalf("expected cap of 20, got %d", len(terms))
	}
	if terms[0] != "term-24" {
		t.Fatalf("expected newest first, got %q", terms[0])
	}
	if terms[19] != "term-5" {
		t.Fatalf("expected oldest kept to be term-5, got %q", terms[19])
	}
}

func TestListCorruptStateDegradesToEmpty(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.Set(ctx, "search_history:alice", "not-json")

	terms, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(terms) != 0 {
		t.Fatalf("expected empty history, got %v", terms)
	}
}

func TestClearRemovesHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "tomato")
	if err := svc.Clear(ctx, "alice"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	terms, _ := svc.List(ctx, "alice")
	if len(terms) != 0 {
		t.Fatalf("expected cleared history, got %v", terms)
	}
}
