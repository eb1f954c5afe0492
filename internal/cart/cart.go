// Package cart implements the durable shopping cart. Each owner's cart is a
// JSON document in the key-value store; every mutation rewrites the full
// document synchronously so the stored state always matches memory.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

const keyPrefix = "cart:"

// Entry is a full product snapshot captured at add time. The cart never
// consults the catalog again for these fields.
type Entry struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	FarmerID  uuid.UUID       `json:"farmerId,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Notifier receives transient user-facing notices emitted by cart mutations.
type Notifier interface {
	Notify(ctx context.Context, owner, message string)
}

// Engine holds one owner's cart. Obtain it through Manager.For; entries keep
// first-add order.
type Engine struct {
	owner   string
	store   kvstore.Store
	notify  Notifier
	entries []Entry
}

func (e *Engine) key() string {
	return keyPrefix + e.owner
}

// Entries returns the current snapshot set in first-add order.
func (e *Engine) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Add merges the snapshot into the cart: an existing line for the same
// product gains the quantity, otherwise the snapshot is appended.
func (e *Engine) Add(ctx context.Context, entry Entry, quantity int) error {
	if entry.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	merged := false
	for i := range e.entries {
		if e.entries[i].ProductID == entry.ProductID {
			e.entries[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		entry.Quantity = quantity
		e.entries = append(e.entries, entry)
	}

	if err := e.persist(ctx); err != nil {
		return err
	}
	if e.notify != nil {
		e.notify.Notify(ctx, e.owner, fmt.Sprintf("%s added to cart", entry.Name))
	}
	return nil
}

// UpdateQuantity sets a line's quantity to an absolute value. A value of
// zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return e.Remove(ctx, productID)
	}
	for i := range e.entries {
		if e.entries[i].ProductID == productID {
			e.entries[i].Quantity = quantity
			break
		}
	}
	return e.persist(ctx)
}

// Remove drops a line if present. Removing an absent product is a no-op.
func (e *Engine) Remove(ctx context.Context, productID uuid.UUID) error {
	kept := e.entries[:0]
	for _, entry := range e.entries {
		if entry.ProductID != productID {
			kept = append(kept, entry)
		}
	}
	e.entries = kept
	return e.persist(ctx)
}

// Clear empties the cart unconditionally.
func (e *Engine) Clear(ctx context.Context) error {
	e.entries = nil
	return e.persist(ctx)
}

// TotalItems sums line quantities.
func (e *Engine) TotalItems() int {
	total := 0
	for _, entry := range e.entries {
		total += entry.Quantity
	}
	return total
}

// TotalPrice recomputes the cart total from the stored snapshots.
func (e *Engine) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range e.entries {
		total = total.Add(entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total
}

func (e *Engine) persist(ctx context.Context) error {
	payload, err := json.Marshal(e.entries)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := e.store.Set(ctx, e.key(), string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting cart")
	}
	return nil
}

func (e *Engine) load(ctx context.Context) {
	raw, err := e.store.Get(ctx, e.key())
	if err != nil {
		// missing or unreadable state degrades to an empty cart
		e.entries = nil
		return
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		e.entries = nil
		return
	}
	e.entries = entries
}

var errNoOwner = errors.New("cart owner is required")
