package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

// Manager hands out per-owner cart engines backed by a shared store.
type Manager struct {
	store  kvstore.Store
	notify Notifier
}

// NewManager builds a cart manager. The notifier is optional.
func NewManager(store kvstore.Store, notify Notifier) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &Manager{store: store, notify: notify}, nil
}

// For loads the owner's cart. Missing or corrupt stored state yields an
// empty cart rather than an error.
func (m *Manager) For(ctx context.Context, owner string) (*Engine, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errNoOwner, "loading cart")
	}

	engine := &Engine{
		owner:  owner,
		store:  m.store,
		notify: m.notify,
	}
	engine.load(ctx)
	return engine, nil
}
