// Package history keeps each user's recent catalog searches in the
// key-value store, most recent first.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

const (
	keyPrefix  = "search_history:"
	maxEntries = 20
)

// Service records and lists per-user search terms.
type Service interface {
	Add(ctx context.Context, owner, term string) ([]string, error)
	List(ctx context.Context, owner string) ([]string, error)
	Clear(ctx context.Context, owner string) error
}

type service struct {
	store kvstore.Store
}

// NewService builds the search history service.
func NewService(store kvstore.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("history store required")
	}
	return &service{store: store}, nil
}

// Add records a search term. A repeated term moves to the front instead of
// duplicating; the list is capped at the most recent twenty.
func (s *service) Add(ctx context.Context, owner, term string) ([]string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	terms := s.load(ctx, owner)

	kept := make([]string, 0, len(terms)+1)
	kept = append(kept, term)
	for _, existing := range terms {
		if strings.EqualFold(existing, term) {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}

	if err := s.persist(ctx, owner, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *service) List(ctx context.Context, owner string) ([]string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	return s.load(ctx, owner), nil
}

func (s *service) Clear(ctx context.Context, owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if err := s.store.Delete(ctx, keyPrefix+owner); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing search history")
	}
	return nil
}

func (s *service) load(ctx context.Context, owner string) []string {
	raw, err := s.store.Get(ctx, keyPrefix+owner)
	if err != nil {
		return []string{}
	}
	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return []string{}
	}
	return terms
}

func (s *service) persist(ctx context.Context, owner string, terms []string) error {
	payload, err := json.Marshal(terms)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding search history")
	}
	if err := s.store.Set(ctx, keyPrefix+owner, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting search history")
	}
	return nil
}
