// Package assoc resolves the {type, id} references that schedule events and
// lodging guests carry. Resolution is best-effort: a reference whose target
// is gone stays on the record but produces no display entry.
package assoc

import (
	"errors"
	"fmt"

	"daybook/internal/model"
	"daybook/internal/store"
)

// Resolved is the display projection of one association.
type Resolved struct {
	Type model.AssociationType `json:"type"`
	ID   string                `json:"id"`
	Name string                `json:"name"`
}

// Resolve expands associations against the given tour's groups and people.
// Dangling references and references into other tours are omitted, never
// errors.
func Resolve(tx store.Tx, tourID string, as []model.Association) ([]Resolved, error) {
	out := make([]Resolved, 0, len(as))
	for _, a := range as {
		switch a.Type {
		case model.AssocGroup:
			g, err := tx.FindGroup(a.ID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if g.TourID != tourID {
				continue
			}
			out = append(out, Resolved{Type: a.Type, ID: a.ID, Name: g.Name})
		case model.AssocPerson:
			p, err := tx.FindPerson(a.ID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if p.TourID != tourID {
				continue
			}
			out = append(out, Resolved{Type: a.Type, ID: a.ID, Name: p.Name})
		}
	}
	return out, nil
}

// CheckScope validates associations at write time. Shape errors and
// references that resolve into a *different* tour are rejected; a reference
// whose target does not exist at all is allowed (it may have been deleted
// independently, or not synced yet).
func CheckScope(tx store.Tx, tourID string, as []model.Association) error {
	for _, a := range as {
		if !a.Type.Valid() {
			return fmt.Errorf("association type %q: %w", a.Type, store.ErrInvalidArgument)
		}
		if a.ID == "" {
			return fmt.Errorf("association id required: %w", store.ErrInvalidArgument)
		}
		var targetTour string
		switch a.Type {
		case model.AssocGroup:
			g, err := tx.FindGroup(a.ID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			targetTour = g.TourID
		case model.AssocPerson:
			p, err := tx.FindPerson(a.ID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			targetTour = p.TourID
		}
		if targetTour != tourID {
			return fmt.Errorf("association %s/%s belongs to another tour: %w", a.Type, a.ID, store.ErrInvalidArgument)
		}
	}
	return nil
}
