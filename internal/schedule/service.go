// Package schedule owns a day's schedule-event set. The batch endpoint is
// the only write path for events; it applies delete, then update, then
// create as one atomic unit.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"daybook/internal/assoc"
	"daybook/internal/model"
	"daybook/internal/store"
)

type Service struct {
	Store store.Store

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) nowISO() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(time.RFC3339)
}

// Batch is one create/update/delete request against a single day.
type Batch struct {
	Create []model.ScheduleEvent `json:"create"`
	Update []model.ScheduleEvent `json:"update"`
	Delete []string              `json:"delete"`
}

// ListByDay returns the day's events in display order. An unknown day yields
// an empty list; only the batch path insists the day exists.
func (s *Service) ListByDay(ctx context.Context, dayID string) ([]model.ScheduleEvent, error) {
	var out []model.ScheduleEvent
	err := s.Store.View(ctx, func(tx store.Tx) error {
		evs, err := tx.EventsByDay(dayID)
		if err != nil {
			return err
		}
		out = evs
		return nil
	})
	if out == nil {
		out = []model.ScheduleEvent{}
	}
	return out, err
}

// ApplyBatch applies b to the day's event set. All items are validated
// before any mutation, so a malformed item fails the whole batch and leaves
// the schedule untouched. Apply order is fixed: deletes first (so a delete
// wins over an update of the same id), then updates (an id that matches
// nothing is a no-op), then creates (which always mint a fresh id and take
// the day from the path, never the payload).
func (s *Service) ApplyBatch(ctx context.Context, dayID string, b Batch) error {
	return s.Store.Update(ctx, func(tx store.Tx) error {
		day, err := tx.Day(dayID)
		if err != nil {
			return err
		}

		for i := range b.Update {
			if b.Update[i].ID == "" {
				return fmt.Errorf("update items must include id: %w", store.ErrInvalidArgument)
			}
			if err := validateItem(tx, day.TourID, &b.Update[i]); err != nil {
				return err
			}
		}
		for i := range b.Create {
			if err := validateItem(tx, day.TourID, &b.Create[i]); err != nil {
				return err
			}
		}

		for _, id := range b.Delete {
			if _, err := tx.DeleteEvent(dayID, id); err != nil {
				return err
			}
		}

		for _, u := range b.Update {
			existing, err := tx.Event(u.ID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if existing.DayID != dayID {
				continue
			}
			u.DayID = dayID
			if err := tx.PutEvent(u); err != nil {
				return err
			}
		}

		for _, c := range b.Create {
			c.ID = tx.NewID("e")
			c.DayID = dayID
			if err := tx.PutEvent(c); err != nil {
				return err
			}
		}

		return nil
	})
}

// validateItem normalizes one batch item in place and rejects malformed
// ones. Associations referencing another tour fail here; dangling ones pass.
func validateItem(tx store.Tx, tourID string, e *model.ScheduleEvent) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return fmt.Errorf("event name required: %w", store.ErrInvalidArgument)
	}
	if e.Status == "" {
		e.Status = model.StatusTodo
	}
	if !e.Status.Valid() {
		return fmt.Errorf("event status %q: %w", e.Status, store.ErrInvalidArgument)
	}
	if e.Associations == nil {
		e.Associations = []model.Association{}
	}
	return assoc.CheckScope(tx, tourID, e.Associations)
}
