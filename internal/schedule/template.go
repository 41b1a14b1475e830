package schedule

import (
	"context"
	"fmt"
	"strings"

	"daybook/internal/model"
	"daybook/internal/store"
)

// TemplateInput names a template to capture from a day's current schedule.
type TemplateInput struct {
	Name string `json:"name"`
}

// ListTemplates returns a tour's templates newest-first. An unknown tour
// yields an empty list.
func (s *Service) ListTemplates(ctx context.Context, tourID string) ([]model.ScheduleTemplate, error) {
	var out []model.ScheduleTemplate
	err := s.Store.View(ctx, func(tx store.Tx) error {
		tpls, err := tx.TemplatesByTour(tourID)
		if err != nil {
			return err
		}
		out = tpls
		return nil
	})
	if out == nil {
		out = []model.ScheduleTemplate{}
	}
	return out, err
}

// CreateTemplate snapshots the day's current schedule under the owning tour.
// Event ids and day bindings are dropped and done flags reset, so applying
// the template later starts every line fresh.
func (s *Service) CreateTemplate(ctx context.Context, dayID string, in TemplateInput) (model.ScheduleTemplate, error) {
	var out model.ScheduleTemplate
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		day, err := tx.Day(dayID)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fmt.Errorf("template name required: %w", store.ErrInvalidArgument)
		}
		events, err := tx.EventsByDay(dayID)
		if err != nil {
			return err
		}
		lines := make([]model.TemplateEvent, 0, len(events))
		for _, e := range events {
			assocs := e.Associations
			if assocs == nil {
				assocs = []model.Association{}
			}
			lines = append(lines, model.TemplateEvent{
				Name:         e.Name,
				StartLocal:   e.StartLocal,
				EndLocal:     e.EndLocal,
				Status:       model.StatusTodo,
				Associations: assocs,
				Notes:        e.Notes,
			})
		}
		out = model.ScheduleTemplate{
			ID:           tx.NewID("tpl"),
			TourID:       day.TourID,
			Name:         name,
			Events:       lines,
			CreatedAtISO: s.nowISO(),
		}
		return tx.PutTemplate(out)
	})
	return out, err
}

// DeleteTemplate removes a template if it belongs to the tour. Like the
// other deletes it is idempotent; ok reports whether anything was removed.
func (s *Service) DeleteTemplate(ctx context.Context, tourID, id string) (bool, error) {
	var ok bool
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		ok, err = tx.DeleteTemplate(tourID, id)
		return err
	})
	return ok, err
}
