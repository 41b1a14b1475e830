package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"daybook/internal/model"
	"daybook/internal/store"
)

func TestCreateTemplateSnapshotsDay(t *testing.T) {
	m := demoStore(t)
	svc := &Service{Store: m, Now: func() time.Time {
		return time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC)
	}}
	ctx := context.Background()

	// a done flag on the source day must not leak into the template
	err := m.Update(ctx, func(tx store.Tx) error {
		e, err := tx.Event("e1")
		if err != nil {
			return err
		}
		e.Status = model.StatusDone
		return tx.PutEvent(e)
	})
	if err != nil {
		t.Fatal(err)
	}

	events, err := svc.ListByDay(ctx, "d2")
	if err != nil {
		t.Fatal(err)
	}

	tpl, err := svc.CreateTemplate(ctx, "d2", TemplateInput{Name: "  Show Day  "})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(tpl.ID, "tpl_") {
		t.Errorf("id %q: want a freshly minted tpl_ id", tpl.ID)
	}
	if tpl.TourID != "1" {
		t.Errorf("tourId = %q, want the day's tour", tpl.TourID)
	}
	if tpl.Name != "Show Day" {
		t.Errorf("name = %q, want trimmed", tpl.Name)
	}
	if tpl.CreatedAtISO != "2026-01-09T20:00:00Z" {
		t.Errorf("createdAtISO = %q", tpl.CreatedAtISO)
	}
	if len(tpl.Events) != len(events) {
		t.Fatalf("got %d template lines, want %d", len(tpl.Events), len(events))
	}
	for i, line := range tpl.Events {
		if line.Name != events[i].Name || line.StartLocal != events[i].StartLocal {
			t.Errorf("line %d = %+v, want snapshot of %+v", i, line, events[i])
		}
		if line.Status != model.StatusTodo {
			t.Errorf("line %d status = %q, want reset to todo", i, line.Status)
		}
	}
}

func TestCreateTemplateNameRequired(t *testing.T) {
	svc := &Service{Store: demoStore(t)}
	_, err := svc.CreateTemplate(context.Background(), "d2", TemplateInput{Name: "   "})
	if !errors.Is(err, store.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestCreateTemplateUnknownDay(t *testing.T) {
	svc := &Service{Store: demoStore(t)}
	_, err := svc.CreateTemplate(context.Background(), "no-such-day", TemplateInput{Name: "X"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTemplatesListedNewestFirst(t *testing.T) {
	now := time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC)
	svc := &Service{Store: demoStore(t), Now: func() time.Time {
		now = now.Add(time.Minute)
		return now
	}}
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, "d1", TemplateInput{Name: "Travel Day"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateTemplate(ctx, "d2", TemplateInput{Name: "Show Day"}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListTemplates(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d templates, want 2", len(got))
	}
	if got[0].Name != "Show Day" || got[1].Name != "Travel Day" {
		t.Errorf("templates not newest-first: %q, %q", got[0].Name, got[1].Name)
	}
}

func TestListTemplatesUnknownTourEmpty(t *testing.T) {
	svc := &Service{Store: demoStore(t)}
	got, err := svc.ListTemplates(context.Background(), "no-such-tour")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty list, got %d templates", len(got))
	}
}

func TestDeleteTemplateScopedToTour(t *testing.T) {
	svc := &Service{Store: demoStore(t)}
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, "d2", TemplateInput{Name: "Show Day"})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := svc.DeleteTemplate(ctx, "other-tour", tpl.ID)
	if err != nil || ok {
		t.Fatalf("cross-tour delete: ok=%v err=%v", ok, err)
	}
	if got, _ := svc.ListTemplates(ctx, "1"); len(got) != 1 {
		t.Fatal("cross-tour delete removed the template")
	}

	ok, err = svc.DeleteTemplate(ctx, "1", tpl.ID)
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	ok, err = svc.DeleteTemplate(ctx, "1", tpl.ID)
	if err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
}
