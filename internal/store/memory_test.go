package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"daybook/internal/model"
)

func TestNewIDPrefixAndUniqueness(t *testing.T) {
	m := NewMemory()
	seen := map[string]bool{}
	err := m.Update(context.Background(), func(tx Tx) error {
		for i := 0; i < 100; i++ {
			id := tx.NewID("e")
			if !strings.HasPrefix(id, "e_") {
				t.Fatalf("id %q missing type-tag prefix", id)
			}
			if seen[id] {
				t.Fatalf("id %q minted twice", id)
			}
			seen[id] = true
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDayLookupNotFound(t *testing.T) {
	m := NewMemory()
	err := m.View(context.Background(), func(tx Tx) error {
		_, err := tx.Day("nope")
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEventsByDayOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	events := []model.ScheduleEvent{
		{ID: "e1", DayID: "d1", Name: "Load Out", StartLocal: "22:30"},
		{ID: "e2", DayID: "d1", Name: "Settle Up"}, // no start: sorts last
		{ID: "e3", DayID: "d1", Name: "Bus Call", StartLocal: "06:00"},
		{ID: "e4", DayID: "d1", Name: "Doors", StartLocal: "22:30"},
		{ID: "e5", DayID: "d2", Name: "Other Day", StartLocal: "01:00"},
	}
	err := m.Update(ctx, func(tx Tx) error {
		for _, e := range events {
			if err := tx.PutEvent(e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []model.ScheduleEvent
	err = m.View(ctx, func(tx Tx) error {
		var err error
		got, err = tx.EventsByDay("d1")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"e3", "e1", "e4", "e2"} // ties keep insertion order
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestDeleteScopedToDay(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Update(ctx, func(tx Tx) error {
		if err := tx.PutEvent(model.ScheduleEvent{ID: "e1", DayID: "d1", Name: "X"}); err != nil {
			return err
		}
		// wrong day: must not remove
		if ok, _ := tx.DeleteEvent("d2", "e1"); ok {
			t.Error("delete with wrong day removed the event")
		}
		if ok, _ := tx.DeleteEvent("d1", "e1"); !ok {
			t.Error("delete with owning day reported false")
		}
		if ok, _ := tx.DeleteEvent("d1", "e1"); ok {
			t.Error("second delete reported true")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSingleLodgingPerDay(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Update(ctx, func(tx Tx) error {
		if err := tx.PutLodging(model.DayLodging{ID: "l1", DayID: "d1", Notes: "first"}); err != nil {
			return err
		}
		if err := tx.PutLodging(model.DayLodging{ID: "l2", DayID: "d1", Notes: "second"}); err != nil {
			return err
		}
		l, err := tx.LodgingByDay("d1")
		if err != nil {
			return err
		}
		if l.ID != "l2" || l.Notes != "second" {
			t.Errorf("expected the later record to win, got %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestViewSeesCommittedStateOnly(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	applied := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = m.Update(ctx, func(tx Tx) error {
			_ = tx.PutTour(model.Tour{ID: "1", Name: "A"})
			close(applied)
			_ = tx.PutTour(model.Tour{ID: "2", Name: "B"})
			return nil
		})
	}()

	<-applied
	var n int
	_ = m.View(ctx, func(tx Tx) error {
		tours, err := tx.Tours()
		if err != nil {
			return err
		}
		n = len(tours)
		return nil
	})
	<-done

	// the read either ran before or after the whole update, never between
	// the two puts
	if n != 0 && n != 2 {
		t.Fatalf("reader observed a half-applied update: %d tours", n)
	}
}
