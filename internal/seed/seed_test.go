package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"daybook/internal/store"
)

func TestLoadFileAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	src := `
tours:
  - id: "t1"
    name: "Acoustic Run"
venues:
  - id: "v1"
    name: "Ryman Auditorium"
    city: "Nashville"
    state: "TN"
days:
  - id: "d1"
    tourId: "t1"
    dateISO: "2026-03-01"
    dayType: "show"
    city: "Nashville"
    venueId: "v1"
    tz: "America/Chicago"
schedule:
  - dayId: "d1"
    name: "Doors"
    startLocal: "19:00"
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	m := store.NewMemory()
	ctx := context.Background()
	if err := Apply(ctx, m, data); err != nil {
		t.Fatal(err)
	}

	err = m.View(ctx, func(tx store.Tx) error {
		day, err := tx.Day("d1")
		if err != nil {
			return err
		}
		if day.TourID != "t1" {
			t.Errorf("day tourId = %q", day.TourID)
		}
		events, err := tx.EventsByDay("d1")
		if err != nil {
			return err
		}
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
		if events[0].ID == "" || events[0].Status != "todo" {
			t.Errorf("seeded event not normalized: %+v", events[0])
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDemoIsSelfConsistent(t *testing.T) {
	d := Demo()
	venues := map[string]bool{}
	for _, v := range d.Venues {
		venues[v.ID] = true
	}
	for _, day := range d.Days {
		if !venues[day.VenueID] {
			t.Errorf("day %s references unknown venue %s", day.ID, day.VenueID)
		}
	}
	days := map[string]bool{}
	for _, day := range d.Days {
		days[day.ID] = true
	}
	for _, e := range d.Schedule {
		if !days[e.DayID] {
			t.Errorf("event %s references unknown day %s", e.ID, e.DayID)
		}
	}
	for _, n := range d.Notes {
		if !days[n.DayID] {
			t.Errorf("note %s references unknown day %s", n.ID, n.DayID)
		}
	}
}
