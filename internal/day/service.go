// Package day assembles the read-side view of one tour day and owns the
// day-scoped write surfaces: notes and lodging.
package day

import (
	"context"
	"errors"
	"fmt"
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

// Context is the aggregated view for a day. Lodging is present only when a
// record exists.
type Context struct {
	Venue    model.Venue     `json:"venue"`
	Contacts []model.Contact `json:"contacts"`
	Notes    []model.Note    `json:"notes"`
	Lodging  *LodgingView    `json:"lodging,omitempty"`
}

// LodgingView is the lodging record plus guest names resolved through the
// association resolver. Dangling guest ids stay in Guests but contribute no
// name.
type LodgingView struct {
	model.DayLodging
	GuestNames []string `json:"guestNames"`
}

// Context joins venue, contacts, notes and lodging for a day under one read
// snapshot. A missing day is NotFound; so is a day whose venue does not
// resolve, since a day must always have a real venue (this is stricter than
// the tolerance applied to associations).
func (s *Service) Context(ctx context.Context, dayID string) (Context, error) {
	var out Context
	err := s.Store.View(ctx, func(tx store.Tx) error {
		d, err := tx.Day(dayID)
		if err != nil {
			return err
		}
		venue, err := tx.Venue(d.VenueID)
		if err != nil {
			return err
		}
		contacts, err := tx.ContactsByDay(dayID)
		if err != nil {
			return err
		}
		notes, err := tx.NotesByDay(dayID)
		if err != nil {
			return err
		}
		if contacts == nil {
			contacts = []model.Contact{}
		}
		if notes == nil {
			notes = []model.Note{}
		}
		out = Context{Venue: venue, Contacts: contacts, Notes: notes}

		lodging, err := tx.LodgingByDay(dayID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		view := LodgingView{DayLodging: lodging, GuestNames: []string{}}
		guests := make([]model.Association, 0, len(lodging.Guests))
		for _, g := range lodging.Guests {
			guests = append(guests, model.Association{Type: model.AssocPerson, ID: g.PersonID})
		}
		resolved, err := assoc.Resolve(tx, d.TourID, guests)
		if err != nil {
			return err
		}
		for _, r := range resolved {
			view.GuestNames = append(view.GuestNames, r.Name)
		}
		out.Lodging = &view
		return nil
	})
	return out, err
}

// NoteInput is the write shape for notes. Visibility is accepted for
// compatibility with older clients and ignored.
type NoteInput struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	LastEditedBy string `json:"lastEditedBy"`
	Visibility   string `json:"visibility"`
}

func (s *Service) CreateNote(ctx context.Context, dayID string, in NoteInput) (model.Note, error) {
	var out model.Note
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		if _, err := tx.Day(dayID); err != nil {
			return err
		}
		if in.Title == "" {
			return fmt.Errorf("note title required: %w", store.ErrInvalidArgument)
		}
		out = model.Note{
			ID:              tx.NewID("n"),
			DayID:           dayID,
			Title:           in.Title,
			Body:            in.Body,
			LastEditedBy:    in.LastEditedBy,
			LastEditedAtISO: s.nowISO(),
		}
		return tx.PutNote(out)
	})
	return out, err
}

// UpdateNote replaces the note's editable fields and refreshes the edit
// stamp, as every mutation must.
func (s *Service) UpdateNote(ctx context.Context, dayID, noteID string, in NoteInput) (model.Note, error) {
	var out model.Note
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		n, err := tx.Note(dayID, noteID)
		if err != nil {
			return err
		}
		if in.Title == "" {
			return fmt.Errorf("note title required: %w", store.ErrInvalidArgument)
		}
		n.Title = in.Title
		n.Body = in.Body
		n.LastEditedBy = in.LastEditedBy
		n.LastEditedAtISO = s.nowISO()
		out = n
		return tx.PutNote(n)
	})
	return out, err
}

func (s *Service) DeleteNote(ctx context.Context, dayID, noteID string) (bool, error) {
	var ok bool
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		ok, err = tx.DeleteNote(dayID, noteID)
		return err
	})
	return ok, err
}

// LodgingInput is the write shape for a day's lodging record.
type LodgingInput struct {
	Hotel       *model.Hotel         `json:"hotel"`
	CheckInISO  string               `json:"checkInISO"`
	CheckOutISO string               `json:"checkOutISO"`
	Rooms       *int                 `json:"rooms"`
	Notes       string               `json:"notes"`
	Guests      []model.LodgingGuest `json:"guests"`
}

// SaveLodging upserts the day's single lodging record. An existing record
// keeps its id; the record is replaced wholesale otherwise. Guests that
// resolve into another tour are rejected; unknown guest ids are tolerated.
func (s *Service) SaveLodging(ctx context.Context, dayID string, in LodgingInput) (model.DayLodging, error) {
	var out model.DayLodging
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		d, err := tx.Day(dayID)
		if err != nil {
			return err
		}
		guests := in.Guests
		if guests == nil {
			guests = []model.LodgingGuest{}
		}
		refs := make([]model.Association, 0, len(guests))
		for _, g := range guests {
			refs = append(refs, model.Association{Type: model.AssocPerson, ID: g.PersonID})
		}
		if err := assoc.CheckScope(tx, d.TourID, refs); err != nil {
			return err
		}

		id := ""
		if existing, err := tx.LodgingByDay(dayID); err == nil {
			id = existing.ID
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if id == "" {
			id = tx.NewID("l")
		}

		out = model.DayLodging{
			ID:          id,
			DayID:       dayID,
			Hotel:       in.Hotel,
			CheckInISO:  in.CheckInISO,
			CheckOutISO: in.CheckOutISO,
			Rooms:       in.Rooms,
			Notes:       in.Notes,
			Guests:      guests,
			UpdatedAt:   s.nowISO(),
		}
		return tx.PutLodging(out)
	})
	return out, err
}

func (s *Service) DeleteLodging(ctx context.Context, dayID string) (bool, error) {
	var ok bool
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		ok, err = tx.DeleteLodging(dayID)
		return err
	})
	return ok, err
}
