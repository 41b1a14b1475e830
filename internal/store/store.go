// Package store holds the authoritative collections behind the day-book API.
//
// All access goes through View/Update closures over a Tx. Update runs the
// closure as a single critical section: on the in-memory store it holds the
// write lock, on Postgres it runs inside a transaction. View gives a
// consistent snapshot; a reader never observes a half-applied batch.
//
// Services are expected to finish all validation before the first mutating
// Tx call, so that returning an error from an Update closure implies no
// mutation happened (the Postgres backend additionally rolls back).
package store

import (
	"context"
	"errors"

	"daybook/internal/model"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is reserved for duplicate-booking checks; nothing
	// raises it yet.
	ErrConflict = errors.New("conflict")
)

type Store interface {
	// View runs fn over a read snapshot.
	View(ctx context.Context, fn func(Tx) error) error
	// Update runs fn exclusively; concurrent updates never interleave.
	Update(ctx context.Context, fn func(Tx) error) error
}

// Tx is the per-collection surface available inside a View or Update
// closure. Lookups return ErrNotFound (wrapped) when the id is absent;
// deletes report absence through their bool instead of an error.
type Tx interface {
	// NewID mints a fresh identifier with the given type-tag prefix,
	// guaranteed not to collide with any existing identifier.
	NewID(prefix string) string

	Tours() ([]model.Tour, error)
	PutTour(model.Tour) error

	Venue(id string) (model.Venue, error)
	PutVenue(model.Venue) error

	Day(id string) (model.Day, error)
	DaysByTour(tourID string) ([]model.Day, error)
	PutDay(model.Day) error

	Event(id string) (model.ScheduleEvent, error)
	EventsByDay(dayID string) ([]model.ScheduleEvent, error)
	PutEvent(model.ScheduleEvent) error
	DeleteEvent(dayID, id string) (bool, error)

	ContactsByDay(dayID string) ([]model.Contact, error)
	PutContact(model.Contact) error

	Note(dayID, id string) (model.Note, error)
	NotesByDay(dayID string) ([]model.Note, error)
	PutNote(model.Note) error
	DeleteNote(dayID, id string) (bool, error)

	// LodgingByDay returns the day's single lodging record, or ErrNotFound.
	LodgingByDay(dayID string) (model.DayLodging, error)
	PutLodging(model.DayLodging) error
	DeleteLodging(dayID string) (bool, error)

	FindTemplate(id string) (model.ScheduleTemplate, error)
	TemplatesByTour(tourID string) ([]model.ScheduleTemplate, error)
	PutTemplate(model.ScheduleTemplate) error
	DeleteTemplate(tourID, id string) (bool, error)

	FindGroup(id string) (model.Group, error)
	GroupsByTour(tourID string) ([]model.Group, error)
	PutGroup(model.Group) error
	DeleteGroup(tourID, id string) (bool, error)

	FindPerson(id string) (model.Person, error)
	PeopleByTour(tourID string) ([]model.Person, error)
	PutPerson(model.Person) error
	DeletePerson(tourID, id string) (bool, error)
}
