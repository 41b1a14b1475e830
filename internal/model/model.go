package model

// DayType classifies what a tour day is for.
type DayType string

const (
	DayTypeShow      DayType = "show"
	DayTypeTravel    DayType = "travel"
	DayTypeOff       DayType = "off"
	DayTypeRehearsal DayType = "rehearsal"
)

func (t DayType) Valid() bool {
	switch t {
	case DayTypeShow, DayTypeTravel, DayTypeOff, DayTypeRehearsal:
		return true
	}
	return false
}

// Permission is a person's access level within a tour.
type Permission string

const (
	PermissionOwner Permission = "owner"
	PermissionEdit  Permission = "edit"
	PermissionRead  Permission = "read"
)

func (p Permission) Valid() bool {
	switch p {
	case PermissionOwner, PermissionEdit, PermissionRead:
		return true
	}
	return false
}

// EventStatus is a schedule event's done/todo flag.
type EventStatus string

const (
	StatusTodo EventStatus = "todo"
	StatusDone EventStatus = "done"
)

func (s EventStatus) Valid() bool {
	return s == StatusTodo || s == StatusDone
}

// AssociationType tags which collection an Association points into.
type AssociationType string

const (
	AssocGroup  AssociationType = "group"
	AssocPerson AssociationType = "person"
)

func (t AssociationType) Valid() bool {
	return t == AssocGroup || t == AssocPerson
}

// Association is a weak reference to a group or a person. The target may be
// deleted independently; a dangling association is kept on the record and
// only dropped from resolved display projections.
type Association struct {
	Type AssociationType `json:"type" yaml:"type"`
	ID   string          `json:"id" yaml:"id"`
}

type Tour struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
}

type Venue struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Address1 string `json:"address1" yaml:"address1"`
	City     string `json:"city" yaml:"city"`
	State    string `json:"state" yaml:"state"`
	Postal   string `json:"postal" yaml:"postal"`
}

// Day is one calendar day of a tour. TZ is the IANA zone the day's local
// times are interpreted in; no timezone math happens in this service.
type Day struct {
	ID      string  `json:"id" yaml:"id"`
	TourID  string  `json:"tourId" yaml:"tourId"`
	DateISO string  `json:"dateISO" yaml:"dateISO"`
	DayType DayType `json:"dayType" yaml:"dayType"`
	City    string  `json:"city" yaml:"city"`
	State   string  `json:"state,omitempty" yaml:"state,omitempty"`
	VenueID string  `json:"venueId" yaml:"venueId"`
	TZ      string  `json:"tz" yaml:"tz"`
}

// ScheduleEvent is one timed item on a day's schedule. StartLocal/EndLocal
// are wall-clock "HH:MM" strings in the owning day's zone; empty means unset.
type ScheduleEvent struct {
	ID           string        `json:"id" yaml:"id"`
	DayID        string        `json:"dayId" yaml:"dayId"`
	Name         string        `json:"name" yaml:"name"`
	StartLocal   string        `json:"startLocal,omitempty" yaml:"startLocal,omitempty"`
	EndLocal     string        `json:"endLocal,omitempty" yaml:"endLocal,omitempty"`
	Status       EventStatus   `json:"status" yaml:"status"`
	Associations []Association `json:"associations" yaml:"associations"`
	Notes        string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type Contact struct {
	ID    string `json:"id" yaml:"id"`
	DayID string `json:"dayId" yaml:"dayId"`
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

type Note struct {
	ID              string `json:"id" yaml:"id"`
	DayID           string `json:"dayId" yaml:"dayId"`
	Title           string `json:"title" yaml:"title"`
	Body            string `json:"body" yaml:"body"`
	LastEditedBy    string `json:"lastEditedBy" yaml:"lastEditedBy"`
	LastEditedAtISO string `json:"lastEditedAtISO" yaml:"lastEditedAtISO"`
}

type Group struct {
	ID     string `json:"id" yaml:"id"`
	TourID string `json:"tourId" yaml:"tourId"`
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Person belongs to a tour. GroupID is a weak reference: deleting the group
// leaves it dangling rather than cascading.
type Person struct {
	ID         string     `json:"id" yaml:"id"`
	TourID     string     `json:"tourId" yaml:"tourId"`
	Name       string     `json:"name" yaml:"name"`
	RoleTitle  string     `json:"roleTitle" yaml:"roleTitle"`
	Email      string     `json:"email,omitempty" yaml:"email,omitempty"`
	Phone      string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	GroupID    string     `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	Permission Permission `json:"permission" yaml:"permission"`
	Connected  bool       `json:"connected,omitempty" yaml:"connected,omitempty"`
}

type Hotel struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Address1    string `json:"address1" yaml:"address1"`
	City        string `json:"city" yaml:"city"`
	State       string `json:"state" yaml:"state"`
	Postal      string `json:"postal" yaml:"postal"`
	PlaceID     string `json:"placeId,omitempty" yaml:"placeId,omitempty"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
	AddressLine string `json:"addressLine,omitempty" yaml:"addressLine,omitempty"`
}

type LodgingGuest struct {
	PersonID string `json:"personId" yaml:"personId"`
}

// DayLodging is the single optional lodging record of a day. Guests are weak
// person references. The updated_at wire name is kept from the original API.
type DayLodging struct {
	ID          string         `json:"id" yaml:"id"`
	DayID       string         `json:"dayId" yaml:"dayId"`
	Hotel       *Hotel         `json:"hotel" yaml:"hotel"`
	CheckInISO  string         `json:"checkInISO" yaml:"checkInISO"`
	CheckOutISO string         `json:"checkOutISO" yaml:"checkOutISO"`
	Rooms       *int           `json:"rooms" yaml:"rooms"`
	Notes       string         `json:"notes" yaml:"notes"`
	Guests      []LodgingGuest `json:"guests" yaml:"guests"`
	UpdatedAt   string         `json:"updated_at" yaml:"updated_at"`
}

// TemplateEvent is one line of a schedule template: a schedule event
// stripped of its id and day binding. Re-applying a template goes through
// the batch endpoint, which mints fresh ids.
type TemplateEvent struct {
	Name         string        `json:"name" yaml:"name"`
	StartLocal   string        `json:"startLocal,omitempty" yaml:"startLocal,omitempty"`
	EndLocal     string        `json:"endLocal,omitempty" yaml:"endLocal,omitempty"`
	Status       EventStatus   `json:"status" yaml:"status"`
	Associations []Association `json:"associations" yaml:"associations"`
	Notes        string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ScheduleTemplate is a reusable snapshot of one day's schedule, scoped to
// the tour the day belonged to when it was captured.
type ScheduleTemplate struct {
	ID           string          `json:"id" yaml:"id"`
	TourID       string          `json:"tourId" yaml:"tourId"`
	Name         string          `json:"name" yaml:"name"`
	Events       []TemplateEvent `json:"events" yaml:"events"`
	CreatedAtISO string          `json:"createdAtISO" yaml:"createdAtISO"`
}

// PersonPatch enumerates the person fields eligible for partial update.
// ID and TourID are deliberately absent so a patch can never move a record.
type PersonPatch struct {
	Name       *string     `json:"name"`
	RoleTitle  *string     `json:"roleTitle"`
	Email      *string     `json:"email"`
	Phone      *string     `json:"phone"`
	GroupID    *string     `json:"groupId"`
	Permission *Permission `json:"permission"`
	Connected  *bool       `json:"connected"`
}

// GroupPatch is the partial-update shape for groups.
type GroupPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
