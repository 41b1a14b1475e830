package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"daybook/internal/model"
)

// Postgres implements Store on gorm. Every View/Update closure runs inside
// a transaction, so the memory store's critical-section and snapshot
// guarantees carry over unchanged.
type Postgres struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*Postgres, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Postgres{db: gdb}, nil
}

func (p *Postgres) AutoMigrateAndIndexes() error {
	if err := p.db.AutoMigrate(
		&tourRow{},
		&venueRow{},
		&dayRow{},
		&eventRow{},
		&contactRow{},
		&noteRow{},
		&lodgingRow{},
		&templateRow{},
		&groupRow{},
		&personRow{},
	); err != nil {
		return err
	}

	// Association-target filter (GIN for text[])
	if err := p.db.Exec(`create index if not exists idx_events_assoc_refs on schedule_events using gin (assoc_refs);`).Error; err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_days_tour_date on days(tour_id, date_iso);`,
		`create index if not exists idx_events_day_start on schedule_events(day_id, start_local);`,
		`create index if not exists idx_notes_day_edited on notes(day_id, last_edited_at desc);`,
		`create index if not exists idx_templates_tour_created on schedule_templates(tour_id, created_at desc);`,
		`create index if not exists idx_people_tour_name on people(tour_id, name);`,
		`create index if not exists idx_groups_tour_name on groups(tour_id, name);`,
	}
	for _, s := range stmts {
		if err := p.db.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}

func (p *Postgres) View(ctx context.Context, fn func(Tx) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx})
	})
}

func (p *Postgres) Update(ctx context.Context, fn func(Tx) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx})
	})
}

type tourRow struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Subtitle string
}

func (tourRow) TableName() string { return "tours" }

type venueRow struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Address1 string
	City     string
	State    string
	Postal   string
}

func (venueRow) TableName() string { return "venues" }

type dayRow struct {
	ID      string `gorm:"primaryKey"`
	TourID  string `gorm:"index;not null"`
	DateISO string `gorm:"column:date_iso;not null"`
	DayType string `gorm:"not null"`
	City    string
	State   string
	VenueID string `gorm:"not null"`
	TZ      string `gorm:"column:tz;not null"`
}

func (dayRow) TableName() string { return "days" }

type eventRow struct {
	ID         string `gorm:"primaryKey"`
	DayID      string `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	StartLocal string
	EndLocal   string

	Status       string          `gorm:"not null;default:'todo'"`
	Associations json.RawMessage `gorm:"type:jsonb;not null;default:'[]'::jsonb"`
	AssocRefs    pq.StringArray  `gorm:"type:text[];not null;default:'{}'"`
	Notes        string          `gorm:"type:text"`
	Seq          int64           `gorm:"index;not null"`
}

func (eventRow) TableName() string { return "schedule_events" }

type contactRow struct {
	ID    string `gorm:"primaryKey"`
	DayID string `gorm:"index;not null"`
	Name  string `gorm:"not null"`
	Role  string
	Phone string
	Email string
}

func (contactRow) TableName() string { return "contacts" }

type noteRow struct {
	ID           string `gorm:"primaryKey"`
	DayID        string `gorm:"index;not null"`
	Title        string `gorm:"not null"`
	Body         string `gorm:"type:text"`
	LastEditedBy string
	LastEditedAt string `gorm:"column:last_edited_at;not null"`
}

func (noteRow) TableName() string { return "notes" }

type lodgingRow struct {
	DayID       string          `gorm:"primaryKey"`
	ID          string          `gorm:"uniqueIndex;not null"`
	Hotel       json.RawMessage `gorm:"type:jsonb"`
	CheckInISO  string          `gorm:"column:check_in_iso"`
	CheckOutISO string          `gorm:"column:check_out_iso"`
	Rooms       *int
	Notes       string         `gorm:"type:text"`
	Guests      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	UpdatedAt   string         `gorm:"not null"`
}

func (lodgingRow) TableName() string { return "day_lodgings" }

type templateRow struct {
	ID        string          `gorm:"primaryKey"`
	TourID    string          `gorm:"index;not null"`
	Name      string          `gorm:"not null"`
	Events    json.RawMessage `gorm:"type:jsonb;not null;default:'[]'::jsonb"`
	CreatedAt string          `gorm:"column:created_at;not null"`
}

func (templateRow) TableName() string { return "schedule_templates" }

type groupRow struct {
	ID     string `gorm:"primaryKey"`
	TourID string `gorm:"index;not null"`
	Name   string `gorm:"not null"`
	Color  string
}

func (groupRow) TableName() string { return "groups" }

type personRow struct {
	ID         string `gorm:"primaryKey"`
	TourID     string `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	RoleTitle  string
	Email      string
	Phone      string
	GroupID    string
	Permission string `gorm:"not null;default:'read'"`
	Connected  bool   `gorm:"not null;default:false"`
}

func (personRow) TableName() string { return "people" }

type pgTx struct {
	db *gorm.DB
}

func (t *pgTx) NewID(prefix string) string {
	// uuid suffixes cannot collide; the primary key constraint backs
	// the uniqueness guarantee regardless
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}

func (t *pgTx) Tours() ([]model.Tour, error) {
	var rows []tourRow
	if err := t.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Tour, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Tour{ID: r.ID, Name: r.Name, Subtitle: r.Subtitle})
	}
	model.SortTours(out)
	return out, nil
}

func (t *pgTx) PutTour(v model.Tour) error {
	return t.db.Save(&tourRow{ID: v.ID, Name: v.Name, Subtitle: v.Subtitle}).Error
}

func (t *pgTx) Venue(id string) (model.Venue, error) {
	var r venueRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.Venue{}, notFound(err, "venue", id)
	}
	return model.Venue{ID: r.ID, Name: r.Name, Address1: r.Address1, City: r.City, State: r.State, Postal: r.Postal}, nil
}

func (t *pgTx) PutVenue(v model.Venue) error {
	return t.db.Save(&venueRow{ID: v.ID, Name: v.Name, Address1: v.Address1, City: v.City, State: v.State, Postal: v.Postal}).Error
}

func dayFromRow(r dayRow) model.Day {
	return model.Day{
		ID: r.ID, TourID: r.TourID, DateISO: r.DateISO,
		DayType: model.DayType(r.DayType), City: r.City, State: r.State,
		VenueID: r.VenueID, TZ: r.TZ,
	}
}

func (t *pgTx) Day(id string) (model.Day, error) {
	var r dayRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.Day{}, notFound(err, "day", id)
	}
	return dayFromRow(r), nil
}

func (t *pgTx) DaysByTour(tourID string) ([]model.Day, error) {
	var rows []dayRow
	if err := t.db.Where("tour_id = ?", tourID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.Day
	for _, r := range rows {
		out = append(out, dayFromRow(r))
	}
	model.SortDays(out)
	return out, nil
}

func (t *pgTx) PutDay(d model.Day) error {
	return t.db.Save(&dayRow{
		ID: d.ID, TourID: d.TourID, DateISO: d.DateISO,
		DayType: string(d.DayType), City: d.City, State: d.State,
		VenueID: d.VenueID, TZ: d.TZ,
	}).Error
}

func eventFromRow(r eventRow) (model.ScheduleEvent, error) {
	e := model.ScheduleEvent{
		ID: r.ID, DayID: r.DayID, Name: r.Name,
		StartLocal: r.StartLocal, EndLocal: r.EndLocal,
		Status: model.EventStatus(r.Status), Notes: r.Notes,
		Associations: []model.Association{},
	}
	if len(r.Associations) > 0 {
		if err := json.Unmarshal(r.Associations, &e.Associations); err != nil {
			return e, fmt.Errorf("event %s associations: %w", r.ID, err)
		}
	}
	return e, nil
}

func eventToRow(e model.ScheduleEvent, seq int64) (eventRow, error) {
	raw, err := json.Marshal(e.Associations)
	if err != nil {
		return eventRow{}, err
	}
	refs := make(pq.StringArray, 0, len(e.Associations))
	for _, a := range e.Associations {
		refs = append(refs, a.ID)
	}
	return eventRow{
		ID: e.ID, DayID: e.DayID, Name: e.Name,
		StartLocal: e.StartLocal, EndLocal: e.EndLocal,
		Status: string(e.Status), Associations: raw, AssocRefs: refs,
		Notes: e.Notes, Seq: seq,
	}, nil
}

func (t *pgTx) Event(id string) (model.ScheduleEvent, error) {
	var r eventRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.ScheduleEvent{}, notFound(err, "event", id)
	}
	return eventFromRow(r)
}

func (t *pgTx) EventsByDay(dayID string) ([]model.ScheduleEvent, error) {
	var rows []eventRow
	if err := t.db.Where("day_id = ?", dayID).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.ScheduleEvent
	for _, r := range rows {
		e, err := eventFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	model.SortEvents(out)
	return out, nil
}

func (t *pgTx) PutEvent(e model.ScheduleEvent) error {
	seq := time.Now().UnixNano()
	var existing eventRow
	err := t.db.Where("id = ?", e.ID).First(&existing).Error
	switch {
	case err == nil:
		seq = existing.Seq
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	row, merr := eventToRow(e, seq)
	if merr != nil {
		return merr
	}
	return t.db.Save(&row).Error
}

func (t *pgTx) DeleteEvent(dayID, id string) (bool, error) {
	res := t.db.Where("id = ? AND day_id = ?", id, dayID).Delete(&eventRow{})
	return res.RowsAffected > 0, res.Error
}

func (t *pgTx) ContactsByDay(dayID string) ([]model.Contact, error) {
	var rows []contactRow
	if err := t.db.Where("day_id = ?", dayID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.Contact
	for _, r := range rows {
		out = append(out, model.Contact{ID: r.ID, DayID: r.DayID, Name: r.Name, Role: r.Role, Phone: r.Phone, Email: r.Email})
	}
	model.SortContacts(out)
	return out, nil
}

func (t *pgTx) PutContact(c model.Contact) error {
	return t.db.Save(&contactRow{ID: c.ID, DayID: c.DayID, Name: c.Name, Role: c.Role, Phone: c.Phone, Email: c.Email}).Error
}

func noteFromRow(r noteRow) model.Note {
	return model.Note{
		ID: r.ID, DayID: r.DayID, Title: r.Title, Body: r.Body,
		LastEditedBy: r.LastEditedBy, LastEditedAtISO: r.LastEditedAt,
	}
}

func (t *pgTx) Note(dayID, id string) (model.Note, error) {
	var r noteRow
	if err := t.db.Where("id = ? AND day_id = ?", id, dayID).First(&r).Error; err != nil {
		return model.Note{}, notFound(err, "note", id)
	}
	return noteFromRow(r), nil
}

func (t *pgTx) NotesByDay(dayID string) ([]model.Note, error) {
	var rows []noteRow
	if err := t.db.Where("day_id = ?", dayID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.Note
	for _, r := range rows {
		out = append(out, noteFromRow(r))
	}
	model.SortNotes(out)
	return out, nil
}

func (t *pgTx) PutNote(n model.Note) error {
	return t.db.Save(&noteRow{
		ID: n.ID, DayID: n.DayID, Title: n.Title, Body: n.Body,
		LastEditedBy: n.LastEditedBy, LastEditedAt: n.LastEditedAtISO,
	}).Error
}

func (t *pgTx) DeleteNote(dayID, id string) (bool, error) {
	res := t.db.Where("id = ? AND day_id = ?", id, dayID).Delete(&noteRow{})
	return res.RowsAffected > 0, res.Error
}

func (t *pgTx) LodgingByDay(dayID string) (model.DayLodging, error) {
	var r lodgingRow
	if err := t.db.Where("day_id = ?", dayID).First(&r).Error; err != nil {
		return model.DayLodging{}, notFound(err, "lodging for day", dayID)
	}
	l := model.DayLodging{
		ID: r.ID, DayID: r.DayID,
		CheckInISO: r.CheckInISO, CheckOutISO: r.CheckOutISO,
		Rooms: r.Rooms, Notes: r.Notes, UpdatedAt: r.UpdatedAt,
		Guests: make([]model.LodgingGuest, 0, len(r.Guests)),
	}
	for _, pid := range r.Guests {
		l.Guests = append(l.Guests, model.LodgingGuest{PersonID: pid})
	}
	if len(r.Hotel) > 0 {
		var h model.Hotel
		if err := json.Unmarshal(r.Hotel, &h); err != nil {
			return model.DayLodging{}, fmt.Errorf("lodging %s hotel: %w", r.ID, err)
		}
		l.Hotel = &h
	}
	return l, nil
}

func (t *pgTx) PutLodging(l model.DayLodging) error {
	row := lodgingRow{
		DayID: l.DayID, ID: l.ID,
		CheckInISO: l.CheckInISO, CheckOutISO: l.CheckOutISO,
		Rooms: l.Rooms, Notes: l.Notes, UpdatedAt: l.UpdatedAt,
		Guests: make(pq.StringArray, 0, len(l.Guests)),
	}
	for _, g := range l.Guests {
		row.Guests = append(row.Guests, g.PersonID)
	}
	if l.Hotel != nil {
		raw, err := json.Marshal(l.Hotel)
		if err != nil {
			return err
		}
		row.Hotel = raw
	}
	return t.db.Save(&row).Error
}

func (t *pgTx) DeleteLodging(dayID string) (bool, error) {
	res := t.db.Where("day_id = ?", dayID).Delete(&lodgingRow{})
	return res.RowsAffected > 0, res.Error
}

func templateFromRow(r templateRow) (model.ScheduleTemplate, error) {
	tpl := model.ScheduleTemplate{
		ID: r.ID, TourID: r.TourID, Name: r.Name,
		CreatedAtISO: r.CreatedAt,
		Events:       []model.TemplateEvent{},
	}
	if len(r.Events) > 0 {
		if err := json.Unmarshal(r.Events, &tpl.Events); err != nil {
			return tpl, fmt.Errorf("template %s events: %w", r.ID, err)
		}
	}
	return tpl, nil
}

func (t *pgTx) FindTemplate(id string) (model.ScheduleTemplate, error) {
	var r templateRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.ScheduleTemplate{}, notFound(err, "template", id)
	}
	return templateFromRow(r)
}

func (t *pgTx) TemplatesByTour(tourID string) ([]model.ScheduleTemplate, error) {
	var rows []templateRow
	if err := t.db.Where("tour_id = ?", tourID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.ScheduleTemplate
	for _, r := range rows {
		tpl, err := templateFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	model.SortTemplates(out)
	return out, nil
}

func (t *pgTx) PutTemplate(tpl model.ScheduleTemplate) error {
	raw, err := json.Marshal(tpl.Events)
	if err != nil {
		return err
	}
	return t.db.Save(&templateRow{
		ID: tpl.ID, TourID: tpl.TourID, Name: tpl.Name,
		Events: raw, CreatedAt: tpl.CreatedAtISO,
	}).Error
}

func (t *pgTx) DeleteTemplate(tourID, id string) (bool, error) {
	res := t.db.Where("id = ? AND tour_id = ?", id, tourID).Delete(&templateRow{})
	return res.RowsAffected > 0, res.Error
}

func (t *pgTx) FindGroup(id string) (model.Group, error) {
	var r groupRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.Group{}, notFound(err, "group", id)
	}
	return model.Group{ID: r.ID, TourID: r.TourID, Name: r.Name, Color: r.Color}, nil
}

func (t *pgTx) GroupsByTour(tourID string) ([]model.Group, error) {
	var rows []groupRow
	if err := t.db.Where("tour_id = ?", tourID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.Group
	for _, r := range rows {
		out = append(out, model.Group{ID: r.ID, TourID: r.TourID, Name: r.Name, Color: r.Color})
	}
	model.SortGroups(out)
	return out, nil
}

func (t *pgTx) PutGroup(g model.Group) error {
	return t.db.Save(&groupRow{ID: g.ID, TourID: g.TourID, Name: g.Name, Color: g.Color}).Error
}

func (t *pgTx) DeleteGroup(tourID, id string) (bool, error) {
	res := t.db.Where("id = ? AND tour_id = ?", id, tourID).Delete(&groupRow{})
	return res.RowsAffected > 0, res.Error
}

func personFromRow(r personRow) model.Person {
	return model.Person{
		ID: r.ID, TourID: r.TourID, Name: r.Name, RoleTitle: r.RoleTitle,
		Email: r.Email, Phone: r.Phone, GroupID: r.GroupID,
		Permission: model.Permission(r.Permission), Connected: r.Connected,
	}
}

func (t *pgTx) FindPerson(id string) (model.Person, error) {
	var r personRow
	if err := t.db.Where("id = ?", id).First(&r).Error; err != nil {
		return model.Person{}, notFound(err, "person", id)
	}
	return personFromRow(r), nil
}

func (t *pgTx) PeopleByTour(tourID string) ([]model.Person, error) {
	var rows []personRow
	if err := t.db.Where("tour_id = ?", tourID).Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.Person
	for _, r := range rows {
		out = append(out, personFromRow(r))
	}
	model.SortPeople(out)
	return out, nil
}

func (t *pgTx) PutPerson(p model.Person) error {
	return t.db.Save(&personRow{
		ID: p.ID, TourID: p.TourID, Name: p.Name, RoleTitle: p.RoleTitle,
		Email: p.Email, Phone: p.Phone, GroupID: p.GroupID,
		Permission: string(p.Permission), Connected: p.Connected,
	}).Error
}

func (t *pgTx) DeletePerson(tourID, id string) (bool, error) {
	res := t.db.Where("id = ? AND tour_id = ?", id, tourID).Delete(&personRow{})
	return res.RowsAffected > 0, res.Error
}
