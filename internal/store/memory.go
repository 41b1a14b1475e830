package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"daybook/internal/model"
)

// Memory is the reference store: plain maps behind a sync.RWMutex. Update
// holds the write lock for the whole closure, View the read lock, which
// gives the single-critical-section and snapshot-read guarantees directly.
type Memory struct {
	mu sync.RWMutex

	tours     map[string]model.Tour
	venues    map[string]model.Venue
	days      map[string]model.Day
	events    map[string]model.ScheduleEvent
	contacts  map[string]model.Contact
	notes     map[string]model.Note
	lodgings  map[string]model.DayLodging // keyed by dayId: one record per day
	templates map[string]model.ScheduleTemplate
	groups    map[string]model.Group
	people    map[string]model.Person

	// insertion sequence per event id, to keep ties stable across map
	// iteration order
	seq     map[string]uint64
	nextSeq uint64
}

func NewMemory() *Memory {
	return &Memory{
		tours:     map[string]model.Tour{},
		venues:    map[string]model.Venue{},
		days:      map[string]model.Day{},
		events:    map[string]model.ScheduleEvent{},
		contacts:  map[string]model.Contact{},
		notes:     map[string]model.Note{},
		lodgings:  map[string]model.DayLodging{},
		templates: map[string]model.ScheduleTemplate{},
		groups:    map[string]model.Group{},
		people:    map[string]model.Person{},
		seq:       map[string]uint64{},
	}
}

func (m *Memory) View(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(&memTx{m: m})
}

func (m *Memory) Update(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memTx{m: m})
}

type memTx struct {
	m *Memory
}

// NewID mints "<prefix>_<uuid>" and regenerates on the (practically
// impossible) collision with any existing identifier.
func (t *memTx) NewID(prefix string) string {
	for {
		id := prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
		if !t.used(id) {
			return id
		}
	}
}

func (t *memTx) used(id string) bool {
	m := t.m
	if _, ok := m.tours[id]; ok {
		return true
	}
	if _, ok := m.venues[id]; ok {
		return true
	}
	if _, ok := m.days[id]; ok {
		return true
	}
	if _, ok := m.events[id]; ok {
		return true
	}
	if _, ok := m.contacts[id]; ok {
		return true
	}
	if _, ok := m.notes[id]; ok {
		return true
	}
	if _, ok := m.templates[id]; ok {
		return true
	}
	if _, ok := m.groups[id]; ok {
		return true
	}
	if _, ok := m.people[id]; ok {
		return true
	}
	for _, l := range m.lodgings {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (t *memTx) Tours() ([]model.Tour, error) {
	out := make([]model.Tour, 0, len(t.m.tours))
	for _, v := range t.m.tours {
		out = append(out, v)
	}
	model.SortTours(out)
	return out, nil
}

func (t *memTx) PutTour(v model.Tour) error {
	t.m.tours[v.ID] = v
	return nil
}

func (t *memTx) Venue(id string) (model.Venue, error) {
	v, ok := t.m.venues[id]
	if !ok {
		return model.Venue{}, fmt.Errorf("venue %s: %w", id, ErrNotFound)
	}
	return v, nil
}

func (t *memTx) PutVenue(v model.Venue) error {
	t.m.venues[v.ID] = v
	return nil
}

func (t *memTx) Day(id string) (model.Day, error) {
	d, ok := t.m.days[id]
	if !ok {
		return model.Day{}, fmt.Errorf("day %s: %w", id, ErrNotFound)
	}
	return d, nil
}

func (t *memTx) DaysByTour(tourID string) ([]model.Day, error) {
	var out []model.Day
	for _, d := range t.m.days {
		if d.TourID == tourID {
			out = append(out, d)
		}
	}
	model.SortDays(out)
	return out, nil
}

func (t *memTx) PutDay(d model.Day) error {
	t.m.days[d.ID] = d
	return nil
}

func (t *memTx) Event(id string) (model.ScheduleEvent, error) {
	e, ok := t.m.events[id]
	if !ok {
		return model.ScheduleEvent{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, nil
}

func (t *memTx) EventsByDay(dayID string) ([]model.ScheduleEvent, error) {
	var out []model.ScheduleEvent
	for _, e := range t.m.events {
		if e.DayID == dayID {
			out = append(out, e)
		}
	}
	// order by insertion first so the stable start-time sort breaks ties
	// by creation order rather than map iteration order
	sort.Slice(out, func(i, j int) bool { return t.m.seq[out[i].ID] < t.m.seq[out[j].ID] })
	model.SortEvents(out)
	return out, nil
}

func (t *memTx) PutEvent(e model.ScheduleEvent) error {
	if _, ok := t.m.events[e.ID]; !ok {
		t.m.nextSeq++
		t.m.seq[e.ID] = t.m.nextSeq
	}
	t.m.events[e.ID] = e
	return nil
}

func (t *memTx) DeleteEvent(dayID, id string) (bool, error) {
	e, ok := t.m.events[id]
	if !ok || e.DayID != dayID {
		return false, nil
	}
	delete(t.m.events, id)
	delete(t.m.seq, id)
	return true, nil
}

func (t *memTx) ContactsByDay(dayID string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range t.m.contacts {
		if c.DayID == dayID {
			out = append(out, c)
		}
	}
	model.SortContacts(out)
	return out, nil
}

func (t *memTx) PutContact(c model.Contact) error {
	t.m.contacts[c.ID] = c
	return nil
}

func (t *memTx) Note(dayID, id string) (model.Note, error) {
	n, ok := t.m.notes[id]
	if !ok || n.DayID != dayID {
		return model.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n, nil
}

func (t *memTx) NotesByDay(dayID string) ([]model.Note, error) {
	var out []model.Note
	for _, n := range t.m.notes {
		if n.DayID == dayID {
			out = append(out, n)
		}
	}
	model.SortNotes(out)
	return out, nil
}

func (t *memTx) PutNote(n model.Note) error {
	t.m.notes[n.ID] = n
	return nil
}

func (t *memTx) DeleteNote(dayID, id string) (bool, error) {
	n, ok := t.m.notes[id]
	if !ok || n.DayID != dayID {
		return false, nil
	}
	delete(t.m.notes, id)
	return true, nil
}

func (t *memTx) LodgingByDay(dayID string) (model.DayLodging, error) {
	l, ok := t.m.lodgings[dayID]
	if !ok {
		return model.DayLodging{}, fmt.Errorf("lodging for day %s: %w", dayID, ErrNotFound)
	}
	return l, nil
}

func (t *memTx) PutLodging(l model.DayLodging) error {
	t.m.lodgings[l.DayID] = l
	return nil
}

func (t *memTx) DeleteLodging(dayID string) (bool, error) {
	if _, ok := t.m.lodgings[dayID]; !ok {
		return false, nil
	}
	delete(t.m.lodgings, dayID)
	return true, nil
}

func (t *memTx) FindTemplate(id string) (model.ScheduleTemplate, error) {
	tpl, ok := t.m.templates[id]
	if !ok {
		return model.ScheduleTemplate{}, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return tpl, nil
}

func (t *memTx) TemplatesByTour(tourID string) ([]model.ScheduleTemplate, error) {
	var out []model.ScheduleTemplate
	for _, tpl := range t.m.templates {
		if tpl.TourID == tourID {
			out = append(out, tpl)
		}
	}
	model.SortTemplates(out)
	return out, nil
}

func (t *memTx) PutTemplate(tpl model.ScheduleTemplate) error {
	t.m.templates[tpl.ID] = tpl
	return nil
}

func (t *memTx) DeleteTemplate(tourID, id string) (bool, error) {
	tpl, ok := t.m.templates[id]
	if !ok || tpl.TourID != tourID {
		return false, nil
	}
	delete(t.m.templates, id)
	return true, nil
}

func (t *memTx) FindGroup(id string) (model.Group, error) {
	g, ok := t.m.groups[id]
	if !ok {
		return model.Group{}, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	return g, nil
}

func (t *memTx) GroupsByTour(tourID string) ([]model.Group, error) {
	var out []model.Group
	for _, g := range t.m.groups {
		if g.TourID == tourID {
			out = append(out, g)
		}
	}
	model.SortGroups(out)
	return out, nil
}

func (t *memTx) PutGroup(g model.Group) error {
	t.m.groups[g.ID] = g
	return nil
}

func (t *memTx) DeleteGroup(tourID, id string) (bool, error) {
	g, ok := t.m.groups[id]
	if !ok || g.TourID != tourID {
		return false, nil
	}
	delete(t.m.groups, id)
	return true, nil
}

func (t *memTx) FindPerson(id string) (model.Person, error) {
	p, ok := t.m.people[id]
	if !ok {
		return model.Person{}, fmt.Errorf("person %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (t *memTx) PeopleByTour(tourID string) ([]model.Person, error) {
	var out []model.Person
	for _, p := range t.m.people {
		if p.TourID == tourID {
			out = append(out, p)
		}
	}
	model.SortPeople(out)
	return out, nil
}

func (t *memTx) PutPerson(p model.Person) error {
	t.m.people[p.ID] = p
	return nil
}

func (t *memTx) DeletePerson(tourID, id string) (bool, error) {
	p, ok := t.m.people[id]
	if !ok || p.TourID != tourID {
		return false, nil
	}
	delete(t.m.people, id)
	return true, nil
}
