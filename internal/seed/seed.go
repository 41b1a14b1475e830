// Package seed loads initial data into a store: either the built-in demo
// tour or a YAML file with the same collections.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"daybook/internal/model"
	"daybook/internal/store"
)

// Data is the full set of collections a seed can provide.
type Data struct {
	Tours    []model.Tour          `yaml:"tours"`
	Venues   []model.Venue         `yaml:"venues"`
	Days     []model.Day           `yaml:"days"`
	Groups   []model.Group         `yaml:"groups"`
	People   []model.Person        `yaml:"people"`
	Schedule []model.ScheduleEvent `yaml:"schedule"`
	Contacts []model.Contact       `yaml:"contacts"`
	Notes    []model.Note          `yaml:"notes"`
	Lodgings []model.DayLodging    `yaml:"lodgings"`

	Templates []model.ScheduleTemplate `yaml:"scheduleTemplates"`
}

// LoadFile reads a YAML seed file.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return &d, nil
}

// Apply inserts all seed records in one critical section. Records missing an
// id get one minted; everything is validated only for day/tour linkage, the
// seed is trusted data.
func Apply(ctx context.Context, st store.Store, d *Data) error {
	return st.Update(ctx, func(tx store.Tx) error {
		for _, t := range d.Tours {
			if t.ID == "" {
				t.ID = tx.NewID("t")
			}
			if err := tx.PutTour(t); err != nil {
				return err
			}
		}
		for _, v := range d.Venues {
			if v.ID == "" {
				v.ID = tx.NewID("v")
			}
			if err := tx.PutVenue(v); err != nil {
				return err
			}
		}
		for _, day := range d.Days {
			if day.ID == "" {
				day.ID = tx.NewID("d")
			}
			if err := tx.PutDay(day); err != nil {
				return err
			}
		}
		for _, g := range d.Groups {
			if g.ID == "" {
				g.ID = tx.NewID("g")
			}
			if err := tx.PutGroup(g); err != nil {
				return err
			}
		}
		for _, p := range d.People {
			if p.ID == "" {
				p.ID = tx.NewID("p")
			}
			if err := tx.PutPerson(p); err != nil {
				return err
			}
		}
		for _, e := range d.Schedule {
			if e.ID == "" {
				e.ID = tx.NewID("e")
			}
			if e.Associations == nil {
				e.Associations = []model.Association{}
			}
			if e.Status == "" {
				e.Status = model.StatusTodo
			}
			if err := tx.PutEvent(e); err != nil {
				return err
			}
		}
		for _, c := range d.Contacts {
			if c.ID == "" {
				c.ID = tx.NewID("c")
			}
			if err := tx.PutContact(c); err != nil {
				return err
			}
		}
		for _, n := range d.Notes {
			if n.ID == "" {
				n.ID = tx.NewID("n")
			}
			if err := tx.PutNote(n); err != nil {
				return err
			}
		}
		for _, tpl := range d.Templates {
			if tpl.ID == "" {
				tpl.ID = tx.NewID("tpl")
			}
			if tpl.Events == nil {
				tpl.Events = []model.TemplateEvent{}
			}
			if err := tx.PutTemplate(tpl); err != nil {
				return err
			}
		}
		for _, l := range d.Lodgings {
			if l.ID == "" {
				l.ID = tx.NewID("l")
			}
			if l.Guests == nil {
				l.Guests = []model.LodgingGuest{}
			}
			if err := tx.PutLodging(l); err != nil {
				return err
			}
		}
		return nil
	})
}
