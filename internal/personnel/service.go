// Package personnel is tour-scoped CRUD for people and groups. Group
// membership (Person.GroupID) is a weak reference: deleting a group never
// cascades, the member's groupId simply dangles.
package personnel

import (
	"context"
	"fmt"
	"strings"

	"daybook/internal/model"
	"daybook/internal/store"
)

type Service struct {
	Store store.Store
}

// Roster is the personnel listing for a tour.
type Roster struct {
	Groups []model.Group  `json:"groups"`
	People []model.Person `json:"people"`
}

func (s *Service) List(ctx context.Context, tourID string) (Roster, error) {
	out := Roster{Groups: []model.Group{}, People: []model.Person{}}
	err := s.Store.View(ctx, func(tx store.Tx) error {
		groups, err := tx.GroupsByTour(tourID)
		if err != nil {
			return err
		}
		people, err := tx.PeopleByTour(tourID)
		if err != nil {
			return err
		}
		if groups != nil {
			out.Groups = groups
		}
		if people != nil {
			out.People = people
		}
		return nil
	})
	return out, err
}

// PersonInput is the create shape; any caller-supplied id/tourId is ignored
// by construction.
type PersonInput struct {
	Name       string           `json:"name"`
	RoleTitle  string           `json:"roleTitle"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	GroupID    string           `json:"groupId"`
	Permission model.Permission `json:"permission"`
	Connected  bool             `json:"connected"`
}

func (s *Service) CreatePerson(ctx context.Context, tourID string, in PersonInput) (model.Person, error) {
	var out model.Person
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			return fmt.Errorf("person name required: %w", store.ErrInvalidArgument)
		}
		if in.Permission == "" {
			in.Permission = model.PermissionRead
		}
		if !in.Permission.Valid() {
			return fmt.Errorf("permission %q: %w", in.Permission, store.ErrInvalidArgument)
		}
		out = model.Person{
			ID:         tx.NewID("p"),
			TourID:     tourID,
			Name:       in.Name,
			RoleTitle:  in.RoleTitle,
			Email:      in.Email,
			Phone:      in.Phone,
			GroupID:    in.GroupID,
			Permission: in.Permission,
			Connected:  in.Connected,
		}
		return tx.PutPerson(out)
	})
	return out, err
}

// UpdatePerson applies a partial patch. The patch type has no id/tourId
// fields, so a patch can never move or re-key a record.
func (s *Service) UpdatePerson(ctx context.Context, tourID, personID string, patch model.PersonPatch) (model.Person, error) {
	var out model.Person
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		p, err := tx.FindPerson(personID)
		if err != nil {
			return err
		}
		if p.TourID != tourID {
			return fmt.Errorf("person %s: %w", personID, store.ErrNotFound)
		}
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return fmt.Errorf("person name required: %w", store.ErrInvalidArgument)
			}
			p.Name = *patch.Name
		}
		if patch.RoleTitle != nil {
			p.RoleTitle = *patch.RoleTitle
		}
		if patch.Email != nil {
			p.Email = *patch.Email
		}
		if patch.Phone != nil {
			p.Phone = *patch.Phone
		}
		if patch.GroupID != nil {
			p.GroupID = *patch.GroupID
		}
		if patch.Permission != nil {
			if !patch.Permission.Valid() {
				return fmt.Errorf("permission %q: %w", *patch.Permission, store.ErrInvalidArgument)
			}
			p.Permission = *patch.Permission
		}
		if patch.Connected != nil {
			p.Connected = *patch.Connected
		}
		out = p
		return tx.PutPerson(p)
	})
	return out, err
}

// DeletePerson is idempotent: deleting an absent record reports false, not
// an error.
func (s *Service) DeletePerson(ctx context.Context, tourID, personID string) (bool, error) {
	var ok bool
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		ok, err = tx.DeletePerson(tourID, personID)
		return err
	})
	return ok, err
}

// GroupInput is the create shape for groups.
type GroupInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Service) CreateGroup(ctx context.Context, tourID string, in GroupInput) (model.Group, error) {
	var out model.Group
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			return fmt.Errorf("group name required: %w", store.ErrInvalidArgument)
		}
		out = model.Group{
			ID:     tx.NewID("g"),
			TourID: tourID,
			Name:   in.Name,
			Color:  in.Color,
		}
		return tx.PutGroup(out)
	})
	return out, err
}

func (s *Service) UpdateGroup(ctx context.Context, tourID, groupID string, patch model.GroupPatch) (model.Group, error) {
	var out model.Group
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		g, err := tx.FindGroup(groupID)
		if err != nil {
			return err
		}
		if g.TourID != tourID {
			return fmt.Errorf("group %s: %w", groupID, store.ErrNotFound)
		}
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return fmt.Errorf("group name required: %w", store.ErrInvalidArgument)
			}
			g.Name = *patch.Name
		}
		if patch.Color != nil {
			g.Color = *patch.Color
		}
		out = g
		return tx.PutGroup(g)
	})
	return out, err
}

// DeleteGroup removes the group only; members referencing it keep their
// groupId, which from then on dangles.
func (s *Service) DeleteGroup(ctx context.Context, tourID, groupID string) (bool, error) {
	var ok bool
	err := s.Store.Update(ctx, func(tx store.Tx) error {
		var err error
		ok, err = tx.DeleteGroup(tourID, groupID)
		return err
	})
	return ok, err
}
