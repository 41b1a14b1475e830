package seed

import "daybook/internal/model"

// Demo returns the demo tour used for development and tests: one west-coast
// run with a show day carrying a full schedule, contacts and a note.
func Demo() *Data {
	band := []model.Association{{Type: model.AssocGroup, ID: "g2"}}
	none := []model.Association{}

	return &Data{
		Tours: []model.Tour{
			{ID: "1", Name: "Boxer Brigade", Subtitle: "World Tour: West Coast"},
		},
		Venues: []model.Venue{
			{ID: "v1", Name: "The Kia Forum", Address1: "3900 W Manchester Blvd", City: "Inglewood", State: "CA", Postal: "90305"},
			{ID: "v2", Name: "Bill Graham Civic Auditorium", Address1: "99 Grove St", City: "San Francisco", State: "CA", Postal: "94102"},
		},
		Days: []model.Day{
			{ID: "d1", TourID: "1", DateISO: "2026-01-08", DayType: model.DayTypeOff, City: "Los Angeles", State: "CA", VenueID: "v1", TZ: "America/Los_Angeles"},
			{ID: "d2", TourID: "1", DateISO: "2026-01-09", DayType: model.DayTypeShow, City: "Inglewood", State: "CA", VenueID: "v1", TZ: "America/Los_Angeles"},
			{ID: "d3", TourID: "1", DateISO: "2026-01-10", DayType: model.DayTypeShow, City: "San Francisco", State: "CA", VenueID: "v2", TZ: "America/Los_Angeles"},
		},
		Groups: []model.Group{
			{ID: "g1", TourID: "1", Name: "Artist Party"},
			{ID: "g2", TourID: "1", Name: "Band Party"},
		},
		People: []model.Person{
			{ID: "p1", TourID: "1", Name: "Emily Taylor", RoleTitle: "Photographer", Email: "Emily.Taylor@yabooo.com", Phone: "+44 20 7946 1423", GroupID: "g1", Permission: model.PermissionRead, Connected: true},
			{ID: "p2", TourID: "1", Name: "Frankie Davis", RoleTitle: "Tour Manager", Email: "frankie@theTM.com", Phone: "610-608-1173", GroupID: "g2", Permission: model.PermissionOwner, Connected: true},
		},
		Schedule: []model.ScheduleEvent{
			{ID: "e1", DayID: "d2", Name: "Bus Call for Venue", StartLocal: "06:00", Status: model.StatusDone, Associations: band},
			{ID: "e2", DayID: "d2", Name: "Load In", StartLocal: "07:00", Status: model.StatusTodo, Associations: band},
			{ID: "e3", DayID: "d2", Name: "Sound Check", StartLocal: "16:00", Status: model.StatusTodo, Associations: band},
			{ID: "e4", DayID: "d2", Name: "Doors", StartLocal: "19:00", Status: model.StatusTodo, Associations: none},
			{ID: "e5", DayID: "d2", Name: "BB ON STAGE", StartLocal: "21:00", EndLocal: "22:30", Status: model.StatusTodo, Associations: none},
			{ID: "e6", DayID: "d2", Name: "Load Out", StartLocal: "22:30", Status: model.StatusTodo, Associations: band},
		},
		Contacts: []model.Contact{
			{ID: "c1", DayID: "d2", Name: "Dustin Francis", Role: "Runner", Phone: "(310) 555-0789"},
			{ID: "c2", DayID: "d2", Name: "Nancy Wright", Role: "Local PM", Phone: "(310) 555-1259", Email: "nancy.wright@pmgmail.com"},
		},
		Notes: []model.Note{
			{ID: "n1", DayID: "d2", Title: "Crew Notes", Body: "Our first show today. All crew buses depart at 6:00 AM. Breakfast will be up.", LastEditedBy: "Frankie Davis", LastEditedAtISO: "2026-01-09T18:34:00Z"},
		},
	}
}
