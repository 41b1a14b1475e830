package model

import "sort"

// Display orderings shared by both store backends. Sorts are stable so that
// records tied on the sort key keep their insertion order.

func SortTours(tours []Tour) {
	sort.SliceStable(tours, func(i, j int) bool { return tours[i].Name < tours[j].Name })
}

func SortDays(days []Day) {
	sort.SliceStable(days, func(i, j int) bool { return days[i].DateISO < days[j].DateISO })
}

// SortEvents orders by startLocal ascending; events without a start sort
// last. "HH:MM" wall-clock strings compare correctly as strings.
func SortEvents(events []ScheduleEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].StartLocal, events[j].StartLocal
		if (a == "") != (b == "") {
			return a != ""
		}
		return a < b
	})
}

func SortContacts(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].Role != contacts[j].Role {
			return contacts[i].Role < contacts[j].Role
		}
		return contacts[i].Name < contacts[j].Name
	})
}

// SortNotes orders newest-edited-first. RFC 3339 UTC timestamps compare
// correctly as strings.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].LastEditedAtISO > notes[j].LastEditedAtISO
	})
}

// SortTemplates orders newest-created-first, like notes.
func SortTemplates(templates []ScheduleTemplate) {
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].CreatedAtISO > templates[j].CreatedAtISO
	})
}

func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
}

func SortPeople(people []Person) {
	sort.SliceStable(people, func(i, j int) bool { return people[i].Name < people[j].Name })
}
