package appointment

import (
	"slices"
	"time"
)

type Availability struct {
	Date        string
	Timezone    string
	Open        string
	Close       string
	SlotMinutes int
	Slots       []string
	Booked      []string
}

// EmptyAvailability describes a day with no bookable slots.
func (s Schedule) EmptyAvailability(day time.Time) Availability {
	open, close := s.Window(day)
	return Availability{
		Date:        s.DateLabel(day),
		Timezone:    s.TimezoneName(),
		Open:        s.Label(open),
		Close:       s.Label(close),
		SlotMinutes: s.SlotMinutes,
		Slots:       []string{},
		Booked:      []string{},
	}
}

// Availability splits the day's slot labels into free and booked given the
// start instants of existing appointments. A slot is booked when an
// appointment starts on its label; starts off the slot grid are ignored.
func (s Schedule) Availability(day time.Time, starts []time.Time) Availability {
	out := s.EmptyAvailability(day)

	taken := make(map[string]struct{}, len(starts))
	for _, st := range starts {
		taken[s.Label(st)] = struct{}{}
	}

	for _, label := range s.Labels(day) {
		if _, ok := taken[label]; ok {
			out.Booked = append(out.Booked, label)
			continue
		}
		out.Slots = append(out.Slots, label)
	}
	slices.Sort(out.Booked)

	return out
}
