package project

import "time"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EntryOn resolves the participant's entry day. Founders without an entry
// date entered at the deed; other participants default to the day after.
func (p Participant) EntryOn(deed time.Time) time.Time {
	if p.EntryDate != nil && !p.EntryDate.IsZero() {
		return Day(*p.EntryDate)
	}

	if p.IsFounder {
		return Day(deed)
	}

	return Day(deed).AddDate(0, 0, 1)
}

// ActiveOn reports whether the participant had entered by date and had not
// exited yet.
func (p Participant) ActiveOn(date, deed time.Time) bool {
	date = Day(date)
	if p.EntryOn(deed).After(date) {
		return false
	}

	return p.ExitDate == nil || Day(*p.ExitDate).After(date)
}
