// Package fraisgeneraux spreads the three-year overhead over its yearly
// instalments and keeps the ledger of what each newcomer owes the
// participants who paid before them.
package fraisgeneraux

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

type EventType string

const (
	EventYear1         EventType = "FRAIS_GENERAUX_YEAR_1"
	EventYear2         EventType = "FRAIS_GENERAUX_YEAR_2"
	EventYear3         EventType = "FRAIS_GENERAUX_YEAR_3"
	EventReimbursement EventType = "NEWCOMER_FRAIS_GENERAUX_REIMBURSEMENT"
)

// Year is one yearly instalment of the overhead.
type Year struct {
	Number         int
	Date           time.Time
	OneTimeCosts   float64
	RecurringCosts float64
	Honoraires     float64
	Total          float64
}

// Payment is one participant's share of a yearly instalment.
type Payment struct {
	Participant string
	Year        int
	Amount      float64
	AmountCents int64
	IsFounder   bool
}

// Transfer is the part of a reimbursement owed to one participant.
type Transfer struct {
	ToParticipant string
	Amount        float64
	AmountCents   int64
}

// Reimbursement is what a newcomer pays to each participant already in,
// so that everyone ends up at the same share of Year 1.
type Reimbursement struct {
	Newcomer       string
	EntryDate      time.Time
	Year           int
	Transfers      []Transfer
	TotalPaid      float64
	TotalPaidCents int64 // Sum of the rounded transfers
}

// Event is a dated ledger entry: a yearly instalment or a newcomer
// reimbursement. IDs are derived from the event content.
type Event struct {
	ID   uuid.UUID
	Type EventType
	Date time.Time
	Year int

	// Set on yearly events.
	Breakdown *Year
	Payments  []Payment

	// Set on reimbursement events.
	Newcomer       string
	Transfers      []Transfer
	TotalPaid      float64
	TotalPaidCents int64
	Description    string
}

// Ledger is the whole frais généraux schedule of a project.
type Ledger struct {
	Years           [3]Year
	FounderPayments []Payment
	Reimbursements  []Reimbursement
	// YearPayments holds the Year 2 and Year 3 splits, keyed by year number.
	YearPayments map[int][]Payment
	Events       []Event
}

// Build computes the yearly instalments from the enabled participants,
// charges Year 1 to the founders, chains the newcomer reimbursements and
// splits Years 2 and 3 among whoever is active on their date.
func Build(p project.Project) Ledger {
	enabled := p.Enabled()
	breakdown := calculator.FraisGeneraux(enabled, p.Params)
	deed := project.Day(p.DeedDate)

	l := Ledger{
		Years:        years(breakdown, deed),
		YearPayments: make(map[int][]Payment, 2),
	}

	l.FounderPayments = founderPayments(enabled, l.Years[0])
	l.Reimbursements = reimbursements(enabled, l.Years[0], deed, l.FounderPayments)

	l.Events = append(l.Events, yearEvent(l.Years[0], l.FounderPayments))
	for _, r := range l.Reimbursements {
		l.Events = append(l.Events, reimbursementEvent(r))
	}

	for _, year := range l.Years[1:] {
		payments := yearPayments(enabled, year, deed)
		if len(payments) == 0 {
			continue
		}

		l.YearPayments[year.Number] = payments
		l.Events = append(l.Events, yearEvent(year, payments))
	}

	slices.SortStableFunc(l.Events, func(a, b Event) int { return a.Date.Compare(b.Date) })

	return l
}

func years(b calculator.FraisGenerauxBreakdown, deed time.Time) [3]Year {
	var out [3]Year
	for i := range out {
		out[i] = Year{
			Number:         i + 1,
			Date:           deed.AddDate(i, 0, 0),
			RecurringCosts: b.RecurringYearly.Total,
			Honoraires:     b.HonorairesYearly,
		}
	}

	out[0].OneTimeCosts = b.OneTime.Total

	for i := range out {
		out[i].Total = out[i].OneTimeCosts + out[i].RecurringCosts + out[i].Honoraires
	}

	return out
}

func founderPayments(participants []project.Participant, year Year) []Payment {
	var founders []project.Participant
	for _, p := range participants {
		if p.IsFounder {
			founders = append(founders, p)
		}
	}

	if len(founders) == 0 {
		return nil
	}

	share := year.Total / float64(len(founders))

	out := make([]Payment, 0, len(founders))
	for _, f := range founders {
		out = append(out, payment(f, year.Number, share))
	}

	return out
}

// reimbursements processes newcomers in entry order. Each one brings every
// participant active at their entry down to the new fair share and pays the
// sum of the differences.
func reimbursements(participants []project.Participant, year Year, deed time.Time, initial []Payment) []Reimbursement {
	var newcomers []project.Participant
	for _, p := range participants {
		if !p.IsFounder && p.EntryDate != nil && project.Day(*p.EntryDate).After(deed) {
			newcomers = append(newcomers, p)
		}
	}

	slices.SortStableFunc(newcomers, func(a, b project.Participant) int {
		return a.EntryOn(deed).Compare(b.EntryOn(deed))
	})

	paid := make(map[string]float64, len(participants))
	for _, f := range initial {
		paid[f.Participant] = f.Amount
	}

	var out []Reimbursement

	for _, newcomer := range newcomers {
		entry := newcomer.EntryOn(deed)
		active := activeOn(participants, entry, deed)
		fair := year.Total / float64(len(active))

		r := Reimbursement{
			Newcomer:  newcomer.Name,
			EntryDate: entry,
			Year:      year.Number,
		}

		for _, p := range active {
			if p.Name == newcomer.Name {
				continue
			}

			amount := paid[p.Name] - fair
			paid[p.Name] = fair

			t := Transfer{ToParticipant: p.Name, Amount: amount, AmountCents: cents(amount)}
			r.Transfers = append(r.Transfers, t)
			r.TotalPaid += t.Amount
			r.TotalPaidCents += t.AmountCents
		}

		paid[newcomer.Name] = r.TotalPaid
		out = append(out, r)
	}

	return out
}

func yearPayments(participants []project.Participant, year Year, deed time.Time) []Payment {
	active := activeOn(participants, year.Date, deed)
	if len(active) == 0 {
		return nil
	}

	share := year.Total / float64(len(active))

	out := make([]Payment, 0, len(active))
	for _, p := range active {
		out = append(out, payment(p, year.Number, share))
	}

	return out
}

func activeOn(participants []project.Participant, date, deed time.Time) []project.Participant {
	var out []project.Participant
	for _, p := range participants {
		if p.ActiveOn(date, deed) {
			out = append(out, p)
		}
	}

	return out
}

func payment(p project.Participant, year int, amount float64) Payment {
	return Payment{
		Participant: p.Name,
		Year:        year,
		Amount:      amount,
		AmountCents: cents(amount),
		IsFounder:   p.IsFounder,
	}
}

// cents rounds half away from zero to the nearest cent.
func cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func yearEvent(year Year, payments []Payment) Event {
	return Event{
		ID:        eventID(fmt.Sprintf("frais-generaux-year-%d-%s", year.Number, year.Date.Format(time.DateOnly))),
		Type:      []EventType{EventYear1, EventYear2, EventYear3}[year.Number-1],
		Date:      year.Date,
		Year:      year.Number,
		Breakdown: &year,
		Payments:  payments,
	}
}

func reimbursementEvent(r Reimbursement) Event {
	return Event{
		ID:             eventID(fmt.Sprintf("newcomer-reimbursement-%s-%s", r.Newcomer, r.EntryDate.Format(time.DateOnly))),
		Type:           EventReimbursement,
		Date:           r.EntryDate,
		Year:           r.Year,
		Newcomer:       r.Newcomer,
		Transfers:      r.Transfers,
		TotalPaid:      r.TotalPaid,
		TotalPaidCents: r.TotalPaidCents,
		Description:    fmt.Sprintf("%s reimburses founders for Year %d Frais Généraux overpayment", r.Newcomer, r.Year),
	}
}

func eventID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}
