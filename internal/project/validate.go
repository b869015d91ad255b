package project

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

const surfaceTolerance = 1e-6

// Validate checks the invariants the engine relies on but never enforces
// itself. It returns one message per violation, or nil. Lot IDs are keyed
// per seller, so they only need to be unique within a participant's lots and
// within the copropriété inventory.
func Validate(p Project) []string {
	var problems []string

	seen := make(map[string]bool, len(p.Participants))
	for _, participant := range p.Participants {
		if seen[participant.Name] {
			problems = append(problems, fmt.Sprintf("participant name %q is used more than once", participant.Name))
		}

		seen[participant.Name] = true

		if !participant.IsFounder && participant.EntryDate == nil {
			problems = append(problems, fmt.Sprintf("participant %q is not a founder and has no entry date", participant.Name))
		}

		if len(participant.Lots) == 0 {
			continue
		}

		var lotSurface float64

		lotIDs := make(map[int]bool, len(participant.Lots))
		for _, l := range participant.Lots {
			lotSurface += l.Surface

			if lotIDs[l.ID] {
				problems = append(problems, fmt.Sprintf("participant %q owns lot %d more than once", participant.Name, l.ID))
			}

			lotIDs[l.ID] = true
		}

		if math.Abs(lotSurface-participant.Surface) > surfaceTolerance {
			problems = append(problems, fmt.Sprintf(
				"participant %q has surface %v but owns lots totalling %v",
				participant.Name, participant.Surface, lotSurface,
			))
		}
	}

	coproIDs := make(map[int]bool, len(p.CoproLots))
	for _, l := range p.CoproLots {
		if coproIDs[l.ID] {
			problems = append(problems, fmt.Sprintf("copropriété lot %d is listed more than once", l.ID))
		}

		coproIDs[l.ID] = true
	}

	problems = append(problems, SoldDateProblems(p)...)

	return problems
}

// SoldDateProblems checks that every portage purchase points at an existing
// seller lot whose sold date is the buyer's entry date.
func SoldDateProblems(p Project) []string {
	var problems []string

	for _, buyer := range p.Participants {
		purchase, ok := buyer.PortageFrom()
		if !ok {
			continue
		}

		idx := p.Find(purchase.Seller)
		if idx < 0 {
			problems = append(problems, fmt.Sprintf("buyer %q references non-existent seller %q", buyer.Name, purchase.Seller))
			continue
		}

		lot, found := p.Participants[idx].Lot(purchase.Lot)
		if !found {
			problems = append(problems, fmt.Sprintf(
				"seller %q does not have lot %d that buyer %q is trying to purchase",
				purchase.Seller, purchase.Lot, buyer.Name,
			))

			continue
		}

		if lot.SoldDate == nil {
			problems = append(problems, fmt.Sprintf(
				"lot %d from %q has no sold date but is being purchased by %q",
				purchase.Lot, purchase.Seller, buyer.Name,
			))

			continue
		}

		if !Day(*lot.SoldDate).Equal(buyer.EntryOn(p.DeedDate)) {
			problems = append(problems, fmt.Sprintf(
				"lot %d sold date %s does not match buyer %q entry date %s",
				purchase.Lot, Day(*lot.SoldDate).Format("2006-01-02"),
				buyer.Name, buyer.EntryOn(p.DeedDate).Format("2006-01-02"),
			))
		}
	}

	return problems
}

// SyncSoldDates returns a copy of the participants where each seller lot
// bought through a portage purchase carries the buyer's entry date and name.
func SyncSoldDates(participants []Participant, deed time.Time) []Participant {
	synced := make([]Participant, len(participants))
	for i, participant := range participants {
		synced[i] = participant
		synced[i].Lots = append([]Lot(nil), participant.Lots...)
	}

	byName := make(map[string]int, len(synced))
	for i, participant := range synced {
		byName[participant.Name] = i
	}

	for _, buyer := range participants {
		purchase, ok := buyer.PortageFrom()
		if !ok {
			continue
		}

		idx, found := byName[purchase.Seller]
		if !found {
			slog.Warn("seller not found for buyer", "seller", purchase.Seller, "buyer", buyer.Name)
			continue
		}

		seller := &synced[idx]
		if len(seller.Lots) == 0 {
			slog.Warn("seller has no lots owned", "seller", purchase.Seller)
			continue
		}

		for j := range seller.Lots {
			if seller.Lots[j].ID != purchase.Lot {
				continue
			}

			soldOn := buyer.EntryOn(deed)
			seller.Lots[j].SoldDate = &soldOn
			seller.Lots[j].SoldTo = buyer.Name
		}
	}

	return synced
}

// TwoLoanErrors lists the problems of a two-loan financing setup.
type TwoLoanErrors struct {
	RenovationAmount string
	LoanDelay        string
}

func (e TwoLoanErrors) Empty() bool {
	return e.RenovationAmount == "" && e.LoanDelay == ""
}

// ValidateTwoLoans checks the Loan 2 override against the computed personal
// renovation cost and checks that Loan 2 keeps at least one year.
func ValidateTwoLoans(p Participant, personalRenovationCost float64) TwoLoanErrors {
	var errs TwoLoanErrors
	if !p.UseTwoLoans {
		return errs
	}

	if p.Loan2RenovationAmount != nil {
		amount := *p.Loan2RenovationAmount
		if amount > personalRenovationCost {
			errs.RenovationAmount = fmt.Sprintf(
				"construction amount %.2f exceeds the computed cost %.2f", amount, personalRenovationCost,
			)
		}

		if amount < 0 {
			errs.RenovationAmount = "construction amount cannot be negative"
		}
	}

	delay := p.Loan2Delay()
	if delay >= p.DurationYears {
		errs.LoanDelay = fmt.Sprintf("loan 2 delay (%d years) must be shorter than the total duration (%d years)", delay, p.DurationYears)
	}

	if remaining := p.DurationYears - delay; remaining < 1 {
		errs.LoanDelay = fmt.Sprintf("resulting loan 2 duration (%d years) must be at least 1 year", remaining)
	}

	return errs
}
