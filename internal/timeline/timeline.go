// Package timeline turns participant entries and purchases into dated
// snapshots, each carrying the cash transfer the event caused.
package timeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

var ErrSellerLotNotFound = errors.New("seller lot not found")

type TransactionType string

const (
	TypePortageSale     TransactionType = "portage_sale"
	TypePortagePurchase TransactionType = "portage_purchase"
	TypeCoproSale       TransactionType = "copro_sale"
)

// Delta is the change in a participant's position. Negative means cash received.
type Delta struct {
	TotalCost  float64
	LoanNeeded float64
	Reason     string
}

// Transaction is the sale or purchase that moved a participant at a date.
type Transaction struct {
	Type          TransactionType
	Seller        string
	Buyer         string
	LotPrice      float64
	Indexation    float64
	CarryingCosts float64
	Delta         Delta
}

// Snapshot is a participant's position at an event date.
type Snapshot struct {
	Date             time.Time
	ParticipantName  string
	ParticipantIndex int
	TotalCost        float64
	LoanNeeded       float64
	MonthlyPayment   float64
	IsT0             bool
	ColorZone        int
	Transaction      *Transaction

	ShowFinancingDetails bool

	UseTwoLoans         bool
	Loan1MonthlyPayment float64
	Loan2MonthlyPayment float64
}

// Timeline holds the event dates in ascending order and, per participant,
// the snapshots in date order.
type Timeline struct {
	Dates     []time.Time
	Snapshots map[string][]Snapshot
}

// EventDates returns the distinct entry days of the enabled participants.
func EventDates(p project.Project) []time.Time {
	var dates []time.Time
	for _, participant := range p.Participants {
		if participant.Disabled {
			continue
		}

		entry := participant.EntryOn(p.DeedDate)
		if !slices.ContainsFunc(dates, entry.Equal) {
			dates = append(dates, entry)
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	return dates
}

// Generate walks the event dates in order. The first date gives every
// founder an initial snapshot; each later date gives a snapshot to the
// joiners and to whoever their purchase affects.
func Generate(p project.Project, res calculator.Results) (Timeline, error) {
	g := &generator{
		project:  p,
		results:  res,
		previous: make(map[string]Snapshot),
		timeline: Timeline{
			Dates:     EventDates(p),
			Snapshots: make(map[string][]Snapshot),
		},
	}

	for idx, date := range g.timeline.Dates {
		if err := g.step(idx, date); err != nil {
			return Timeline{}, fmt.Errorf("processing %s: %w", date.Format(time.DateOnly), err)
		}
	}

	return g.timeline, nil
}

type generator struct {
	project  project.Project
	results  calculator.Results
	previous map[string]Snapshot
	timeline Timeline
}

func (g *generator) step(idx int, date time.Time) error {
	joiners := g.joiners(date)

	var coproBuyers []project.Participant
	for _, j := range joiners {
		if j.BuysFromCopro() {
			coproBuyers = append(coproBuyers, j)
		}
	}

	for _, i := range g.affected(idx, date, joiners) {
		if i >= len(g.results.Participants) {
			continue
		}

		participant := g.project.Participants[i]
		joined := slices.ContainsFunc(joiners, func(j project.Participant) bool { return j.Name == participant.Name })
		_, portageBuyer := participant.PortageFrom()
		portageBuyer = portageBuyer && joined
		coproBuyer := joined && participant.BuysFromCopro()

		var tx *Transaction

		switch buyer := g.buyerOf(participant.Name, joiners); {
		case buyer != nil:
			sale, err := g.portageSale(participant, *buyer)
			if err != nil {
				return err
			}

			tx = &sale
		case portageBuyer:
			seller := project.SellerName(participant.Purchase)
			tx = &Transaction{
				Type:   TypePortagePurchase,
				Seller: seller,
				Buyer:  participant.Name,
				Delta:  Delta{Reason: fmt.Sprintf("Bought portage lot from %s", seller)},
			}
		case len(coproBuyers) > 0 && !coproBuyer:
			if _, ok := g.previous[participant.Name]; ok {
				tx = g.coproCredit(participant, coproBuyers)
			}
		}

		g.record(idx, date, i, tx, idx == 0 || portageBuyer || coproBuyer)
	}

	return nil
}

func (g *generator) joiners(date time.Time) []project.Participant {
	var out []project.Participant
	for _, participant := range g.project.Participants {
		if !participant.Disabled && participant.EntryOn(g.project.DeedDate).Equal(date) {
			out = append(out, participant)
		}
	}

	return out
}

// affected returns participant indexes in order of first appearance.
func (g *generator) affected(idx int, date time.Time, joiners []project.Participant) []int {
	var out []int

	add := func(name string) {
		i := g.project.Find(name)
		if i >= 0 && !slices.Contains(out, i) {
			out = append(out, i)
		}
	}

	if idx == 0 {
		for _, j := range joiners {
			if j.IsFounder {
				add(j.Name)
			}
		}

		return out
	}

	for _, j := range joiners {
		add(j.Name)

		switch purchase := j.Purchase.(type) {
		case project.CoproPurchase:
			for _, other := range g.project.Participants {
				if !other.Disabled && other.EntryOn(g.project.DeedDate).Before(date) {
					add(other.Name)
				}
			}
		case project.PortagePurchase:
			add(purchase.Seller)
		}
	}

	return out
}

func (g *generator) buyerOf(seller string, joiners []project.Participant) *project.Participant {
	for i, j := range joiners {
		if purchase, ok := j.PortageFrom(); ok && purchase.Seller == seller {
			return &joiners[i]
		}
	}

	return nil
}

// portageSale prices the lot from its original costs, carried by the seller
// from acquisition until the buyer's entry.
func (g *generator) portageSale(seller, buyer project.Participant) (Transaction, error) {
	purchase, _ := buyer.PortageFrom()

	lot, ok := seller.Lot(purchase.Lot)
	if !ok {
		return Transaction{}, fmt.Errorf("seller %s has no lot with ID %d: %w", seller.Name, purchase.Lot, ErrSellerLotNotFound)
	}

	acquired := lot.AcquiredDate
	if acquired.IsZero() {
		acquired = seller.EntryOn(g.project.DeedDate)
	}

	years := portage.YearsHeld(acquired, buyer.EntryOn(g.project.DeedDate))
	base := lot.OriginalPrice + lot.OriginalNotaryFees + lot.OriginalConstructionCost
	carrying := portage.CarryingCosts(base, seller.CapitalApporte, years*12, seller.InterestRate)
	price := portage.PriceLot(lot.OriginalPrice, lot.OriginalNotaryFees, lot.OriginalConstructionCost, years, g.project.Formula, carrying, 0)

	return Transaction{
		Type:          TypePortageSale,
		Seller:        seller.Name,
		Buyer:         buyer.Name,
		LotPrice:      price.TotalPrice,
		Indexation:    price.Indexation,
		CarryingCosts: price.CarryingCostRecovery,
		Delta: Delta{
			TotalCost:  -price.TotalPrice,
			LoanNeeded: -price.TotalPrice,
			Reason:     fmt.Sprintf("Sold portage lot to %s", buyer.Name),
		},
	}, nil
}

// coproCredit aggregates every copropriété sale of the date into one transaction.
func (g *generator) coproCredit(participant project.Participant, buyers []project.Participant) *Transaction {
	var credit float64
	names := make([]string, 0, len(buyers))

	for _, buyer := range buyers {
		credit += Redistribute(g.project, g.results, buyer).Credit(participant.Name)
		names = append(names, buyer.Name)
	}

	reason := fmt.Sprintf("%s joined (copro sale)", names[0])
	if len(names) > 1 {
		reason = fmt.Sprintf("%s joined (copro sale, total)", strings.Join(names, ", "))
	}

	tx := &Transaction{
		Type:  TypeCoproSale,
		Delta: Delta{TotalCost: -credit, LoanNeeded: -credit, Reason: reason},
	}

	if len(buyers) == 1 {
		tx.Buyer = buyers[0].Name
	}

	return tx
}

func (g *generator) record(idx int, date time.Time, i int, tx *Transaction, showFinancing bool) {
	participant := g.project.Participants[i]
	breakdown := g.results.Participants[i]

	s := Snapshot{
		Date:                 date,
		ParticipantName:      participant.Name,
		ParticipantIndex:     i,
		TotalCost:            breakdown.TotalCost,
		LoanNeeded:           breakdown.LoanNeeded,
		MonthlyPayment:       breakdown.MonthlyPayment,
		IsT0:                 idx == 0 && participant.IsFounder,
		ColorZone:            idx,
		Transaction:          tx,
		ShowFinancingDetails: showFinancing,
	}

	if breakdown.TwoLoans != nil {
		s.UseTwoLoans = true
		s.Loan1MonthlyPayment = breakdown.TwoLoans.Loan1MonthlyPayment
		s.Loan2MonthlyPayment = breakdown.TwoLoans.Loan2MonthlyPayment
	}

	g.timeline.Snapshots[participant.Name] = append(g.timeline.Snapshots[participant.Name], s)
	g.previous[participant.Name] = s
}
