// Package project holds the participant, lot and parameter model shared by
// every engine computation, plus the invariant checks run before a project
// is accepted.
package project

import (
	"time"

	"github.com/MrJamesThe3rd/castor/internal/portage"
)

// CoproName is the seller name used for purchases from the copropriété.
const CoproName = "Copropriété"

// Participant is a co-owner of the project. Identity is by Name.
type Participant struct {
	Name                 string
	CapitalApporte       float64 // Cash available at signing
	RegistrationFeesRate float64
	InterestRate         float64
	DurationYears        int

	UseTwoLoans           bool
	Loan2DelayYears       *int // Defaults to 2
	CapitalForLoan2       float64
	Loan2RenovationAmount *float64

	IsFounder bool
	EntryDate *time.Time
	ExitDate  *time.Time
	Lots      []Lot
	Purchase  Purchase

	UnitID   int
	Surface  float64 // Total across owned lots
	Quantity int

	ParachevementsPerM2 *float64
	CascoSqm            *float64
	ParachevementsSqm   *float64

	Disabled bool
}

// Lot is a unit owned by a participant.
type Lot struct {
	ID                       int
	Surface                  float64
	UnitID                   int
	IsPortage                bool // Held pending resale
	AcquiredDate             time.Time
	OriginalPrice            float64
	OriginalNotaryFees       float64
	OriginalConstructionCost float64
	AllocatedSurface         float64
	FounderPaysCasco         bool
	FounderPaysParachevement bool
	SoldDate                 *time.Time
	SoldTo                   string
	SalePrice                float64
}

// CoproLot is a lot held collectively by the copropriété.
type CoproLot struct {
	ID           int
	Surface      float64
	AcquiredDate time.Time
	SoldDate     *time.Time
	SoldTo       string
	SalePrice    float64
}

type ExpenseLineItem struct {
	Label  string
	Amount float64
}

type ExpenseCategories struct {
	Conservatoire        []ExpenseLineItem
	HabitabiliteSommaire []ExpenseLineItem
	PremierTravaux       []ExpenseLineItem
}

// Total sums every line of every category.
func (c *ExpenseCategories) Total() float64 {
	if c == nil {
		return 0
	}

	var total float64
	for _, group := range [][]ExpenseLineItem{c.Conservatoire, c.HabitabiliteSommaire, c.PremierTravaux} {
		for _, item := range group {
			total += item.Amount
		}
	}

	return total
}

// TravauxCommunsItem is a common work priced by surface. Amount is kept for
// items that predate sqm pricing.
type TravauxCommunsItem struct {
	Label                    string
	Sqm                      float64
	CascoPricePerSqm         float64
	ParachevementPricePerSqm float64
	Amount                   *float64
}

// Cost returns the item amount, CASCO and parachèvement included.
func (i TravauxCommunsItem) Cost() float64 {
	if i.Amount != nil && i.Sqm == 0 {
		return *i.Amount
	}

	return i.Sqm*i.CascoPricePerSqm + i.Sqm*i.ParachevementPricePerSqm
}

// CascoCost returns the CASCO part only.
func (i TravauxCommunsItem) CascoCost() float64 {
	return i.Sqm * i.CascoPricePerSqm
}

type TravauxCommuns struct {
	Enabled bool
	Items   []TravauxCommunsItem
}

// Params are the static cost inputs of a project.
type Params struct {
	TotalPurchase                  float64
	MesuresConservatoires          float64
	Demolition                     float64
	Infrastructures                float64
	EtudesPreparatoires            float64
	FraisEtudesPreparatoires       float64
	FraisGeneraux3Ans              float64
	BatimentFondationConservatoire float64
	BatimentFondationComplete      float64
	BatimentCoproConservatoire     float64
	GlobalCascoPerM2               float64
	CascoTVARate                   float64
	ExpenseCategories              *ExpenseCategories
	TravauxCommuns                 *TravauxCommuns
	MaxTotalLots                   int
	RenovationStartDate            *time.Time
}

// BaseTravauxCommuns sums the fixed building works.
func (p Params) BaseTravauxCommuns() float64 {
	return p.BatimentFondationConservatoire + p.BatimentFondationComplete + p.BatimentCoproConservatoire
}

// TotalTravauxCommuns adds the enabled custom items to the fixed building works.
func (p Params) TotalTravauxCommuns() float64 {
	total := p.BaseTravauxCommuns()

	if p.TravauxCommuns != nil && p.TravauxCommuns.Enabled {
		for _, item := range p.TravauxCommuns.Items {
			total += item.Cost()
		}
	}

	return total
}

// TravauxCommunsCasco is the CASCO part of the common works, fixed works included.
func (p Params) TravauxCommunsCasco() float64 {
	total := p.BaseTravauxCommuns()

	if p.TravauxCommuns != nil && p.TravauxCommuns.Enabled {
		for _, item := range p.TravauxCommuns.Items {
			total += item.CascoCost()
		}
	}

	return total
}

// UnitCost holds reference CASCO and parachèvement amounts for a unit.
type UnitCost struct {
	Casco          float64
	Parachevements float64
}

type UnitDetails map[int]UnitCost

// Project is the complete input of every engine computation.
type Project struct {
	Participants []Participant
	Params       Params
	DeedDate     time.Time
	Formula      portage.Formula
	UnitDetails  UnitDetails
	CoproLots    []CoproLot
}

// Enabled returns the participants taking part in calculations.
func (p Project) Enabled() []Participant {
	enabled := make([]Participant, 0, len(p.Participants))
	for _, participant := range p.Participants {
		if !participant.Disabled {
			enabled = append(enabled, participant)
		}
	}

	return enabled
}

// Find returns the index of the named participant, or -1.
func (p Project) Find(name string) int {
	for i, participant := range p.Participants {
		if participant.Name == name {
			return i
		}
	}

	return -1
}

// Units returns the legacy quantity, counting unset as one lot.
func (p Participant) Units() int {
	if p.Quantity <= 0 {
		return 1
	}

	return p.Quantity
}

// Lot returns the owned lot with the given id.
func (p Participant) Lot(id int) (Lot, bool) {
	for _, l := range p.Lots {
		if l.ID == id {
			return l, true
		}
	}

	return Lot{}, false
}

// Loan2Delay returns the configured Loan 2 delay in years.
func (p Participant) Loan2Delay() int {
	if p.Loan2DelayYears == nil {
		return 2
	}

	return *p.Loan2DelayYears
}
