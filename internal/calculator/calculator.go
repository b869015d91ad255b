// Package calculator computes the per-participant cost and financing
// breakdown of a project and the aggregate totals.
package calculator

import (
	"log/slog"

	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

const (
	// NotaryFeePerLot is the fixed notary fee charged per lot.
	NotaryFeePerLot = 1000.0
	// DefaultParachevementsPerM2 applies when neither the participant nor the
	// unit details give a rate.
	DefaultParachevementsPerM2 = 500.0
)

// ParticipantResult is the derived breakdown of one participant. Disabled
// participants keep their slot with zero amounts.
type ParticipantResult struct {
	Name     string
	Enabled  bool
	Quantity int

	PricePerM2             float64
	PurchaseShare          float64
	DroitEnregistrements   float64
	FraisNotaireFixe       float64
	Casco                  float64
	Parachevements         float64
	PersonalRenovationCost float64
	ConstructionCost       float64
	ConstructionPerUnit    float64
	TravauxCommunsPerUnit  float64
	SharedCosts            float64
	TotalCost              float64

	LoanNeeded     float64
	FinancingRatio float64
	MonthlyPayment float64
	TotalRepayment float64
	TotalInterest  float64

	// TwoLoans is set for participants financing with two loans.
	TwoLoans *TwoLoans
}

type Totals struct {
	Purchase              float64
	DroitEnregistrements  float64
	Construction          float64
	Shared                float64
	TravauxCommuns        float64
	TravauxCommunsPerUnit float64
	Total                 float64
	CapitalTotal          float64
	LoansNeeded           float64
	AverageLoan           float64
	AverageCapital        float64
}

// Results is the full breakdown of a project. Participants is index-aligned
// with the project's participants.
type Results struct {
	TotalSurface    float64
	PricePerM2      float64
	SharedCosts     float64
	SharedPerPerson float64
	FraisGeneraux   FraisGenerauxBreakdown
	Participants    []ParticipantResult
	Totals          Totals
}

// Participant returns the result of the named participant.
func (r Results) Participant(name string) (ParticipantResult, bool) {
	for _, p := range r.Participants {
		if p.Name == name {
			return p, true
		}
	}

	return ParticipantResult{}, false
}

// Calculate computes the breakdown of every participant. It never fails:
// degenerate inputs produce zero amounts and a warning.
func Calculate(p project.Project) Results {
	enabled := p.Enabled()

	var totalSurface float64
	for _, participant := range enabled {
		totalSurface += participant.Surface
	}

	var pricePerM2 float64
	if totalSurface > 0 {
		pricePerM2 = p.Params.TotalPurchase / totalSurface
	} else {
		slog.Warn("total surface is zero, using a zero price per m2", "participants", len(enabled))
	}

	fg := FraisGeneraux(enabled, p.Params)
	shared := sharedCosts(p.Params, fg.Total)

	count := float64(max(1, len(enabled)))
	sharedPerPerson := shared / count
	travauxCommunsPerUnit := p.Params.TotalTravauxCommuns() / count

	c := &calc{
		project:               p,
		pricePerM2:            pricePerM2,
		sharedPerPerson:       sharedPerPerson,
		travauxCommunsPerUnit: travauxCommunsPerUnit,
	}

	res := Results{
		TotalSurface:    totalSurface,
		PricePerM2:      pricePerM2,
		SharedCosts:     shared,
		SharedPerPerson: sharedPerPerson,
		FraisGeneraux:   fg,
		Participants:    make([]ParticipantResult, len(p.Participants)),
	}

	for i, participant := range p.Participants {
		res.Participants[i] = c.participant(participant)
	}

	res.Totals = totals(p.Params, enabled, res, travauxCommunsPerUnit)

	return res
}

func sharedCosts(params project.Params, fraisGeneraux float64) float64 {
	if params.ExpenseCategories != nil {
		return params.ExpenseCategories.Total() + fraisGeneraux
	}

	return params.MesuresConservatoires +
		params.Demolition +
		params.Infrastructures +
		params.EtudesPreparatoires +
		params.FraisEtudesPreparatoires +
		fraisGeneraux
}

type calc struct {
	project               project.Project
	pricePerM2            float64
	sharedPerPerson       float64
	travauxCommunsPerUnit float64
}

func (c *calc) participant(p project.Participant) ParticipantResult {
	if p.Disabled {
		return ParticipantResult{Name: p.Name, Quantity: p.Units(), PricePerM2: c.pricePerM2}
	}

	quantity := p.Units()
	casco, parachevements := c.renovation(p)

	r := ParticipantResult{
		Name:                  p.Name,
		Enabled:               true,
		Quantity:              quantity,
		PricePerM2:            c.pricePerM2,
		PurchaseShare:         c.purchaseShare(p),
		FraisNotaireFixe:      NotaryFeePerLot * float64(quantity),
		Casco:                 casco,
		Parachevements:        parachevements,
		TravauxCommunsPerUnit: c.travauxCommunsPerUnit,
		SharedCosts:           c.sharedPerPerson,
	}

	r.DroitEnregistrements = r.PurchaseShare * p.RegistrationFeesRate / 100
	r.PersonalRenovationCost = casco + parachevements
	r.ConstructionCost = r.PersonalRenovationCost + c.travauxCommunsPerUnit*float64(quantity)
	r.ConstructionPerUnit = r.ConstructionCost / float64(quantity)
	r.TotalCost = r.PurchaseShare + r.DroitEnregistrements + r.FraisNotaireFixe + r.ConstructionCost + r.SharedCosts

	if p.UseTwoLoans {
		loans := TwoLoanFinancing(
			r.PurchaseShare, r.DroitEnregistrements, r.FraisNotaireFixe, r.SharedCosts, r.PersonalRenovationCost, p,
		)

		r.TwoLoans = &loans
		r.LoanNeeded = loans.Loan1Amount + loans.Loan2Amount
		r.MonthlyPayment = loans.Loan1MonthlyPayment
		r.TotalRepayment = loans.Loan1MonthlyPayment*float64(p.DurationYears*12) +
			loans.Loan2MonthlyPayment*float64(loans.Loan2DurationYears*12)
		r.TotalInterest = loans.TotalInterest
	} else {
		r.LoanNeeded = r.TotalCost - p.CapitalApporte
		r.MonthlyPayment = MonthlyPayment(r.LoanNeeded, p.InterestRate, p.DurationYears)
		r.TotalRepayment = r.MonthlyPayment * float64(p.DurationYears*12)
		r.TotalInterest = TotalInterest(r.MonthlyPayment, p.DurationYears, r.LoanNeeded)
	}

	r.FinancingRatio = FinancingRatio(r.LoanNeeded, r.TotalCost)

	return r
}

// renovation returns the CASCO (VAT included) and parachèvement costs. A
// portage buyer does not pay what the founder already paid on the lot.
func (c *calc) renovation(p project.Participant) (casco, parachevements float64) {
	params := c.project.Params

	cascoSqm := p.Surface
	if p.CascoSqm != nil {
		cascoSqm = *p.CascoSqm
	}

	parachevementsSqm := p.Surface
	if p.ParachevementsSqm != nil {
		parachevementsSqm = *p.ParachevementsSqm
	}

	casco = cascoSqm * params.GlobalCascoPerM2
	if params.CascoTVARate > 0 {
		casco *= 1 + params.CascoTVARate/100
	}

	unit, hasUnit := c.project.UnitDetails[p.UnitID]

	switch {
	case p.ParachevementsPerM2 != nil:
		parachevements = parachevementsSqm * *p.ParachevementsPerM2
	case hasUnit && p.Surface > 0:
		parachevements = parachevementsSqm * unit.Parachevements / p.Surface
	default:
		parachevements = parachevementsSqm * DefaultParachevementsPerM2
	}

	if purchase, ok := p.PortageFrom(); ok {
		if lot, found := c.portageLot(purchase.Lot); found {
			if lot.FounderPaysCasco {
				casco = 0
			}

			if lot.FounderPaysParachevement {
				parachevements = 0
			}
		}
	}

	return casco, parachevements
}

func (c *calc) portageLot(id int) (project.Lot, bool) {
	for _, seller := range c.project.Participants {
		for _, lot := range seller.Lots {
			if lot.ID == id && lot.IsPortage {
				return lot, true
			}
		}
	}

	return project.Lot{}, false
}

func (c *calc) purchaseShare(p project.Participant) float64 {
	fallback := p.Surface * c.pricePerM2
	if price, ok := storedPrice(p); ok {
		fallback = price
	}

	deed := c.project.DeedDate
	if p.IsFounder || !p.BuysFromCopro() || p.EntryDate == nil || deed.IsZero() {
		return fallback
	}

	if p.Surface <= 0 {
		slog.Warn("newcomer has no surface, using fallback price", "participant", p.Name, "surface", p.Surface)
		return fallback
	}

	entry := p.EntryOn(deed)

	var surfaces []float64
	for _, existing := range c.project.Participants {
		if existing.EntryDate == nil && !existing.IsFounder {
			continue
		}

		if existing.EntryOn(deed).After(entry) {
			continue
		}

		surfaces = append(surfaces, existing.Surface)
	}

	var total float64
	for _, s := range surfaces {
		total += s
	}

	if total <= 0 {
		slog.Warn("no surface entered before newcomer, using fallback price", "participant", p.Name)
		return fallback
	}

	price := portage.PriceNewcomer(p.Surface, surfaces, c.project.Params.TotalPurchase, deed, entry, &c.project.Formula)
	if price.TotalPrice <= 0 {
		return fallback
	}

	return price.TotalPrice
}

func storedPrice(p project.Participant) (float64, bool) {
	if p.Purchase == nil {
		return 0, false
	}

	return p.Purchase.Price()
}

func totals(params project.Params, enabled []project.Participant, res Results, travauxCommunsPerUnit float64) Totals {
	t := Totals{
		Purchase:              params.TotalPurchase,
		Shared:                res.SharedCosts,
		TravauxCommuns:        params.TotalTravauxCommuns(),
		TravauxCommunsPerUnit: travauxCommunsPerUnit,
	}

	for _, r := range res.Participants {
		t.DroitEnregistrements += r.DroitEnregistrements
		t.Construction += r.ConstructionCost
		t.LoansNeeded += r.LoanNeeded
	}

	for _, p := range enabled {
		t.CapitalTotal += p.CapitalApporte
	}

	t.Total = t.Purchase + t.DroitEnregistrements + t.Construction + t.Shared

	if n := len(enabled); n > 0 {
		t.AverageLoan = t.LoansNeeded / float64(n)
		t.AverageCapital = t.CapitalTotal / float64(n)
	}

	return t
}
