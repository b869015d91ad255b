package scenario

import (
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

// The wire types mirror the scenario file format. Field names are camelCase
// so files written by earlier releases load unchanged.

type participantDTO struct {
	Name                 string  `json:"name"`
	CapitalApporte       float64 `json:"capitalApporte"`
	RegistrationFeesRate float64 `json:"registrationFeesRate"`
	InterestRate         float64 `json:"interestRate"`
	DurationYears        int     `json:"durationYears"`

	UseTwoLoans           bool     `json:"useTwoLoans,omitempty"`
	Loan2DelayYears       *int     `json:"loan2DelayYears,omitempty"`
	CapitalForLoan2       float64  `json:"capitalForLoan2,omitempty"`
	Loan2RenovationAmount *float64 `json:"loan2RenovationAmount,omitempty"`

	IsFounder       bool         `json:"isFounder,omitempty"`
	EntryDate       *date        `json:"entryDate,omitempty"`
	ExitDate        *date        `json:"exitDate,omitempty"`
	LotsOwned       []lotDTO     `json:"lotsOwned,omitempty"`
	PurchaseDetails *purchaseDTO `json:"purchaseDetails,omitempty"`

	UnitID   int     `json:"unitId,omitempty"`
	Surface  float64 `json:"surface,omitempty"`
	Quantity int     `json:"quantity,omitempty"`

	ParachevementsPerM2 *float64 `json:"parachevementsPerM2,omitempty"`
	CascoSqm            *float64 `json:"cascoSqm,omitempty"`
	ParachevementsSqm   *float64 `json:"parachevementsSqm,omitempty"`

	Enabled *bool `json:"enabled,omitempty"`

	// Read from v2 files only.
	CapitalForLoan1             *float64 `json:"capitalForLoan1,omitempty"`
	Loan2IncludesParachevements *bool    `json:"loan2IncludesParachevements,omitempty"`
}

type purchaseDTO struct {
	BuyingFrom    string        `json:"buyingFrom"`
	LotID         int           `json:"lotId"`
	PurchasePrice *float64      `json:"purchasePrice,omitempty"`
	Breakdown     *breakdownDTO `json:"breakdown,omitempty"`
}

type breakdownDTO struct {
	BasePrice            float64 `json:"basePrice"`
	Indexation           float64 `json:"indexation"`
	CarryingCostRecovery float64 `json:"carryingCostRecovery"`
	FeesRecovery         float64 `json:"feesRecovery"`
	Renovations          float64 `json:"renovations"`
}

type lotDTO struct {
	LotID                    int     `json:"lotId"`
	Surface                  float64 `json:"surface"`
	UnitID                   int     `json:"unitId"`
	IsPortage                bool    `json:"isPortage"`
	AcquiredDate             *date   `json:"acquiredDate,omitempty"`
	OriginalPrice            float64 `json:"originalPrice,omitempty"`
	OriginalNotaryFees       float64 `json:"originalNotaryFees,omitempty"`
	OriginalConstructionCost float64 `json:"originalConstructionCost,omitempty"`
	AllocatedSurface         float64 `json:"allocatedSurface,omitempty"`
	FounderPaysCasco         bool    `json:"founderPaysCasco,omitempty"`
	FounderPaysParachevement bool    `json:"founderPaysParachèvement,omitempty"`
	SoldDate                 *date   `json:"soldDate,omitempty"`
	SoldTo                   string  `json:"soldTo,omitempty"`
	SalePrice                float64 `json:"salePrice,omitempty"`
}

type coproLotDTO struct {
	LotID        int     `json:"lotId"`
	Surface      float64 `json:"surface"`
	AcquiredDate *date   `json:"acquiredDate,omitempty"`
	SoldDate     *date   `json:"soldDate,omitempty"`
	SoldTo       string  `json:"soldTo,omitempty"`
	SalePrice    float64 `json:"salePrice,omitempty"`
}

type expenseLineDTO struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type expenseCategoriesDTO struct {
	Conservatoire        []expenseLineDTO `json:"conservatoire"`
	HabitabiliteSommaire []expenseLineDTO `json:"habitabiliteSommaire"`
	PremierTravaux       []expenseLineDTO `json:"premierTravaux"`
}

// travauxItemDTO keeps every field optional so items written before sqm
// pricing can be told apart.
type travauxItemDTO struct {
	Label                    string   `json:"label"`
	Sqm                      *float64 `json:"sqm,omitempty"`
	CascoPricePerSqm         *float64 `json:"cascoPricePerSqm,omitempty"`
	ParachevementPricePerSqm *float64 `json:"parachevementPricePerSqm,omitempty"`
	Amount                   *float64 `json:"amount,omitempty"`
}

type travauxCommunsDTO struct {
	Enabled bool             `json:"enabled"`
	Items   []travauxItemDTO `json:"items"`
}

type paramsDTO struct {
	TotalPurchase                  float64               `json:"totalPurchase"`
	MesuresConservatoires          float64               `json:"mesuresConservatoires"`
	Demolition                     float64               `json:"demolition"`
	Infrastructures                float64               `json:"infrastructures"`
	EtudesPreparatoires            float64               `json:"etudesPreparatoires"`
	FraisEtudesPreparatoires       float64               `json:"fraisEtudesPreparatoires"`
	FraisGeneraux3Ans              float64               `json:"fraisGeneraux3ans"`
	BatimentFondationConservatoire float64               `json:"batimentFondationConservatoire"`
	BatimentFondationComplete      float64               `json:"batimentFondationComplete"`
	BatimentCoproConservatoire     float64               `json:"batimentCoproConservatoire"`
	GlobalCascoPerM2               float64               `json:"globalCascoPerM2"`
	CascoTVARate                   float64               `json:"cascoTvaRate,omitempty"`
	ExpenseCategories              *expenseCategoriesDTO `json:"expenseCategories,omitempty"`
	TravauxCommuns                 *travauxCommunsDTO    `json:"travauxCommuns,omitempty"`
	MaxTotalLots                   int                   `json:"maxTotalLots,omitempty"`
	RenovationStartDate            *date                 `json:"renovationStartDate,omitempty"`
}

type formulaDTO struct {
	IndexationRate       *float64 `json:"indexationRate,omitempty"`
	CarryingCostRecovery *float64 `json:"carryingCostRecovery,omitempty"`
	AverageInterestRate  *float64 `json:"averageInterestRate,omitempty"`
	CoproReservesShare   *float64 `json:"coproReservesShare,omitempty"`
}

type unitCostDTO struct {
	Casco          float64 `json:"casco"`
	Parachevements float64 `json:"parachevements"`
}

func (p participantDTO) toDomain() project.Participant {
	out := project.Participant{
		Name:                  p.Name,
		CapitalApporte:        p.CapitalApporte,
		RegistrationFeesRate:  p.RegistrationFeesRate,
		InterestRate:          p.InterestRate,
		DurationYears:         p.DurationYears,
		UseTwoLoans:           p.UseTwoLoans,
		Loan2DelayYears:       p.Loan2DelayYears,
		CapitalForLoan2:       p.CapitalForLoan2,
		Loan2RenovationAmount: p.Loan2RenovationAmount,
		IsFounder:             p.IsFounder,
		EntryDate:             p.EntryDate.ptr(),
		ExitDate:              p.ExitDate.ptr(),
		UnitID:                p.UnitID,
		Surface:               p.Surface,
		Quantity:              p.Quantity,
		ParachevementsPerM2:   p.ParachevementsPerM2,
		CascoSqm:              p.CascoSqm,
		ParachevementsSqm:     p.ParachevementsSqm,
		Disabled:              p.Enabled != nil && !*p.Enabled,
	}

	for _, l := range p.LotsOwned {
		out.Lots = append(out.Lots, project.Lot{
			ID:                       l.LotID,
			Surface:                  l.Surface,
			UnitID:                   l.UnitID,
			IsPortage:                l.IsPortage,
			AcquiredDate:             l.AcquiredDate.value(),
			OriginalPrice:            l.OriginalPrice,
			OriginalNotaryFees:       l.OriginalNotaryFees,
			OriginalConstructionCost: l.OriginalConstructionCost,
			AllocatedSurface:         l.AllocatedSurface,
			FounderPaysCasco:         l.FounderPaysCasco,
			FounderPaysParachevement: l.FounderPaysParachevement,
			SoldDate:                 l.SoldDate.ptr(),
			SoldTo:                   l.SoldTo,
			SalePrice:                l.SalePrice,
		})
	}

	if d := p.PurchaseDetails; d != nil {
		purchase := project.NewPurchase(d.BuyingFrom, d.LotID, d.PurchasePrice)
		if pp, ok := purchase.(project.PortagePurchase); ok && d.Breakdown != nil {
			pp.Breakdown = &project.PriceBreakdown{
				BasePrice:            d.Breakdown.BasePrice,
				Indexation:           d.Breakdown.Indexation,
				CarryingCostRecovery: d.Breakdown.CarryingCostRecovery,
				FeesRecovery:         d.Breakdown.FeesRecovery,
				Renovations:          d.Breakdown.Renovations,
			}
			purchase = pp
		}

		out.Purchase = purchase
	}

	return out
}

func participantFromDomain(p project.Participant) participantDTO {
	out := participantDTO{
		Name:                  p.Name,
		CapitalApporte:        p.CapitalApporte,
		RegistrationFeesRate:  p.RegistrationFeesRate,
		InterestRate:          p.InterestRate,
		DurationYears:         p.DurationYears,
		UseTwoLoans:           p.UseTwoLoans,
		Loan2DelayYears:       p.Loan2DelayYears,
		CapitalForLoan2:       p.CapitalForLoan2,
		Loan2RenovationAmount: p.Loan2RenovationAmount,
		IsFounder:             p.IsFounder,
		EntryDate:             optionalDate(p.EntryDate),
		ExitDate:              optionalDate(p.ExitDate),
		UnitID:                p.UnitID,
		Surface:               p.Surface,
		Quantity:              p.Quantity,
		ParachevementsPerM2:   p.ParachevementsPerM2,
		CascoSqm:              p.CascoSqm,
		ParachevementsSqm:     p.ParachevementsSqm,
		Enabled:               new(!p.Disabled),
	}

	for _, l := range p.Lots {
		out.LotsOwned = append(out.LotsOwned, lotDTO{
			LotID:                    l.ID,
			Surface:                  l.Surface,
			UnitID:                   l.UnitID,
			IsPortage:                l.IsPortage,
			AcquiredDate:             optionalDate(&l.AcquiredDate),
			OriginalPrice:            l.OriginalPrice,
			OriginalNotaryFees:       l.OriginalNotaryFees,
			OriginalConstructionCost: l.OriginalConstructionCost,
			AllocatedSurface:         l.AllocatedSurface,
			FounderPaysCasco:         l.FounderPaysCasco,
			FounderPaysParachevement: l.FounderPaysParachevement,
			SoldDate:                 optionalDate(l.SoldDate),
			SoldTo:                   l.SoldTo,
			SalePrice:                l.SalePrice,
		})
	}

	if p.Purchase != nil {
		d := &purchaseDTO{
			BuyingFrom: project.SellerName(p.Purchase),
			LotID:      p.Purchase.LotID(),
		}

		if price, ok := p.Purchase.Price(); ok {
			d.PurchasePrice = new(price)
		}

		if pp, ok := p.Purchase.(project.PortagePurchase); ok && pp.Breakdown != nil {
			d.Breakdown = &breakdownDTO{
				BasePrice:            pp.Breakdown.BasePrice,
				Indexation:           pp.Breakdown.Indexation,
				CarryingCostRecovery: pp.Breakdown.CarryingCostRecovery,
				FeesRecovery:         pp.Breakdown.FeesRecovery,
				Renovations:          pp.Breakdown.Renovations,
			}
		}

		out.PurchaseDetails = d
	}

	return out
}

func (c coproLotDTO) toDomain() project.CoproLot {
	return project.CoproLot{
		ID:           c.LotID,
		Surface:      c.Surface,
		AcquiredDate: c.AcquiredDate.value(),
		SoldDate:     c.SoldDate.ptr(),
		SoldTo:       c.SoldTo,
		SalePrice:    c.SalePrice,
	}
}

func coproLotFromDomain(c project.CoproLot) coproLotDTO {
	return coproLotDTO{
		LotID:        c.ID,
		Surface:      c.Surface,
		AcquiredDate: optionalDate(&c.AcquiredDate),
		SoldDate:     optionalDate(c.SoldDate),
		SoldTo:       c.SoldTo,
		SalePrice:    c.SalePrice,
	}
}

func expenseLinesToDomain(lines []expenseLineDTO) []project.ExpenseLineItem {
	out := make([]project.ExpenseLineItem, len(lines))
	for i, l := range lines {
		out[i] = project.ExpenseLineItem{Label: l.Label, Amount: l.Amount}
	}

	return out
}

func expenseLinesFromDomain(lines []project.ExpenseLineItem) []expenseLineDTO {
	out := make([]expenseLineDTO, len(lines))
	for i, l := range lines {
		out[i] = expenseLineDTO{Label: l.Label, Amount: l.Amount}
	}

	return out
}

func (p paramsDTO) toDomain() project.Params {
	out := project.Params{
		TotalPurchase:                  p.TotalPurchase,
		MesuresConservatoires:          p.MesuresConservatoires,
		Demolition:                     p.Demolition,
		Infrastructures:                p.Infrastructures,
		EtudesPreparatoires:            p.EtudesPreparatoires,
		FraisEtudesPreparatoires:       p.FraisEtudesPreparatoires,
		FraisGeneraux3Ans:              p.FraisGeneraux3Ans,
		BatimentFondationConservatoire: p.BatimentFondationConservatoire,
		BatimentFondationComplete:      p.BatimentFondationComplete,
		BatimentCoproConservatoire:     p.BatimentCoproConservatoire,
		GlobalCascoPerM2:               p.GlobalCascoPerM2,
		CascoTVARate:                   p.CascoTVARate,
		MaxTotalLots:                   p.MaxTotalLots,
		RenovationStartDate:            p.RenovationStartDate.ptr(),
	}

	if c := p.ExpenseCategories; c != nil {
		out.ExpenseCategories = &project.ExpenseCategories{
			Conservatoire:        expenseLinesToDomain(c.Conservatoire),
			HabitabiliteSommaire: expenseLinesToDomain(c.HabitabiliteSommaire),
			PremierTravaux:       expenseLinesToDomain(c.PremierTravaux),
		}
	}

	if tc := p.TravauxCommuns; tc != nil {
		out.TravauxCommuns = &project.TravauxCommuns{Enabled: tc.Enabled}
		for _, item := range tc.Items {
			out.TravauxCommuns.Items = append(out.TravauxCommuns.Items, project.TravauxCommunsItem{
				Label:                    item.Label,
				Sqm:                      deref(item.Sqm),
				CascoPricePerSqm:         deref(item.CascoPricePerSqm),
				ParachevementPricePerSqm: deref(item.ParachevementPricePerSqm),
				Amount:                   item.Amount,
			})
		}
	}

	return out
}

func paramsFromDomain(p project.Params) paramsDTO {
	out := paramsDTO{
		TotalPurchase:                  p.TotalPurchase,
		MesuresConservatoires:          p.MesuresConservatoires,
		Demolition:                     p.Demolition,
		Infrastructures:                p.Infrastructures,
		EtudesPreparatoires:            p.EtudesPreparatoires,
		FraisEtudesPreparatoires:       p.FraisEtudesPreparatoires,
		FraisGeneraux3Ans:              p.FraisGeneraux3Ans,
		BatimentFondationConservatoire: p.BatimentFondationConservatoire,
		BatimentFondationComplete:      p.BatimentFondationComplete,
		BatimentCoproConservatoire:     p.BatimentCoproConservatoire,
		GlobalCascoPerM2:               p.GlobalCascoPerM2,
		CascoTVARate:                   p.CascoTVARate,
		MaxTotalLots:                   p.MaxTotalLots,
		RenovationStartDate:            optionalDate(p.RenovationStartDate),
	}

	if c := p.ExpenseCategories; c != nil {
		out.ExpenseCategories = &expenseCategoriesDTO{
			Conservatoire:        expenseLinesFromDomain(c.Conservatoire),
			HabitabiliteSommaire: expenseLinesFromDomain(c.HabitabiliteSommaire),
			PremierTravaux:       expenseLinesFromDomain(c.PremierTravaux),
		}
	}

	if tc := p.TravauxCommuns; tc != nil {
		out.TravauxCommuns = &travauxCommunsDTO{Enabled: tc.Enabled, Items: []travauxItemDTO{}}
		for _, item := range tc.Items {
			out.TravauxCommuns.Items = append(out.TravauxCommuns.Items, travauxItemDTO{
				Label:                    item.Label,
				Sqm:                      new(item.Sqm),
				CascoPricePerSqm:         new(item.CascoPricePerSqm),
				ParachevementPricePerSqm: new(item.ParachevementPricePerSqm),
				Amount:                   item.Amount,
			})
		}
	}

	return out
}

// toDomain fills every missing field from the default formula.
func (f *formulaDTO) toDomain() portage.Formula {
	out := portage.DefaultFormula()
	if f == nil {
		return out
	}

	if f.IndexationRate != nil {
		out.IndexationRate = *f.IndexationRate
	}

	if f.CarryingCostRecovery != nil {
		out.CarryingCostRecovery = *f.CarryingCostRecovery
	}

	if f.AverageInterestRate != nil {
		out.AverageInterestRate = *f.AverageInterestRate
	}

	if f.CoproReservesShare != nil {
		out.CoproReservesShare = *f.CoproReservesShare
	}

	return out
}

func formulaFromDomain(f portage.Formula) *formulaDTO {
	return &formulaDTO{
		IndexationRate:       new(f.IndexationRate),
		CarryingCostRecovery: new(f.CarryingCostRecovery),
		AverageInterestRate:  new(f.AverageInterestRate),
		CoproReservesShare:   new(f.CoproReservesShare),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}
