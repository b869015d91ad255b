package scenario

import (
	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

type calculationsDTO struct {
	TotalSurface         float64              `json:"totalSurface"`
	PricePerM2           float64              `json:"pricePerM2"`
	SharedCosts          float64              `json:"sharedCosts"`
	SharedPerPerson      float64              `json:"sharedPerPerson"`
	ParticipantBreakdown []participantCalcDTO `json:"participantBreakdown"`
	Totals               totalsDTO            `json:"totals"`
}

type participantCalcDTO struct {
	Name                   string  `json:"name"`
	Quantity               int     `json:"quantity,omitempty"`
	PricePerM2             float64 `json:"pricePerM2"`
	PurchaseShare          float64 `json:"purchaseShare"`
	DroitEnregistrements   float64 `json:"droitEnregistrements"`
	FraisNotaireFixe       float64 `json:"fraisNotaireFixe"`
	Casco                  float64 `json:"casco"`
	Parachevements         float64 `json:"parachevements"`
	PersonalRenovationCost float64 `json:"personalRenovationCost"`
	ConstructionCost       float64 `json:"constructionCost"`
	ConstructionPerUnit    float64 `json:"constructionCostPerUnit"`
	TravauxCommunsPerUnit  float64 `json:"travauxCommunsPerUnit"`
	SharedCosts            float64 `json:"sharedCosts"`
	TotalCost              float64 `json:"totalCost"`
	LoanNeeded             float64 `json:"loanNeeded"`
	FinancingRatio         float64 `json:"financingRatio"`
	MonthlyPayment         float64 `json:"monthlyPayment"`
	TotalRepayment         float64 `json:"totalRepayment"`
	TotalInterest          float64 `json:"totalInterest"`

	Loan1Amount         *float64 `json:"loan1Amount,omitempty"`
	Loan1MonthlyPayment *float64 `json:"loan1MonthlyPayment,omitempty"`
	Loan1Interest       *float64 `json:"loan1Interest,omitempty"`
	Loan2Amount         *float64 `json:"loan2Amount,omitempty"`
	Loan2DurationYears  *int     `json:"loan2DurationYears,omitempty"`
	Loan2MonthlyPayment *float64 `json:"loan2MonthlyPayment,omitempty"`
	Loan2Interest       *float64 `json:"loan2Interest,omitempty"`
}

type totalsDTO struct {
	Purchase                  float64 `json:"purchase"`
	TotalDroitEnregistrements float64 `json:"totalDroitEnregistrements"`
	TotalFraisNotaireFixe     float64 `json:"totalFraisNotaireFixe"`
	Construction              float64 `json:"construction"`
	Shared                    float64 `json:"shared"`
	TotalTravauxCommuns       float64 `json:"totalTravauxCommuns"`
	TravauxCommunsPerUnit     float64 `json:"travauxCommunsPerUnit"`
	Total                     float64 `json:"total"`
	CapitalTotal              float64 `json:"capitalTotal"`
	TotalLoansNeeded          float64 `json:"totalLoansNeeded"`
	AverageLoan               float64 `json:"averageLoan"`
	AverageCapital            float64 `json:"averageCapital"`
}

type snapshotDTO struct {
	Date                 date            `json:"date"`
	ParticipantName      string          `json:"participantName"`
	ParticipantIndex     int             `json:"participantIndex"`
	TotalCost            float64         `json:"totalCost"`
	LoanNeeded           float64         `json:"loanNeeded"`
	MonthlyPayment       float64         `json:"monthlyPayment"`
	IsT0                 bool            `json:"isT0"`
	ColorZone            int             `json:"colorZone"`
	Transaction          *transactionDTO `json:"transaction,omitempty"`
	ShowFinancingDetails bool            `json:"showFinancingDetails"`
	UseTwoLoans          bool            `json:"useTwoLoans,omitempty"`
	Loan1MonthlyPayment  float64         `json:"loan1MonthlyPayment,omitempty"`
	Loan2MonthlyPayment  float64         `json:"loan2MonthlyPayment,omitempty"`
}

type transactionDTO struct {
	Type          timeline.TransactionType `json:"type"`
	Seller        string                   `json:"seller,omitempty"`
	Buyer         string                   `json:"buyer,omitempty"`
	LotPrice      float64                  `json:"lotPrice,omitempty"`
	Indexation    float64                  `json:"indexation,omitempty"`
	CarryingCosts float64                  `json:"carryingCosts,omitempty"`
	Delta         deltaDTO                 `json:"delta"`
}

type deltaDTO struct {
	TotalCost  float64 `json:"totalCost"`
	LoanNeeded float64 `json:"loanNeeded"`
	Reason     string  `json:"reason"`
}

func calculationsFromDomain(res calculator.Results) *calculationsDTO {
	out := &calculationsDTO{
		TotalSurface:         res.TotalSurface,
		PricePerM2:           res.PricePerM2,
		SharedCosts:          res.SharedCosts,
		SharedPerPerson:      res.SharedPerPerson,
		ParticipantBreakdown: make([]participantCalcDTO, len(res.Participants)),
		Totals: totalsDTO{
			Purchase:                  res.Totals.Purchase,
			TotalDroitEnregistrements: res.Totals.DroitEnregistrements,
			Construction:              res.Totals.Construction,
			Shared:                    res.Totals.Shared,
			TotalTravauxCommuns:       res.Totals.TravauxCommuns,
			TravauxCommunsPerUnit:     res.Totals.TravauxCommunsPerUnit,
			Total:                     res.Totals.Total,
			CapitalTotal:              res.Totals.CapitalTotal,
			TotalLoansNeeded:          res.Totals.LoansNeeded,
			AverageLoan:               res.Totals.AverageLoan,
			AverageCapital:            res.Totals.AverageCapital,
		},
	}

	for i, p := range res.Participants {
		out.Totals.TotalFraisNotaireFixe += p.FraisNotaireFixe

		c := participantCalcDTO{
			Name:                   p.Name,
			Quantity:               p.Quantity,
			PricePerM2:             p.PricePerM2,
			PurchaseShare:          p.PurchaseShare,
			DroitEnregistrements:   p.DroitEnregistrements,
			FraisNotaireFixe:       p.FraisNotaireFixe,
			Casco:                  p.Casco,
			Parachevements:         p.Parachevements,
			PersonalRenovationCost: p.PersonalRenovationCost,
			ConstructionCost:       p.ConstructionCost,
			ConstructionPerUnit:    p.ConstructionPerUnit,
			TravauxCommunsPerUnit:  p.TravauxCommunsPerUnit,
			SharedCosts:            p.SharedCosts,
			TotalCost:              p.TotalCost,
			LoanNeeded:             p.LoanNeeded,
			FinancingRatio:         p.FinancingRatio,
			MonthlyPayment:         p.MonthlyPayment,
			TotalRepayment:         p.TotalRepayment,
			TotalInterest:          p.TotalInterest,
		}

		if tl := p.TwoLoans; tl != nil {
			c.Loan1Amount = new(tl.Loan1Amount)
			c.Loan1MonthlyPayment = new(tl.Loan1MonthlyPayment)
			c.Loan1Interest = new(tl.Loan1Interest)
			c.Loan2Amount = new(tl.Loan2Amount)
			c.Loan2DurationYears = new(tl.Loan2DurationYears)
			c.Loan2MonthlyPayment = new(tl.Loan2MonthlyPayment)
			c.Loan2Interest = new(tl.Loan2Interest)
		}

		out.ParticipantBreakdown[i] = c
	}

	return out
}

func snapshotsFromDomain(tl timeline.Timeline) map[string][]snapshotDTO {
	out := make(map[string][]snapshotDTO, len(tl.Snapshots))

	for name, snapshots := range tl.Snapshots {
		dtos := make([]snapshotDTO, len(snapshots))
		for i, s := range snapshots {
			dtos[i] = snapshotDTO{
				Date:                 newDate(s.Date),
				ParticipantName:      s.ParticipantName,
				ParticipantIndex:     s.ParticipantIndex,
				TotalCost:            s.TotalCost,
				LoanNeeded:           s.LoanNeeded,
				MonthlyPayment:       s.MonthlyPayment,
				IsT0:                 s.IsT0,
				ColorZone:            s.ColorZone,
				ShowFinancingDetails: s.ShowFinancingDetails,
				UseTwoLoans:          s.UseTwoLoans,
				Loan1MonthlyPayment:  s.Loan1MonthlyPayment,
				Loan2MonthlyPayment:  s.Loan2MonthlyPayment,
			}

			if tx := s.Transaction; tx != nil {
				dtos[i].Transaction = &transactionDTO{
					Type:          tx.Type,
					Seller:        tx.Seller,
					Buyer:         tx.Buyer,
					LotPrice:      tx.LotPrice,
					Indexation:    tx.Indexation,
					CarryingCosts: tx.CarryingCosts,
					Delta: deltaDTO{
						TotalCost:  tx.Delta.TotalCost,
						LoanNeeded: tx.Delta.LoanNeeded,
						Reason:     tx.Delta.Reason,
					},
				}
			}
		}

		out[name] = dtos
	}

	return out
}
