package projection

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/engine"
	"github.com/MrJamesThe3rd/castor/internal/fraisgeneraux"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

type Response struct {
	Results        resultsResponse             `json:"results"`
	Timeline       timelineResponse            `json:"timeline"`
	CoproSnapshots []coproSnapshotResponse     `json:"copro_snapshots"`
	FraisGeneraux  fraisGenerauxLedgerResponse `json:"frais_generaux"`
}

type resultsResponse struct {
	TotalSurface    float64               `json:"total_surface"`
	PricePerM2      float64               `json:"price_per_m2"`
	SharedCosts     float64               `json:"shared_costs"`
	SharedPerPerson float64               `json:"shared_per_person"`
	FraisGeneraux   fraisGenerauxResponse `json:"frais_generaux"`
	Participants    []participantResponse `json:"participants"`
	Totals          totalsResponse        `json:"totals"`
}

type fraisGenerauxResponse struct {
	TotalCasco           float64 `json:"total_casco"`
	HonorairesTotal      float64 `json:"honoraires_total"`
	HonorairesYearly     float64 `json:"honoraires_yearly"`
	RecurringYearly      float64 `json:"recurring_yearly"`
	RecurringTotal3Years float64 `json:"recurring_total_3_years"`
	OneTime              float64 `json:"one_time"`
	Total                float64 `json:"total"`
}

type participantResponse struct {
	Name                   string            `json:"name"`
	Enabled                bool              `json:"enabled"`
	PricePerM2             float64           `json:"price_per_m2"`
	PurchaseShare          float64           `json:"purchase_share"`
	DroitEnregistrements   float64           `json:"droit_enregistrements"`
	FraisNotaireFixe       float64           `json:"frais_notaire_fixe"`
	Casco                  float64           `json:"casco"`
	Parachevements         float64           `json:"parachevements"`
	PersonalRenovationCost float64           `json:"personal_renovation_cost"`
	ConstructionCost       float64           `json:"construction_cost"`
	TravauxCommunsPerUnit  float64           `json:"travaux_communs_per_unit"`
	SharedCosts            float64           `json:"shared_costs"`
	TotalCost              float64           `json:"total_cost"`
	LoanNeeded             float64           `json:"loan_needed"`
	FinancingRatio         float64           `json:"financing_ratio"`
	MonthlyPayment         float64           `json:"monthly_payment"`
	TotalRepayment         float64           `json:"total_repayment"`
	TotalInterest          float64           `json:"total_interest"`
	TwoLoans               *twoLoansResponse `json:"two_loans,omitempty"`
	Phases                 phasesResponse    `json:"phases"`
}

type twoLoansResponse struct {
	Loan1Amount         float64 `json:"loan1_amount"`
	Loan1MonthlyPayment float64 `json:"loan1_monthly_payment"`
	Loan1Interest       float64 `json:"loan1_interest"`
	Loan2Amount         float64 `json:"loan2_amount"`
	Loan2DurationYears  int     `json:"loan2_duration_years"`
	Loan2MonthlyPayment float64 `json:"loan2_monthly_payment"`
	Loan2Interest       float64 `json:"loan2_interest"`
	TotalInterest       float64 `json:"total_interest"`
}

type phasesResponse struct {
	Signature    float64 `json:"signature"`
	Construction float64 `json:"construction"`
	Emmenagement float64 `json:"emmenagement"`
	GrandTotal   float64 `json:"grand_total"`
}

type totalsResponse struct {
	Purchase             float64 `json:"purchase"`
	DroitEnregistrements float64 `json:"droit_enregistrements"`
	Construction         float64 `json:"construction"`
	Shared               float64 `json:"shared"`
	TravauxCommuns       float64 `json:"travaux_communs"`
	Total                float64 `json:"total"`
	CapitalTotal         float64 `json:"capital_total"`
	LoansNeeded          float64 `json:"loans_needed"`
	AverageLoan          float64 `json:"average_loan"`
	AverageCapital       float64 `json:"average_capital"`
}

type timelineResponse struct {
	Dates     []string                      `json:"dates"`
	Snapshots map[string][]snapshotResponse `json:"snapshots"`
}

type snapshotResponse struct {
	Date                 string               `json:"date"`
	ParticipantIndex     int                  `json:"participant_index"`
	TotalCost            float64              `json:"total_cost"`
	LoanNeeded           float64              `json:"loan_needed"`
	MonthlyPayment       float64              `json:"monthly_payment"`
	IsT0                 bool                 `json:"is_t0"`
	ColorZone            int                  `json:"color_zone"`
	ShowFinancingDetails bool                 `json:"show_financing_details"`
	Transaction          *transactionResponse `json:"transaction,omitempty"`
}

type transactionResponse struct {
	Type            timeline.TransactionType `json:"type"`
	Seller          string                   `json:"seller,omitempty"`
	Buyer           string                   `json:"buyer,omitempty"`
	LotPrice        float64                  `json:"lot_price,omitempty"`
	Indexation      float64                  `json:"indexation,omitempty"`
	CarryingCosts   float64                  `json:"carrying_costs,omitempty"`
	DeltaTotalCost  float64                  `json:"delta_total_cost"`
	DeltaLoanNeeded float64                  `json:"delta_loan_needed"`
	Reason          string                   `json:"reason"`
}

type coproSnapshotResponse struct {
	Date            string   `json:"date"`
	AvailableLots   int      `json:"available_lots"`
	TotalSurface    float64  `json:"total_surface"`
	SoldThisDate    []string `json:"sold_this_date"`
	ReserveIncrease float64  `json:"reserve_increase"`
	ColorZone       int      `json:"color_zone"`
}

type fraisGenerauxLedgerResponse struct {
	Years          []yearResponse          `json:"years"`
	Reimbursements []reimbursementResponse `json:"reimbursements"`
	Events         []eventResponse         `json:"events"`
}

type yearResponse struct {
	Number         int     `json:"number"`
	Date           string  `json:"date"`
	OneTimeCosts   float64 `json:"one_time_costs"`
	RecurringCosts float64 `json:"recurring_costs"`
	Honoraires     float64 `json:"honoraires"`
	Total          float64 `json:"total"`
}

type paymentResponse struct {
	Participant string `json:"participant"`
	AmountCents int64  `json:"amount_cents"`
	IsFounder   bool   `json:"is_founder"`
}

type transferResponse struct {
	ToParticipant string `json:"to_participant"`
	AmountCents   int64  `json:"amount_cents"`
}

type reimbursementResponse struct {
	Newcomer       string             `json:"newcomer"`
	EntryDate      string             `json:"entry_date"`
	Transfers      []transferResponse `json:"transfers"`
	TotalPaidCents int64              `json:"total_paid_cents"`
}

type eventResponse struct {
	ID          uuid.UUID               `json:"id"`
	Type        fraisgeneraux.EventType `json:"type"`
	Date        string                  `json:"date"`
	Year        int                     `json:"year"`
	Payments    []paymentResponse       `json:"payments,omitempty"`
	Newcomer    string                  `json:"newcomer,omitempty"`
	Transfers   []transferResponse      `json:"transfers,omitempty"`
	Description string                  `json:"description,omitempty"`
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NewResponse flattens a projection for the browser UI.
func NewResponse(p *engine.Projection) Response {
	return Response{
		Results:        toResultsResponse(p.Results),
		Timeline:       toTimelineResponse(p.Timeline),
		CoproSnapshots: toCoproResponse(p.CoproSnapshots),
		FraisGeneraux:  toLedgerResponse(p.FraisGeneraux),
	}
}

func toResultsResponse(res calculator.Results) resultsResponse {
	fg := res.FraisGeneraux

	resp := resultsResponse{
		TotalSurface:    res.TotalSurface,
		PricePerM2:      res.PricePerM2,
		SharedCosts:     res.SharedCosts,
		SharedPerPerson: res.SharedPerPerson,
		FraisGeneraux: fraisGenerauxResponse{
			TotalCasco:           fg.TotalCasco,
			HonorairesTotal:      fg.HonorairesTotal,
			HonorairesYearly:     fg.HonorairesYearly,
			RecurringYearly:      fg.RecurringYearly.Total,
			RecurringTotal3Years: fg.RecurringTotal3Years,
			OneTime:              fg.OneTime.Total,
			Total:                fg.Total,
		},
		Participants: make([]participantResponse, len(res.Participants)),
		Totals: totalsResponse{
			Purchase:             res.Totals.Purchase,
			DroitEnregistrements: res.Totals.DroitEnregistrements,
			Construction:         res.Totals.Construction,
			Shared:               res.Totals.Shared,
			TravauxCommuns:       res.Totals.TravauxCommuns,
			Total:                res.Totals.Total,
			CapitalTotal:         res.Totals.CapitalTotal,
			LoansNeeded:          res.Totals.LoansNeeded,
			AverageLoan:          res.Totals.AverageLoan,
			AverageCapital:       res.Totals.AverageCapital,
		},
	}

	for i, p := range res.Participants {
		phases := calculator.CalculatePhaseCosts(p)

		r := participantResponse{
			Name:                   p.Name,
			Enabled:                p.Enabled,
			PricePerM2:             p.PricePerM2,
			PurchaseShare:          p.PurchaseShare,
			DroitEnregistrements:   p.DroitEnregistrements,
			FraisNotaireFixe:       p.FraisNotaireFixe,
			Casco:                  p.Casco,
			Parachevements:         p.Parachevements,
			PersonalRenovationCost: p.PersonalRenovationCost,
			ConstructionCost:       p.ConstructionCost,
			TravauxCommunsPerUnit:  p.TravauxCommunsPerUnit,
			SharedCosts:            p.SharedCosts,
			TotalCost:              p.TotalCost,
			LoanNeeded:             p.LoanNeeded,
			FinancingRatio:         p.FinancingRatio,
			MonthlyPayment:         p.MonthlyPayment,
			TotalRepayment:         p.TotalRepayment,
			TotalInterest:          p.TotalInterest,
			Phases: phasesResponse{
				Signature:    phases.Signature.Total,
				Construction: phases.Construction.Total,
				Emmenagement: phases.Emmenagement.Total,
				GrandTotal:   phases.GrandTotal,
			},
		}

		if tl := p.TwoLoans; tl != nil {
			r.TwoLoans = &twoLoansResponse{
				Loan1Amount:         tl.Loan1Amount,
				Loan1MonthlyPayment: tl.Loan1MonthlyPayment,
				Loan1Interest:       tl.Loan1Interest,
				Loan2Amount:         tl.Loan2Amount,
				Loan2DurationYears:  tl.Loan2DurationYears,
				Loan2MonthlyPayment: tl.Loan2MonthlyPayment,
				Loan2Interest:       tl.Loan2Interest,
				TotalInterest:       tl.TotalInterest,
			}
		}

		resp.Participants[i] = r
	}

	return resp
}

func toTimelineResponse(tl timeline.Timeline) timelineResponse {
	resp := timelineResponse{
		Dates:     make([]string, len(tl.Dates)),
		Snapshots: make(map[string][]snapshotResponse, len(tl.Snapshots)),
	}

	for i, d := range tl.Dates {
		resp.Dates[i] = day(d)
	}

	for name, snapshots := range tl.Snapshots {
		out := make([]snapshotResponse, len(snapshots))
		for i, s := range snapshots {
			out[i] = snapshotResponse{
				Date:                 day(s.Date),
				ParticipantIndex:     s.ParticipantIndex,
				TotalCost:            s.TotalCost,
				LoanNeeded:           s.LoanNeeded,
				MonthlyPayment:       s.MonthlyPayment,
				IsT0:                 s.IsT0,
				ColorZone:            s.ColorZone,
				ShowFinancingDetails: s.ShowFinancingDetails,
			}

			if tx := s.Transaction; tx != nil {
				out[i].Transaction = &transactionResponse{
					Type:            tx.Type,
					Seller:          tx.Seller,
					Buyer:           tx.Buyer,
					LotPrice:        tx.LotPrice,
					Indexation:      tx.Indexation,
					CarryingCosts:   tx.CarryingCosts,
					DeltaTotalCost:  tx.Delta.TotalCost,
					DeltaLoanNeeded: tx.Delta.LoanNeeded,
					Reason:          tx.Delta.Reason,
				}
			}
		}

		resp.Snapshots[name] = out
	}

	return resp
}

func toCoproResponse(snapshots []timeline.CoproSnapshot) []coproSnapshotResponse {
	resp := make([]coproSnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		resp[i] = coproSnapshotResponse{
			Date:            day(s.Date),
			AvailableLots:   s.AvailableLots,
			TotalSurface:    s.TotalSurface,
			SoldThisDate:    s.SoldThisDate,
			ReserveIncrease: s.ReserveIncrease,
			ColorZone:       s.ColorZone,
		}
	}

	return resp
}

func toTransfers(transfers []fraisgeneraux.Transfer) []transferResponse {
	resp := make([]transferResponse, len(transfers))
	for i, t := range transfers {
		resp[i] = transferResponse{ToParticipant: t.ToParticipant, AmountCents: t.AmountCents}
	}

	return resp
}

func toLedgerResponse(l fraisgeneraux.Ledger) fraisGenerauxLedgerResponse {
	resp := fraisGenerauxLedgerResponse{
		Years:          make([]yearResponse, len(l.Years)),
		Reimbursements: make([]reimbursementResponse, len(l.Reimbursements)),
		Events:         make([]eventResponse, len(l.Events)),
	}

	for i, y := range l.Years {
		resp.Years[i] = yearResponse{
			Number:         y.Number,
			Date:           day(y.Date),
			OneTimeCosts:   y.OneTimeCosts,
			RecurringCosts: y.RecurringCosts,
			Honoraires:     y.Honoraires,
			Total:          y.Total,
		}
	}

	for i, r := range l.Reimbursements {
		resp.Reimbursements[i] = reimbursementResponse{
			Newcomer:       r.Newcomer,
			EntryDate:      day(r.EntryDate),
			Transfers:      toTransfers(r.Transfers),
			TotalPaidCents: r.TotalPaidCents,
		}
	}

	for i, e := range l.Events {
		ev := eventResponse{
			ID:          e.ID,
			Type:        e.Type,
			Date:        day(e.Date),
			Year:        e.Year,
			Newcomer:    e.Newcomer,
			Description: e.Description,
		}

		for _, p := range e.Payments {
			ev.Payments = append(ev.Payments, paymentResponse{
				Participant: p.Participant,
				AmountCents: p.AmountCents,
				IsFounder:   p.IsFounder,
			})
		}

		if len(e.Transfers) > 0 {
			ev.Transfers = toTransfers(e.Transfers)
		}

		resp.Events[i] = ev
	}

	return resp
}
