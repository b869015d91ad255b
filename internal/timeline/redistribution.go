package timeline

import (
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

// Credit is the share of a copropriété sale received by one participant.
type Credit struct {
	Name    string
	Surface float64
	Quotite float64
	Amount  float64
}

// Redistribution is how the proceeds of one copropriété sale split between
// the reserves and the existing owners.
type Redistribution struct {
	Buyer        string
	Date         time.Time
	SalePrice    float64
	Distributed  float64
	Credits      []Credit
	Recalculated bool // Price recomputed without pre-renovation costs
}

// Credit returns the amount received by the named participant.
func (r Redistribution) Credit(name string) float64 {
	for _, c := range r.Credits {
		if c.Name == name {
			return c.Amount
		}
	}

	return 0
}

// Redistribute splits the copropriété sale to buyer among the owners that
// were there before it, pro rata of their surface.
func Redistribute(p project.Project, res calculator.Results, buyer project.Participant) Redistribution {
	saleDate := buyer.EntryOn(p.DeedDate)

	r := Redistribution{
		Buyer:     buyer.Name,
		Date:      saleDate,
		SalePrice: buyer.StoredPrice(),
	}

	r.Distributed = portage.Distributable(r.SalePrice, p.Formula)
	if sale, ok := recalculatedSale(p, res, buyer, saleDate); ok {
		r.SalePrice = sale.TotalPrice
		r.Distributed = sale.ToParticipants
		r.Recalculated = true
	}

	receivers := eligibleReceivers(p, buyer, saleDate)

	var total float64
	for _, receiver := range receivers {
		total += receiver.Surface
	}

	if total == 0 || r.Distributed == 0 {
		return r
	}

	for _, receiver := range receivers {
		quotite := receiver.Surface / total
		r.Credits = append(r.Credits, Credit{
			Name:    receiver.Name,
			Surface: receiver.Surface,
			Quotite: quotite,
			Amount:  r.Distributed * quotite,
		})
	}

	return r
}

// eligibleReceivers returns the owners with a surface who entered on or
// before the sale, except the buyer and non-founders entering the same day.
func eligibleReceivers(p project.Project, buyer project.Participant, saleDate time.Time) []project.Participant {
	var out []project.Participant

	for _, candidate := range p.Participants {
		if candidate.Disabled || candidate.Surface <= 0 || candidate.Name == buyer.Name {
			continue
		}

		if candidate.EntryDate == nil && !candidate.IsFounder {
			continue
		}

		entry := candidate.EntryOn(p.DeedDate)
		if entry.After(saleDate) {
			continue
		}

		if !candidate.IsFounder && entry.Equal(saleDate) {
			continue
		}

		out = append(out, candidate)
	}

	return out
}

func recalculatedSale(
	p project.Project,
	res calculator.Results,
	buyer project.Participant,
	saleDate time.Time,
) (portage.CoproSale, bool) {
	if p.Params.RenovationStartDate == nil || buyer.Surface <= 0 || res.TotalSurface <= 0 {
		return portage.CoproSale{}, false
	}

	totalProjectCost := res.Totals.Purchase + res.Totals.DroitEnregistrements + res.Totals.Construction

	var renovation float64
	for _, r := range res.Participants {
		renovation += r.PersonalRenovationCost
	}

	if totalProjectCost <= 0 || renovation <= 0 {
		return portage.CoproSale{}, false
	}

	sale, err := portage.PriceCoproSale(
		buyer.Surface,
		totalProjectCost,
		res.TotalSurface,
		portage.YearsHeld(p.DeedDate, saleDate),
		p.Formula,
		0,
		&portage.RenovationExclusion{
			StartDate:  project.Day(*p.Params.RenovationStartDate),
			SaleDate:   saleDate,
			TotalCosts: renovation,
		},
	)
	if err != nil {
		slog.Warn("failed to recalculate copro sale, using stored price", "buyer", buyer.Name, "error", err)
		return portage.CoproSale{}, false
	}

	return sale, true
}
