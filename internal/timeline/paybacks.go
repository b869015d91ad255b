package timeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

type PaybackType string

const (
	PaybackPortage PaybackType = "portage"
	PaybackCopro   PaybackType = "copro"
)

// Payback is money a participant will receive from a later buyer.
type Payback struct {
	Date        time.Time
	Buyer       string
	Amount      float64
	Type        PaybackType
	Description string
}

// Paybacks lists a participant's expected paybacks by date.
type Paybacks struct {
	Items []Payback
	Total float64
}

// ExpectedPaybacks lists what the named participant recovers: the price of
// each portage lot they sell, and their share of every copropriété sale they
// are eligible for.
func ExpectedPaybacks(p project.Project, res calculator.Results, name string) Paybacks {
	var out Paybacks

	for _, buyer := range p.Participants {
		if buyer.Disabled || buyer.Purchase == nil {
			continue
		}

		switch purchase := buyer.Purchase.(type) {
		case project.PortagePurchase:
			if purchase.Seller != name {
				continue
			}

			out.Items = append(out.Items, Payback{
				Date:        buyer.EntryOn(p.DeedDate),
				Buyer:       buyer.Name,
				Amount:      buyer.StoredPrice(),
				Type:        PaybackPortage,
				Description: "Achat de lot portage",
			})
		case project.CoproPurchase:
			r := Redistribute(p, res, buyer)

			for _, c := range r.Credits {
				if c.Name != name || c.Amount <= 0 {
					continue
				}

				out.Items = append(out.Items, Payback{
					Date:        r.Date,
					Buyer:       buyer.Name,
					Amount:      c.Amount,
					Type:        PaybackCopro,
					Description: fmt.Sprintf("Redistribution vente copropriété (quotité: %.1f%%)", c.Quotite*100),
				})
			}
		}
	}

	slices.SortStableFunc(out.Items, func(a, b Payback) int { return a.Date.Compare(b.Date) })

	for _, item := range out.Items {
		out.Total += item.Amount
	}

	return out
}
