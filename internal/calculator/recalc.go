package calculator

import (
	"math"
	"time"

	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

// PortagePrice reprices the lot a buyer purchases from a founder at the
// formula's average interest rate, assuming the seller applied no capital.
// It reports false when the buyer has no portage purchase or the lot is not
// a portage lot of the seller.
func PortagePrice(buyer, seller project.Participant, deed time.Time, f portage.Formula) (portage.LotPrice, bool) {
	purchase, ok := buyer.PortageFrom()
	if !ok {
		return portage.LotPrice{}, false
	}

	lot, found := seller.Lot(purchase.Lot)
	if !found || !lot.IsPortage {
		return portage.LotPrice{}, false
	}

	acquired := lot.AcquiredDate
	if acquired.IsZero() {
		acquired = seller.EntryOn(deed)
	}

	years := portage.YearsHeld(acquired, buyer.EntryOn(deed))
	base := lot.OriginalPrice + lot.OriginalNotaryFees + lot.OriginalConstructionCost
	carrying := portage.CarryingCosts(base, 0, math.Round(years*12), f.AverageInterestRate)

	return portage.PriceLot(lot.OriginalPrice, lot.OriginalNotaryFees, lot.OriginalConstructionCost, years, f, carrying, 0), true
}

// RecalculatePortagePrices returns a copy of the participants where every
// portage buyer carries the current price of the lot they purchase.
func RecalculatePortagePrices(p project.Project) []project.Participant {
	out := make([]project.Participant, len(p.Participants))
	copy(out, p.Participants)

	for i, buyer := range out {
		purchase, ok := buyer.PortageFrom()
		if !ok {
			continue
		}

		idx := p.Find(purchase.Seller)
		if idx < 0 {
			continue
		}

		price, ok := PortagePrice(buyer, p.Participants[idx], p.DeedDate, p.Formula)
		if !ok {
			continue
		}

		total := price.TotalPrice
		purchase.PurchasePrice = &total
		out[i].Purchase = purchase
	}

	return out
}
