package portage

import (
	"fmt"
	"time"
)

// NewcomerPrice is the quotité-based price paid by a newcomer buying from
// the copropriété.
type NewcomerPrice struct {
	Quotite              float64
	BasePrice            float64
	Indexation           float64
	CarryingCostRecovery float64
	TotalPrice           float64
	YearsHeld            float64
}

// NewcomerQuotite returns surface / sum(surfaces). The surfaces are those of
// every participant counted in the building, including the newcomer.
func NewcomerQuotite(surface float64, surfaces ...float64) float64 {
	if surface <= 0 {
		return 0
	}

	var total float64
	for _, s := range surfaces {
		total += s
	}

	if total <= 0 {
		return 0
	}

	return surface / total
}

// PriceNewcomer prices a copropriété purchase of the given surface. The
// surfaces must include the newcomer's own. A nil formula uses the default
// indexation rate. Guarded inputs yield a zero price.
func PriceNewcomer(
	surface float64,
	surfaces []float64,
	totalProjectCost float64,
	deedDate, entryDate time.Time,
	f *Formula,
) NewcomerPrice {
	quotite := NewcomerQuotite(surface, surfaces...)
	if quotite == 0 {
		return NewcomerPrice{}
	}

	rate := NewcomerIndexationRate
	if f != nil {
		rate = f.IndexationRate
	}

	years := YearsBetween(deedDate, entryDate)
	base := quotite * totalProjectCost
	indexation := Indexation(base, rate, years)
	recovery := NewcomerMonthlyCarrying * years * 12 * quotite

	return NewcomerPrice{
		Quotite:              quotite,
		BasePrice:            base,
		Indexation:           indexation,
		CarryingCostRecovery: recovery,
		TotalPrice:           base + indexation + recovery,
		YearsHeld:            years,
	}
}

// CoproSale is a copropriété sale price and how it splits between the
// collective reserves and the existing owners.
type CoproSale struct {
	BasePrice            float64
	Indexation           float64
	CarryingCostRecovery float64
	TotalPrice           float64
	PricePerM2           float64
	ToReserves           float64
	ToParticipants       float64
}

// RenovationExclusion excludes renovation costs from the base price when the
// sale happens before renovations started.
type RenovationExclusion struct {
	StartDate  time.Time
	SaleDate   time.Time
	TotalCosts float64
}

// PriceCoproSale prices surfacePurchased out of the whole building.
func PriceCoproSale(
	surfacePurchased, totalProjectCost, totalBuildingSurface, yearsHeld float64,
	f Formula,
	totalCarryingCosts float64,
	exclusion *RenovationExclusion,
) (CoproSale, error) {
	if totalBuildingSurface <= 0 {
		return CoproSale{}, fmt.Errorf("total building surface %v: %w", totalBuildingSurface, ErrInvalidSurface)
	}

	if surfacePurchased <= 0 || surfacePurchased > totalBuildingSurface {
		return CoproSale{}, fmt.Errorf("surface purchased %v: %w", surfacePurchased, ErrInvalidSurface)
	}

	baseCost := totalProjectCost
	if exclusion != nil && exclusion.TotalCosts > 0 && exclusion.SaleDate.Before(exclusion.StartDate) {
		baseCost -= exclusion.TotalCosts
	}

	base := baseCost / totalBuildingSurface * surfacePurchased
	indexation := Indexation(base, f.IndexationRate, yearsHeld)
	recovery := totalCarryingCosts * (surfacePurchased / totalBuildingSurface) * f.CarryingCostRecovery / 100
	total := base + indexation + recovery
	reserves := total * f.CoproReservesShare / 100

	return CoproSale{
		BasePrice:            base,
		Indexation:           indexation,
		CarryingCostRecovery: recovery,
		TotalPrice:           total,
		PricePerM2:           total / surfacePurchased,
		ToReserves:           reserves,
		ToParticipants:       total - reserves,
	}, nil
}

// Distributable is the part of a copropriété sale handed to existing owners.
func Distributable(salePrice float64, f Formula) float64 {
	return salePrice * (1 - f.CoproReservesShare/100)
}
