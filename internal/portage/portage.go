// Package portage prices lots held by a founder (or by the copropriété) on
// behalf of a future buyer: compound indexation, carrying costs and the
// resulting resale price.
package portage

import (
	"errors"
	"math"
	"time"
)

const (
	// DaysPerYear accounts for leap years.
	DaysPerYear = 365.25
	// DaysPerMonth is the average month length (365.25 / 12).
	DaysPerMonth = 30.44

	// YearlyPropertyTax is the précompte immobilier carried by the holder.
	YearlyPropertyTax = 388.38
	// YearlyInsurance is the building insurance carried by the holder.
	YearlyInsurance = 2000.0

	// NewcomerMonthlyCarrying is the flat monthly carrying estimate used for
	// copropriété newcomers.
	NewcomerMonthlyCarrying = 500.0
	// NewcomerIndexationRate applies when no formula is supplied.
	NewcomerIndexationRate = 2.0
)

var ErrInvalidSurface = errors.New("invalid surface")

// Formula holds the project-wide portage parameters, all in percent.
type Formula struct {
	IndexationRate       float64
	CarryingCostRecovery float64
	AverageInterestRate  float64
	CoproReservesShare   float64
}

// DefaultFormula returns the parameters used when a project does not set its own.
func DefaultFormula() Formula {
	return Formula{
		IndexationRate:       2.0,
		CarryingCostRecovery: 100,
		AverageInterestRate:  4.5,
		CoproReservesShare:   30,
	}
}

// Carrying is the monthly and cumulated cost of holding a lot.
type Carrying struct {
	MonthlyInterest  float64
	MonthlyTax       float64
	MonthlyInsurance float64
	TotalMonthly     float64
	TotalForPeriod   float64
}

// CarryingCosts computes interest on the part of the acquisition not covered
// by capital, plus fixed tax and insurance, over monthsHeld months.
func CarryingCosts(baseAcquisition, capitalApplied, monthsHeld, annualInterestRate float64) Carrying {
	if monthsHeld <= 0 {
		return Carrying{}
	}

	var interest float64
	if loan := baseAcquisition - capitalApplied; loan > 0 {
		interest = loan * annualInterestRate / 100 / 12
	}

	c := Carrying{
		MonthlyInterest:  interest,
		MonthlyTax:       YearlyPropertyTax / 12,
		MonthlyInsurance: YearlyInsurance / 12,
	}
	c.TotalMonthly = c.MonthlyInterest + c.MonthlyTax + c.MonthlyInsurance
	c.TotalForPeriod = c.TotalMonthly * monthsHeld

	return c
}

// Indexation returns the compound markup base*((1+rate/100)^years - 1).
// Negative years yield a negative markup.
func Indexation(base, ratePercent, years float64) float64 {
	return base * (math.Pow(1+ratePercent/100, years) - 1)
}

// LotPrice is the price of a lot sold out of portage.
type LotPrice struct {
	BasePrice            float64
	SurfaceImposed       bool
	Indexation           float64
	CarryingCostRecovery float64
	FeesRecovery         float64
	Renovations          float64
	TotalPrice           float64
	PricePerM2           float64
}

// PriceLot prices a whole founder-held lot from its original acquisition costs.
// The surface is imposed by the lot, so PricePerM2 is left at zero.
func PriceLot(
	originalPrice, originalNotaryFees, originalConstructionCost, yearsHeld float64,
	f Formula,
	carrying Carrying,
	renovationsRecovered float64,
) LotPrice {
	base := originalPrice + originalNotaryFees + originalConstructionCost
	indexation := Indexation(base, f.IndexationRate, yearsHeld)
	recovery := carrying.TotalForPeriod * f.CarryingCostRecovery / 100

	return LotPrice{
		BasePrice:            base,
		SurfaceImposed:       true,
		Indexation:           indexation,
		CarryingCostRecovery: recovery,
		Renovations:          renovationsRecovered,
		TotalPrice:           base + indexation + recovery + renovationsRecovered,
	}
}

// PriceLotFromCopro prices a freely chosen surface out of a copropriété lot.
// Every component scales with chosen/total, so the result is linear in surface.
func PriceLotFromCopro(
	chosenSurface, totalSurface, totalBasePrice, yearsHeld float64,
	f Formula,
	totalCarryingCosts float64,
) (LotPrice, error) {
	if totalSurface <= 0 || chosenSurface <= 0 || chosenSurface > totalSurface {
		return LotPrice{}, ErrInvalidSurface
	}

	ratio := chosenSurface / totalSurface
	base := totalBasePrice * ratio
	indexation := Indexation(base, f.IndexationRate, yearsHeld)
	recovery := totalCarryingCosts * ratio * f.CarryingCostRecovery / 100
	total := base + indexation + recovery

	return LotPrice{
		BasePrice:            base,
		Indexation:           indexation,
		CarryingCostRecovery: recovery,
		TotalPrice:           total,
		PricePerM2:           total / chosenSurface,
	}, nil
}

// YearsHeld is the number of 365.25-day years between two calendar days.
// It never goes below zero.
func YearsHeld(from, to time.Time) float64 {
	from, to = day(from), day(to)
	if to.Before(from) {
		return 0
	}

	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// YearsBetween is the signed counterpart of YearsHeld on raw instants.
func YearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// MonthsBetween counts average-length months between two instants.
func MonthsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerMonth
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
