package scenario

import (
	"math"

	"github.com/MrJamesThe3rd/castor/internal/lots"
)

// Prices applied to common works stored as a bare amount.
const (
	defaultCascoPricePerSqm         = 600.0
	defaultParachevementPricePerSqm = 200.0
)

// migrateParticipant upgrades a v2 participant. In v2, capitalForLoan1 was
// the part of the capital put into loan 1; with two loans it becomes the
// signature capital. Both v2-only fields are dropped.
func migrateParticipant(p participantDTO) participantDTO {
	if p.CapitalForLoan1 != nil && p.UseTwoLoans {
		p.CapitalApporte = *p.CapitalForLoan1
	}

	p.CapitalForLoan1 = nil
	p.Loan2IncludesParachevements = nil

	return p
}

// migrateTravauxItem converts an item stored as {label, amount} into sqm
// pricing at the default rates. The amount is kept.
func migrateTravauxItem(item travauxItemDTO) travauxItemDTO {
	if item.Amount == nil || item.Sqm != nil || item.CascoPricePerSqm != nil || item.ParachevementPricePerSqm != nil {
		return item
	}

	sqm := math.Round(*item.Amount / (defaultCascoPricePerSqm + defaultParachevementPricePerSqm))

	item.Sqm = new(sqm)
	item.CascoPricePerSqm = new(defaultCascoPricePerSqm)
	item.ParachevementPricePerSqm = new(defaultParachevementPricePerSqm)

	return item
}

func migrateTravauxCommuns(tc *travauxCommunsDTO) *travauxCommunsDTO {
	if tc == nil {
		return nil
	}

	out := &travauxCommunsDTO{Enabled: tc.Enabled, Items: make([]travauxItemDTO, len(tc.Items))}
	for i, item := range tc.Items {
		out.Items[i] = migrateTravauxItem(item)
	}

	return out
}

// migrateProjectParams brings params to the current schema: a lot ceiling
// is always set and common works use sqm pricing.
func migrateProjectParams(p paramsDTO) paramsDTO {
	if p.MaxTotalLots <= 0 {
		p.MaxTotalLots = lots.DefaultMaxTotalLots
	}

	p.TravauxCommuns = migrateTravauxCommuns(p.TravauxCommuns)

	return p
}
