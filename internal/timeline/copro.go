package timeline

import (
	"time"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

// CoproSnapshot is the copropriété inventory after an event date.
type CoproSnapshot struct {
	Date            time.Time
	AvailableLots   int
	TotalSurface    float64
	SoldThisDate    []string
	ReserveIncrease float64
	ColorZone       int
}

// CoproSnapshots tracks lots and surface left to the copropriété. A snapshot
// is emitted at the first date and whenever the inventory changes.
func CoproSnapshots(p project.Project, res calculator.Results) []CoproSnapshot {
	lots := p.Params.MaxTotalLots
	if lots <= 0 {
		lots = len(p.Participants)
	}

	surface := res.TotalSurface

	var out []CoproSnapshot

	for idx, date := range EventDates(p) {
		var (
			sold     []string
			soldArea float64
			reserves float64
		)

		for _, participant := range p.Participants {
			if participant.Disabled || !participant.BuysFromCopro() || !participant.EntryOn(p.DeedDate).Equal(date) {
				continue
			}

			sold = append(sold, participant.Name)
			soldArea += participant.Surface
			reserves += participant.StoredPrice() * p.Formula.CoproReservesShare / 100
		}

		nextLots := max(0, lots-len(sold))
		nextSurface := max(0, surface-soldArea)

		if idx == 0 || nextLots != lots || nextSurface != surface {
			out = append(out, CoproSnapshot{
				Date:            date,
				AvailableLots:   nextLots,
				TotalSurface:    nextSurface,
				SoldThisDate:    sold,
				ReserveIncrease: reserves,
				ColorZone:       idx,
			})
		}

		lots, surface = nextLots, nextSurface
	}

	return out
}
