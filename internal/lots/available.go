package lots

import (
	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

type Source string

const (
	SourceFounder Source = "FOUNDER"
	SourceCopro   Source = "COPRO"
)

// Available is a lot a newcomer can buy. Founder lots come with an imposed
// surface and their original costs; copropriété lots can be split.
type Available struct {
	LotID          int
	Surface        float64
	Source         Source
	SurfaceImposed bool

	FromParticipant string

	TotalCoproSurface float64

	OriginalPrice            float64
	OriginalNotaryFees       float64
	OriginalConstructionCost float64
}

// AvailableLots lists unsold founder portage lots followed by unsold
// copropriété lots. When res is given, founder lots missing any original cost
// take the founder's per-lot share of the computed breakdown.
func AvailableLots(p project.Project, res *calculator.Results) []Available {
	var out []Available

	for i, participant := range p.Participants {
		if !participant.IsFounder {
			continue
		}

		for _, lot := range participant.Lots {
			if !lot.IsPortage || lot.SoldDate != nil {
				continue
			}

			a := Available{
				LotID:                    lot.ID,
				Surface:                  lot.Surface,
				Source:                   SourceFounder,
				SurfaceImposed:           true,
				FromParticipant:          participant.Name,
				OriginalPrice:            lot.OriginalPrice,
				OriginalNotaryFees:       lot.OriginalNotaryFees,
				OriginalConstructionCost: lot.OriginalConstructionCost,
			}

			if lot.AllocatedSurface > 0 {
				a.Surface = lot.AllocatedSurface
			}

			incomplete := lot.OriginalPrice == 0 || lot.OriginalNotaryFees == 0 || lot.OriginalConstructionCost == 0
			if res != nil && i < len(res.Participants) && incomplete {
				breakdown := res.Participants[i]
				quantity := float64(participant.Units())

				a.OriginalPrice = breakdown.PurchaseShare / quantity
				a.OriginalNotaryFees = breakdown.DroitEnregistrements / quantity
				a.OriginalConstructionCost = breakdown.ConstructionCost / quantity
			}

			out = append(out, a)
		}
	}

	for _, lot := range p.CoproLots {
		if lot.SoldDate != nil {
			continue
		}

		out = append(out, Available{
			LotID:             lot.ID,
			Surface:           lot.Surface,
			Source:            SourceCopro,
			TotalCoproSurface: lot.Surface,
		})
	}

	return out
}
