// Package lots guards the project-wide lot ceiling and lists the lots a
// newcomer can still buy.
package lots

import (
	"fmt"

	"github.com/MrJamesThe3rd/castor/internal/project"
)

// DefaultMaxTotalLots applies when a project does not set its own ceiling.
const DefaultMaxTotalLots = 10

// Validation is the outcome of a lot addition check. Error is set when the
// addition must be refused.
type Validation struct {
	Valid bool
	Error string
}

// CountParticipantLots counts owned lots, falling back to the legacy
// quantity for participants that list none.
func CountParticipantLots(participants []project.Participant) int {
	var total int
	for _, p := range participants {
		if len(p.Lots) > 0 {
			total += len(p.Lots)
			continue
		}

		total += p.Units()
	}

	return total
}

func CountCoproLots(coproLots []project.CoproLot) int {
	return len(coproLots)
}

func CountTotal(participants []project.Participant, coproLots []project.CoproLot) int {
	return CountParticipantLots(participants) + CountCoproLots(coproLots)
}

// WouldExceed reports whether adding lotsToAdd goes past the ceiling.
func WouldExceed(currentTotal, maxTotalLots, lotsToAdd int) bool {
	return currentTotal+lotsToAdd > ceiling(maxTotalLots)
}

func RemainingCapacity(currentTotal, maxTotalLots int) int {
	return max(0, ceiling(maxTotalLots)-currentTotal)
}

// ValidateAddPortageLot checks that a founder can declare one more portage lot.
func ValidateAddPortageLot(participants []project.Participant, coproLots []project.CoproLot, maxTotalLots int) Validation {
	return validateAdd("Cannot add lot", participants, coproLots, maxTotalLots)
}

// ValidateAddCoproLot checks that the copropriété can hold one more lot.
func ValidateAddCoproLot(participants []project.Participant, coproLots []project.CoproLot, maxTotalLots int) Validation {
	return validateAdd("Cannot add copropriété lot", participants, coproLots, maxTotalLots)
}

func validateAdd(prefix string, participants []project.Participant, coproLots []project.CoproLot, maxTotalLots int) Validation {
	current := CountTotal(participants, coproLots)
	if !WouldExceed(current, maxTotalLots, 1) {
		return Validation{Valid: true}
	}

	remaining := RemainingCapacity(current, maxTotalLots)

	unit := "lots"
	if remaining == 1 {
		unit = "lot"
	}

	return Validation{
		Error: fmt.Sprintf("%s: Maximum of %d total lots reached. %d %s remaining.", prefix, ceiling(maxTotalLots), remaining, unit),
	}
}

func ceiling(maxTotalLots int) int {
	if maxTotalLots <= 0 {
		return DefaultMaxTotalLots
	}

	return maxTotalLots
}
