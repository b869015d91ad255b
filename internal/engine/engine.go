// Package engine runs every computation of a project in one pass.
package engine

import (
	"fmt"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/fraisgeneraux"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

type Projection struct {
	Results        calculator.Results
	Timeline       timeline.Timeline
	CoproSnapshots []timeline.CoproSnapshot
	FraisGeneraux  fraisgeneraux.Ledger
}

// Run recomputes the projection from scratch. It is safe to call
// concurrently with distinct or shared inputs.
func Run(p project.Project) (*Projection, error) {
	res := calculator.Calculate(p)

	tl, err := timeline.Generate(p, res)
	if err != nil {
		return nil, fmt.Errorf("generating timeline: %w", err)
	}

	return &Projection{
		Results:        res,
		Timeline:       tl,
		CoproSnapshots: timeline.CoproSnapshots(p, res),
		FraisGeneraux:  fraisgeneraux.Build(p),
	}, nil
}
