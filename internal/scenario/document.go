package scenario

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

// Document is a scenario file. Calculations and Timeline are only written
// on export and are never read back: they are recomputed from the project.
type Document struct {
	Version        int
	ReleaseVersion string
	Timestamp      time.Time
	Project        project.Project

	Calculations *calculator.Results
	Timeline     *timeline.Timeline
}

type wireDocument struct {
	Version           int                      `json:"version"`
	ReleaseVersion    string                   `json:"releaseVersion"`
	Timestamp         string                   `json:"timestamp"`
	Participants      []participantDTO         `json:"participants"`
	ProjectParams     *paramsDTO               `json:"projectParams"`
	DeedDate          date                     `json:"deedDate"`
	PortageFormula    *formulaDTO              `json:"portageFormula,omitempty"`
	UnitDetails       map[int]unitCostDTO      `json:"unitDetails,omitempty"`
	CoproLots         []coproLotDTO            `json:"coproLots,omitempty"`
	TimelineSnapshots map[string][]snapshotDTO `json:"timelineSnapshots,omitempty"`
	Calculations      *calculationsDTO         `json:"calculations,omitempty"`
}

// Encode writes the document in the current file format.
func Encode(doc Document) ([]byte, error) {
	ts := doc.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	p := doc.Project
	params := paramsFromDomain(p.Params)

	w := wireDocument{
		Version:        SchemaVersion,
		ReleaseVersion: ReleaseVersion,
		Timestamp:      ts.UTC().Format(time.RFC3339Nano),
		Participants:   make([]participantDTO, len(p.Participants)),
		ProjectParams:  &params,
		DeedDate:       newDate(p.DeedDate),
		PortageFormula: formulaFromDomain(p.Formula),
	}

	for i, participant := range p.Participants {
		w.Participants[i] = participantFromDomain(participant)
	}

	if len(p.UnitDetails) > 0 {
		w.UnitDetails = make(map[int]unitCostDTO, len(p.UnitDetails))
		for id, u := range p.UnitDetails {
			w.UnitDetails[id] = unitCostDTO{Casco: u.Casco, Parachevements: u.Parachevements}
		}
	}

	for _, c := range p.CoproLots {
		w.CoproLots = append(w.CoproLots, coproLotFromDomain(c))
	}

	if doc.Calculations != nil {
		w.Calculations = calculationsFromDomain(*doc.Calculations)
	}

	if doc.Timeline != nil {
		w.TimelineSnapshots = snapshotsFromDomain(*doc.Timeline)
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}

	return data, nil
}

// Decode reads a scenario file, rejects files from an incompatible release
// and upgrades older shapes to the current model. It never returns a
// partially decoded document.
func Decode(data []byte) (*Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if w.Participants == nil || w.ProjectParams == nil {
		return nil, ErrMissingData
	}

	if !IsCompatibleVersion(w.ReleaseVersion) {
		if w.ReleaseVersion == "" {
			return nil, fmt.Errorf("%w: the file has no version number (old format)", ErrIncompatibleVersion)
		}

		return nil, fmt.Errorf("%w: the file was created with version %s, current version is %s",
			ErrIncompatibleVersion, w.ReleaseVersion, ReleaseVersion)
	}

	participants := make([]project.Participant, len(w.Participants))
	for i, p := range w.Participants {
		participants[i] = migrateParticipant(p).toDomain()
	}

	deed := w.DeedDate.Time

	doc := &Document{
		Version:        w.Version,
		ReleaseVersion: w.ReleaseVersion,
		Project: project.Project{
			Participants: project.SyncSoldDates(participants, deed),
			Params:       migrateProjectParams(*w.ProjectParams).toDomain(),
			DeedDate:     deed,
			Formula:      w.PortageFormula.toDomain(),
		},
	}

	if ts, err := time.Parse(time.RFC3339Nano, w.Timestamp); err == nil {
		doc.Timestamp = ts
	}

	if len(w.UnitDetails) > 0 {
		doc.Project.UnitDetails = make(project.UnitDetails, len(w.UnitDetails))
		for id, u := range w.UnitDetails {
			doc.Project.UnitDetails[id] = project.UnitCost{Casco: u.Casco, Parachevements: u.Parachevements}
		}
	}

	for _, c := range w.CoproLots {
		doc.Project.CoproLots = append(doc.Project.CoproLots, c.toDomain())
	}

	return doc, nil
}
