package scenario

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/encoding"
	"github.com/MrJamesThe3rd/castor/internal/engine"
	"github.com/MrJamesThe3rd/castor/internal/lots"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=scenario
type Repository interface {
	CreateScenario(ctx context.Context, s *Scenario) error
	GetScenario(ctx context.Context, id uuid.UUID) (*Scenario, error)
	ListScenarios(ctx context.Context) ([]*Scenario, error)
	UpdateScenario(ctx context.Context, s *Scenario) error
	DeleteScenario(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Project project.Project
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Scenario, error) {
	if err := Validate(params.Project); err != nil {
		return nil, err
	}

	sc := &Scenario{
		Name:    params.Name,
		Project: params.Project,
	}
	if err := s.repo.CreateScenario(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	return s.repo.GetScenario(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Scenario, error) {
	return s.repo.ListScenarios(ctx)
}

func (s *Service) Update(ctx context.Context, sc *Scenario) error {
	if err := Validate(sc.Project); err != nil {
		return err
	}

	return s.repo.UpdateScenario(ctx, sc)
}

// UpdateProject replaces the name and project of a stored scenario. Sold
// dates follow the buyers' entry dates, and buyers whose portage terms
// changed get the formula price of their lot.
func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, name string, p project.Project) (*Scenario, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Participants = project.SyncSoldDates(p.Participants, p.DeedDate)
	p.Participants = repriceChanged(sc.Project, p)

	sc.Name = name
	sc.Project = p

	if err := s.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// RepricePortage sets every portage buyer's price to the formula price of
// the lot they purchase.
func (s *Service) RepricePortage(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	sc.Project.Participants = calculator.RecalculatePortagePrices(sc.Project)

	if err := s.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteScenario(ctx, id)
}

// Import stores an uploaded scenario file. The file may use any common
// charset; it is normalized to UTF-8 before decoding.
func (s *Service) Import(ctx context.Context, name string, r io.Reader) (*Scenario, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, CreateParams{Name: name, Project: doc.Project})
}

// ReadDocument decodes a scenario file in any supported charset.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := encoding.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	return Decode(data)
}

// Export writes the scenario file with its calculations and timeline.
func (s *Service) Export(ctx context.Context, id uuid.UUID) ([]byte, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	proj, err := engine.Run(sc.Project)
	if err != nil {
		return nil, err
	}

	return Encode(Document{
		Project:      sc.Project,
		Calculations: &proj.Results,
		Timeline:     &proj.Timeline,
	})
}

func (s *Service) Projection(ctx context.Context, id uuid.UUID) (*engine.Projection, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	return engine.Run(sc.Project)
}

// AddPortageLot gives a founder one more lot to hold for a future buyer.
// Unset fields take the next free id, the deed date, the founder's unit and
// the founder's computed purchase, registration and CASCO amounts. A founder
// that listed no lots first gets one lot covering their current surface.
func (s *Service) AddPortageLot(ctx context.Context, id uuid.UUID, founder string, lot project.Lot) (*Scenario, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &sc.Project

	idx := p.Find(founder)
	if idx < 0 || !p.Participants[idx].IsFounder {
		return nil, fmt.Errorf("%w: %s is not a founder", ErrUnknownParticipant, founder)
	}

	if v := lots.ValidateAddPortageLot(p.Participants, p.CoproLots, p.Params.MaxTotalLots); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrLotLimit, v.Error)
	}

	participant := &p.Participants[idx]
	participant.Lots = slices.Clone(participant.Lots)

	if len(participant.Lots) == 0 {
		participant.Lots = append(participant.Lots, project.Lot{
			ID:           nextLotID(*p),
			Surface:      participant.Surface,
			UnitID:       participant.UnitID,
			AcquiredDate: p.DeedDate,
		})
	}

	lot.IsPortage = true
	if lot.ID == 0 {
		lot.ID = nextLotID(*p)
	}

	if lot.UnitID == 0 {
		lot.UnitID = participant.UnitID
	}

	if lot.AcquiredDate.IsZero() {
		lot.AcquiredDate = p.DeedDate
	}

	if lot.OriginalPrice == 0 && lot.OriginalNotaryFees == 0 && lot.OriginalConstructionCost == 0 {
		if r, ok := calculator.Calculate(*p).Participant(founder); ok {
			lot.OriginalPrice = r.PurchaseShare
			lot.OriginalNotaryFees = r.DroitEnregistrements
			lot.OriginalConstructionCost = r.Casco
		}
	}

	participant.Lots = append(participant.Lots, lot)
	participant.Surface += lot.Surface
	participant.Quantity = participant.Units() + 1

	if err := s.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// RemovePortageLot takes a portage lot back from a founder.
func (s *Service) RemovePortageLot(ctx context.Context, id uuid.UUID, founder string, lotID int) (*Scenario, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := sc.Project.Find(founder)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, founder)
	}

	participant := &sc.Project.Participants[idx]

	lot, found := participant.Lot(lotID)
	if !found || !lot.IsPortage {
		return nil, fmt.Errorf("%w: %s has no portage lot %d", ErrNotFound, founder, lotID)
	}

	participant.Lots = slices.DeleteFunc(slices.Clone(participant.Lots), func(l project.Lot) bool { return l.ID == lotID })
	participant.Surface = max(0, participant.Surface-lot.Surface)
	participant.Quantity = max(1, participant.Units()-1)

	if err := s.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// AddCoproLot puts one more lot in the copropriété inventory.
func (s *Service) AddCoproLot(ctx context.Context, id uuid.UUID, lot project.CoproLot) (*Scenario, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &sc.Project

	if v := lots.ValidateAddCoproLot(p.Participants, p.CoproLots, p.Params.MaxTotalLots); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrLotLimit, v.Error)
	}

	if lot.ID == 0 {
		lot.ID = nextLotID(*p)
	}

	if lot.AcquiredDate.IsZero() {
		lot.AcquiredDate = p.DeedDate
	}

	p.CoproLots = append(slices.Clone(p.CoproLots), lot)

	if err := s.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

func (s *Service) AvailableLots(ctx context.Context, id uuid.UUID) ([]lots.Available, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	res := calculator.Calculate(sc.Project)

	return lots.AvailableLots(sc.Project, &res), nil
}

// Paybacks lists what the named participant will recover from later buyers.
func (s *Service) Paybacks(ctx context.Context, id uuid.UUID, name string) (timeline.Paybacks, error) {
	sc, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return timeline.Paybacks{}, err
	}

	if sc.Project.Find(name) < 0 {
		return timeline.Paybacks{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
	}

	return timeline.ExpectedPaybacks(sc.Project, calculator.Calculate(sc.Project), name), nil
}

// Validate checks the project invariants, then every two-loan setup against
// the renovation cost computed for its participant.
func Validate(p project.Project) error {
	problems := project.Validate(p)

	res := calculator.Calculate(p)
	for i, participant := range p.Participants {
		if !participant.UseTwoLoans || participant.Disabled {
			continue
		}

		errs := project.ValidateTwoLoans(participant, res.Participants[i].PersonalRenovationCost)
		for _, msg := range []string{errs.RenovationAmount, errs.LoanDelay} {
			if msg != "" {
				problems = append(problems, fmt.Sprintf("participant %q: %s", participant.Name, msg))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}

	return nil
}

// repriceChanged reprices the portage buyers of next whose purchase terms
// differ from prev. Every buyer is repriced when the formula or the deed
// date changed.
func repriceChanged(prev, next project.Project) []project.Participant {
	all := prev.Formula != next.Formula || !prev.DeedDate.Equal(next.DeedDate)

	out := calculator.RecalculatePortagePrices(next)
	for i, buyer := range next.Participants {
		if !all && !portageTermsChanged(prev, buyer) {
			out[i] = buyer
		}
	}

	return out
}

func portageTermsChanged(prev project.Project, buyer project.Participant) bool {
	purchase, ok := buyer.PortageFrom()
	if !ok {
		return false
	}

	idx := prev.Find(buyer.Name)
	if idx < 0 {
		return true
	}

	before := prev.Participants[idx]

	was, ok := before.PortageFrom()
	if !ok || was.Seller != purchase.Seller || was.Lot != purchase.Lot {
		return true
	}

	return !before.EntryOn(prev.DeedDate).Equal(buyer.EntryOn(prev.DeedDate))
}

func nextLotID(p project.Project) int {
	var highest int

	for _, participant := range p.Participants {
		for _, l := range participant.Lots {
			highest = max(highest, l.ID)
		}
	}

	for _, l := range p.CoproLots {
		highest = max(highest, l.ID)
	}

	return highest + 1
}
