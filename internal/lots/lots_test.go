package lots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/lots"
	"github.com/MrJamesThe3rd/castor/internal/project"
)

func participantsWithLots(n int) []project.Participant {
	owned := make([]project.Lot, n)
	for i := range owned {
		owned[i] = project.Lot{ID: i + 1}
	}

	return []project.Participant{{Name: "Alice", Lots: owned}}
}

func TestCountParticipantLots(t *testing.T) {
	participants := []project.Participant{
		{Name: "A", Lots: []project.Lot{{ID: 1}, {ID: 2}}},
		{Name: "B", Quantity: 3},
		{Name: "C"},
	}

	assert.Equal(t, 6, lots.CountParticipantLots(participants))
	assert.Equal(t, 8, lots.CountTotal(participants, []project.CoproLot{{ID: 10}, {ID: 11}}))
}

func TestRemainingCapacity(t *testing.T) {
	assert.Equal(t, 3, lots.RemainingCapacity(7, 0))
	assert.Equal(t, 0, lots.RemainingCapacity(12, 10))
	assert.True(t, lots.WouldExceed(10, 10, 1))
	assert.False(t, lots.WouldExceed(9, 10, 1))
}

func TestValidateAdd(t *testing.T) {
	type args struct {
		participants []project.Participant
		coproLots    []project.CoproLot
		max          int
	}

	type testCase struct {
		name      string
		args      args
		validate  func([]project.Participant, []project.CoproLot, int) lots.Validation
		wantValid bool
		wantError string
	}

	tests := []testCase{
		{
			name:      "PortageUnderDefaultCeiling",
			args:      args{participants: participantsWithLots(9)},
			validate:  lots.ValidateAddPortageLot,
			wantValid: true,
		},
		{
			name:      "PortageAtDefaultCeiling",
			args:      args{participants: participantsWithLots(10)},
			validate:  lots.ValidateAddPortageLot,
			wantError: "Cannot add lot: Maximum of 10 total lots reached. 0 lots remaining.",
		},
		{
			name:      "CoproAtCustomCeiling",
			args:      args{participants: participantsWithLots(3), coproLots: []project.CoproLot{{ID: 4}}, max: 4},
			validate:  lots.ValidateAddCoproLot,
			wantError: "Cannot add copropriété lot: Maximum of 4 total lots reached. 0 lots remaining.",
		},
		{
			name:      "CoproUnderCustomCeiling",
			args:      args{participants: participantsWithLots(3), max: 12},
			validate:  lots.ValidateAddCoproLot,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.validate(tt.args.participants, tt.args.coproLots, tt.args.max)

			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantError, got.Error)
		})
	}
}

func TestAvailableLots(t *testing.T) {
	sold := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	p := project.Project{
		Participants: []project.Participant{
			{
				Name:      "Alice",
				IsFounder: true,
				Lots: []project.Lot{
					{ID: 1, Surface: 80},
					{ID: 2, Surface: 40, AllocatedSurface: 35, IsPortage: true},
					{ID: 3, Surface: 40, IsPortage: true, SoldDate: &sold},
					{ID: 4, Surface: 20, IsPortage: true, OriginalPrice: 1, OriginalNotaryFees: 2, OriginalConstructionCost: 3},
				},
			},
			{Name: "Bob", Lots: []project.Lot{{ID: 5, IsPortage: true}}},
		},
		CoproLots: []project.CoproLot{
			{ID: 10, Surface: 60},
			{ID: 11, Surface: 30, SoldDate: &sold},
		},
	}

	res := &calculator.Results{Participants: []calculator.ParticipantResult{
		{Name: "Alice", PurchaseShare: 90000, DroitEnregistrements: 11250, ConstructionCost: 60000},
		{Name: "Bob"},
	}}

	got := lots.AvailableLots(p, res)
	require.Len(t, got, 3)

	assert.Equal(t, 2, got[0].LotID)
	assert.Equal(t, 35.0, got[0].Surface)
	assert.Equal(t, lots.SourceFounder, got[0].Source)
	assert.True(t, got[0].SurfaceImposed)
	assert.Equal(t, "Alice", got[0].FromParticipant)
	assert.Equal(t, 90000.0, got[0].OriginalPrice)
	assert.Equal(t, 11250.0, got[0].OriginalNotaryFees)

	assert.Equal(t, 4, got[1].LotID)
	assert.Equal(t, 1.0, got[1].OriginalPrice)

	assert.Equal(t, 10, got[2].LotID)
	assert.Equal(t, lots.SourceCopro, got[2].Source)
	assert.False(t, got[2].SurfaceImposed)
	assert.Equal(t, 60.0, got[2].TotalCoproSurface)
}
