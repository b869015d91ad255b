package project_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/castor/internal/project"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var deed = date(2026, 2, 1)

func TestParticipant_EntryOn(t *testing.T) {
	type testCase struct {
		name        string
		participant project.Participant
		want        time.Time
	}

	tests := []testCase{
		{
			name:        "FounderDefaultsToDeed",
			participant: project.Participant{IsFounder: true},
			want:        deed,
		},
		{
			name:        "NewcomerDefaultsToDayAfterDeed",
			participant: project.Participant{},
			want:        date(2026, 2, 2),
		},
		{
			name:        "ExplicitDateTruncated",
			participant: project.Participant{EntryDate: ptr(time.Date(2027, 3, 4, 15, 0, 0, 0, time.UTC))},
			want:        date(2027, 3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.participant.EntryOn(deed))
		})
	}
}

func TestParticipant_ActiveOn(t *testing.T) {
	p := project.Participant{EntryDate: ptr(date(2026, 6, 1)), ExitDate: ptr(date(2027, 6, 1))}

	assert.False(t, p.ActiveOn(date(2026, 5, 31), deed))
	assert.True(t, p.ActiveOn(date(2026, 6, 1), deed))
	assert.True(t, p.ActiveOn(date(2027, 5, 31), deed))
	assert.False(t, p.ActiveOn(date(2027, 6, 1), deed))
}

func TestNewPurchase(t *testing.T) {
	copro := project.NewPurchase(project.CoproName, 7, ptr(150000.0))
	assert.IsType(t, project.CoproPurchase{}, copro)
	assert.Equal(t, project.CoproName, project.SellerName(copro))

	price, ok := copro.Price()
	assert.True(t, ok)
	assert.Equal(t, 150000.0, price)

	portage := project.NewPurchase("Alice", 3, nil)
	assert.IsType(t, project.PortagePurchase{}, portage)
	assert.Equal(t, "Alice", project.SellerName(portage))
	assert.Equal(t, 3, portage.LotID())

	_, ok = portage.Price()
	assert.False(t, ok)
}

func TestParams_TravauxCommuns(t *testing.T) {
	params := project.Params{
		BatimentFondationConservatoire: 50000,
		BatimentFondationComplete:      200000,
		BatimentCoproConservatoire:     50000,
		TravauxCommuns: &project.TravauxCommuns{
			Enabled: true,
			Items: []project.TravauxCommunsItem{
				{Label: "Toiture", Sqm: 100, CascoPricePerSqm: 600, ParachevementPricePerSqm: 200},
				{Label: "Ancien", Amount: ptr(12000.0)},
			},
		},
	}

	assert.Equal(t, 300000.0, params.BaseTravauxCommuns())
	assert.Equal(t, 300000.0+80000+12000, params.TotalTravauxCommuns())
	assert.Equal(t, 300000.0+60000, params.TravauxCommunsCasco())

	params.TravauxCommuns.Enabled = false
	assert.Equal(t, 300000.0, params.TotalTravauxCommuns())
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		project project.Project
		want    int
	}

	seller := project.Participant{
		Name:      "Alice",
		IsFounder: true,
		Surface:   150,
		Lots: []project.Lot{
			{ID: 1, Surface: 100},
			{ID: 2, Surface: 50, IsPortage: true, SoldDate: ptr(date(2027, 1, 1))},
		},
	}

	buyer := project.Participant{
		Name:      "Bob",
		EntryDate: ptr(date(2027, 1, 1)),
		Surface:   50,
		Purchase:  project.PortagePurchase{Seller: "Alice", Lot: 2},
	}

	tests := []testCase{
		{
			name:    "Consistent",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{seller, buyer}},
			want:    0,
		},
		{
			name: "DuplicateName",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Alice", IsFounder: true}, {Name: "Alice", IsFounder: true},
			}},
			want: 1,
		},
		{
			name: "SurfaceMismatch",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Alice", IsFounder: true, Surface: 90, Lots: []project.Lot{{ID: 1, Surface: 100}}},
			}},
			want: 1,
		},
		{
			name: "UnknownSeller",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Bob", EntryDate: ptr(date(2027, 1, 1)), Purchase: project.PortagePurchase{Seller: "Zoe", Lot: 1}},
			}},
			want: 1,
		},
		{
			name: "SoldDateMismatch",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				seller,
				func() project.Participant {
					b := buyer
					b.EntryDate = ptr(date(2027, 2, 1))
					return b
				}(),
			}},
			want: 1,
		},
		{
			name: "NewcomerWithoutEntryDate",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Alice", IsFounder: true},
				{Name: "Bob"},
			}},
			want: 1,
		},
		{
			name: "DuplicateLotID",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Alice", IsFounder: true, Surface: 150, Lots: []project.Lot{{ID: 1, Surface: 100}, {ID: 1, Surface: 50}}},
			}},
			want: 1,
		},
		{
			name: "SameLotIDAcrossSellers",
			project: project.Project{DeedDate: deed, Participants: []project.Participant{
				{Name: "Alice", IsFounder: true, Surface: 100, Lots: []project.Lot{{ID: 1, Surface: 100}}},
				{Name: "Bob", IsFounder: true, Surface: 80, Lots: []project.Lot{{ID: 1, Surface: 80}}},
			}},
			want: 0,
		},
		{
			name: "DuplicateCoproLotID",
			project: project.Project{
				DeedDate:     deed,
				Participants: []project.Participant{{Name: "Alice", IsFounder: true}},
				CoproLots:    []project.CoproLot{{ID: 10, Surface: 60}, {ID: 10, Surface: 40}},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, project.Validate(tt.project), tt.want)
		})
	}
}

func TestSyncSoldDates(t *testing.T) {
	participants := []project.Participant{
		{Name: "Alice", IsFounder: true, Lots: []project.Lot{{ID: 1}, {ID: 2, IsPortage: true}}},
		{Name: "Bob", EntryDate: ptr(date(2027, 5, 1)), Purchase: project.PortagePurchase{Seller: "Alice", Lot: 2}},
		{Name: "Carla", EntryDate: ptr(date(2027, 6, 1)), Purchase: project.CoproPurchase{Lot: 9}},
	}

	synced := project.SyncSoldDates(participants, deed)

	require.NotNil(t, synced[0].Lots[1].SoldDate)
	assert.Equal(t, date(2027, 5, 1), *synced[0].Lots[1].SoldDate)
	assert.Equal(t, "Bob", synced[0].Lots[1].SoldTo)
	assert.Nil(t, synced[0].Lots[0].SoldDate)
	assert.Nil(t, participants[0].Lots[1].SoldDate, "input must not be mutated")
}

func TestValidateTwoLoans(t *testing.T) {
	type testCase struct {
		name        string
		participant project.Participant
		renovation  float64
		wantAmount  bool
		wantDelay   bool
	}

	tests := []testCase{
		{
			name:        "SingleLoanSkipped",
			participant: project.Participant{DurationYears: 1},
		},
		{
			name:        "Valid",
			participant: project.Participant{UseTwoLoans: true, DurationYears: 20, Loan2RenovationAmount: ptr(50000.0)},
			renovation:  80000,
		},
		{
			name:        "OverrideAboveCost",
			participant: project.Participant{UseTwoLoans: true, DurationYears: 20, Loan2RenovationAmount: ptr(90000.0)},
			renovation:  80000,
			wantAmount:  true,
		},
		{
			name:        "NegativeOverride",
			participant: project.Participant{UseTwoLoans: true, DurationYears: 20, Loan2RenovationAmount: ptr(-1.0)},
			renovation:  80000,
			wantAmount:  true,
		},
		{
			name:        "DelayTooLong",
			participant: project.Participant{UseTwoLoans: true, DurationYears: 2},
			wantDelay:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := project.ValidateTwoLoans(tt.participant, tt.renovation)

			assert.Equal(t, tt.wantAmount, errs.RenovationAmount != "")
			assert.Equal(t, tt.wantDelay, errs.LoanDelay != "")
			assert.Equal(t, !tt.wantAmount && !tt.wantDelay, errs.Empty())
		})
	}
}
