package timeline_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/castor/internal/calculator"
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

const delta = 1e-6

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var deed = date(2026, 2, 1)

func coproProject(newcomers ...project.Participant) project.Project {
	return project.Project{
		DeedDate: deed,
		Formula:  portage.DefaultFormula(),
		Params:   project.Params{TotalPurchase: 400000, GlobalCascoPerM2: 1000, MaxTotalLots: 10},
		Participants: append([]project.Participant{
			{Name: "A", IsFounder: true, Surface: 80, CapitalApporte: 50000, InterestRate: 4, DurationYears: 25},
			{Name: "B", IsFounder: true, Surface: 120, CapitalApporte: 50000, InterestRate: 4, DurationYears: 25},
		}, newcomers...),
	}
}

func coproBuyer(name string, entry time.Time, surface, price float64) project.Participant {
	return project.Participant{
		Name:      name,
		Surface:   surface,
		EntryDate: &entry,
		Purchase:  project.CoproPurchase{Lot: 10, PurchasePrice: &price},
	}
}

func generate(t *testing.T, p project.Project) timeline.Timeline {
	t.Helper()

	tl, err := timeline.Generate(p, calculator.Calculate(p))
	require.NoError(t, err)

	return tl
}

func TestGenerate_CoproSale(t *testing.T) {
	p := coproProject(coproBuyer("N", date(2027, 2, 1), 50, 150000))

	tl := generate(t, p)

	require.Equal(t, []time.Time{deed, date(2027, 2, 1)}, tl.Dates)

	a := tl.Snapshots["A"]
	require.Len(t, a, 2)
	assert.True(t, a[0].IsT0)
	assert.True(t, a[0].ShowFinancingDetails)
	assert.Nil(t, a[0].Transaction)

	require.NotNil(t, a[1].Transaction)
	assert.Equal(t, timeline.TypeCoproSale, a[1].Transaction.Type)
	assert.InDelta(t, -42000.0, a[1].Transaction.Delta.TotalCost, delta)
	assert.Equal(t, "N joined (copro sale)", a[1].Transaction.Delta.Reason)
	assert.False(t, a[1].ShowFinancingDetails)
	assert.Equal(t, 1, a[1].ColorZone)

	b := tl.Snapshots["B"]
	require.Len(t, b, 2)
	assert.InDelta(t, -63000.0, b[1].Transaction.Delta.TotalCost, delta)

	n := tl.Snapshots["N"]
	require.Len(t, n, 1)
	assert.Nil(t, n[0].Transaction)
	assert.False(t, n[0].IsT0)
	assert.True(t, n[0].ShowFinancingDetails)
}

func TestRedistribute_Conservation(t *testing.T) {
	p := coproProject(
		coproBuyer("N1", date(2027, 2, 1), 50, 150000),
		coproBuyer("N2", date(2028, 3, 1), 40, 210000),
	)
	res := calculator.Calculate(p)

	for _, buyer := range p.Participants[2:] {
		r := timeline.Redistribute(p, res, buyer)

		var credited float64
		for _, c := range r.Credits {
			credited += c.Amount
		}

		reserves := r.SalePrice * p.Formula.CoproReservesShare / 100
		assert.InDelta(t, r.Distributed, credited, delta)
		assert.InDelta(t, r.SalePrice, reserves+credited, delta)
		assert.Zero(t, r.Credit(buyer.Name))
	}

	// N1 entered before N2's sale, so shares it with the founders.
	r := timeline.Redistribute(p, res, p.Participants[3])
	assert.InDelta(t, 210000*0.7*50/250, r.Credit("N1"), delta)
}

func TestGenerate_SameDayCoproSales(t *testing.T) {
	p := coproProject(
		coproBuyer("N1", date(2027, 2, 1), 50, 100000),
		coproBuyer("N2", date(2027, 2, 1), 50, 200000),
	)

	tl := generate(t, p)

	a := tl.Snapshots["A"]
	require.Len(t, a, 2)
	assert.Equal(t, "N1, N2 joined (copro sale, total)", a[1].Transaction.Delta.Reason)
	assert.InDelta(t, -(300000*0.7)*80/200, a[1].Transaction.Delta.TotalCost, delta)

	for _, name := range []string{"N1", "N2"} {
		snapshots := tl.Snapshots[name]
		require.Len(t, snapshots, 1)
		assert.Nil(t, snapshots[0].Transaction, name)
	}
}

func TestGenerate_RecalculatedCoproSale(t *testing.T) {
	p := coproProject(coproBuyer("N", date(2027, 2, 1), 50, 150000))
	p.Params.RenovationStartDate = ptr(date(2028, 1, 1))
	res := calculator.Calculate(p)

	r := timeline.Redistribute(p, res, p.Participants[2])
	require.True(t, r.Recalculated)

	tl := generate(t, p)
	got := tl.Snapshots["A"][1].Transaction.Delta.TotalCost + tl.Snapshots["B"][1].Transaction.Delta.TotalCost
	assert.InDelta(t, -r.Distributed, got, delta)
}

func portageProject(lots ...project.Lot) project.Project {
	return project.Project{
		DeedDate: deed,
		Formula:  portage.DefaultFormula(),
		Params:   project.Params{TotalPurchase: 300000},
		Participants: []project.Participant{
			{Name: "Alice", IsFounder: true, Surface: 100, CapitalApporte: 20000, InterestRate: 4, DurationYears: 20, Lots: lots},
			{
				Name:      "Bob",
				Surface:   50,
				EntryDate: ptr(date(2028, 2, 1)),
				Purchase:  project.PortagePurchase{Seller: "Alice", Lot: 2, PurchasePrice: ptr(130000.0)},
			},
		},
	}
}

func TestGenerate_PortageSale(t *testing.T) {
	p := portageProject(
		project.Lot{ID: 1, Surface: 50},
		project.Lot{ID: 2, Surface: 50, IsPortage: true, AcquiredDate: deed, OriginalPrice: 100000, OriginalNotaryFees: 12500},
	)

	tl := generate(t, p)

	alice := tl.Snapshots["Alice"]
	require.Len(t, alice, 2)

	sale := alice[1].Transaction
	require.NotNil(t, sale)
	assert.Equal(t, timeline.TypePortageSale, sale.Type)
	assert.Equal(t, "Bob", sale.Buyer)
	assert.Greater(t, sale.LotPrice, 112500.0)
	assert.Greater(t, sale.Indexation, 0.0)
	assert.Greater(t, sale.CarryingCosts, 0.0)
	assert.InDelta(t, -sale.LotPrice, sale.Delta.TotalCost, delta)
	assert.Equal(t, "Sold portage lot to Bob", sale.Delta.Reason)
	assert.False(t, alice[1].ShowFinancingDetails)

	bob := tl.Snapshots["Bob"]
	require.Len(t, bob, 1)
	require.NotNil(t, bob[0].Transaction)
	assert.Equal(t, timeline.TypePortagePurchase, bob[0].Transaction.Type)
	assert.Zero(t, bob[0].Transaction.Delta.TotalCost)
	assert.Equal(t, "Bought portage lot from Alice", bob[0].Transaction.Delta.Reason)
	assert.True(t, bob[0].ShowFinancingDetails)
}

func TestGenerate_SellerLotNotFound(t *testing.T) {
	p := portageProject(project.Lot{ID: 1, Surface: 100})

	_, err := timeline.Generate(p, calculator.Calculate(p))

	require.Error(t, err)
	assert.True(t, errors.Is(err, timeline.ErrSellerLotNotFound))
	assert.Contains(t, err.Error(), "seller Alice has no lot with ID 2")
}

func TestEventDates_Defaults(t *testing.T) {
	p := project.Project{
		DeedDate: deed,
		Participants: []project.Participant{
			{Name: "F", IsFounder: true},
			{Name: "N"},
			{Name: "Off", EntryDate: ptr(date(2030, 1, 1)), Disabled: true},
		},
	}

	assert.Equal(t, []time.Time{deed, date(2026, 2, 2)}, timeline.EventDates(p))
}

func TestCoproSnapshots(t *testing.T) {
	p := coproProject(
		coproBuyer("N1", date(2027, 2, 1), 50, 150000),
		coproBuyer("N2", date(2027, 2, 1), 30, 90000),
	)

	snapshots := timeline.CoproSnapshots(p, calculator.Calculate(p))
	require.Len(t, snapshots, 2)

	assert.Equal(t, 10, snapshots[0].AvailableLots)
	assert.Empty(t, snapshots[0].SoldThisDate)

	assert.Equal(t, 8, snapshots[1].AvailableLots)
	assert.Equal(t, []string{"N1", "N2"}, snapshots[1].SoldThisDate)
	assert.InDelta(t, 280.0-80, snapshots[1].TotalSurface, delta)
	assert.InDelta(t, 72000.0, snapshots[1].ReserveIncrease, delta)
	assert.Equal(t, 1, snapshots[1].ColorZone)
}

func TestExpectedPaybacks(t *testing.T) {
	p := coproProject(coproBuyer("N", date(2027, 2, 1), 50, 150000))
	p.Participants[0].Lots = []project.Lot{{ID: 1, Surface: 80}, {ID: 2, IsPortage: true}}
	p.Participants = append(p.Participants, project.Participant{
		Name:      "P",
		EntryDate: ptr(date(2026, 9, 1)),
		Purchase:  project.PortagePurchase{Seller: "A", Lot: 2, PurchasePrice: ptr(20000.0)},
	})

	got := timeline.ExpectedPaybacks(p, calculator.Calculate(p), "A")

	require.Len(t, got.Items, 2)
	assert.Equal(t, timeline.PaybackPortage, got.Items[0].Type)
	assert.Equal(t, "P", got.Items[0].Buyer)
	assert.Equal(t, timeline.PaybackCopro, got.Items[1].Type)
	assert.InDelta(t, 42000.0, got.Items[1].Amount, delta)
	assert.InDelta(t, 62000.0, got.Total, delta)
}
