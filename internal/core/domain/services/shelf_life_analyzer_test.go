package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/core/domain/services"
)

type boxSpec struct {
	width, depth uint32
	weight       uint32
	expire       string
}

func createPallet(t *testing.T, id kernel.ID, size uint32, boxes ...boxSpec) *pallet.Pallet {
	t.Helper()
	p, err := pallet.NewPallet(size, size, size)
	require.NoError(t, err)
	require.NoError(t, p.AssignID(id))

	for _, spec := range boxes {
		expire, err := kernel.ParseDate(spec.expire)
		require.NoError(t, err)
		box, err := pallet.NewBox(spec.width, 10, spec.depth, spec.weight, nil, &expire)
		require.NoError(t, err)
		require.NoError(t, p.AddBox(box))
	}
	return p
}

func ids(pallets []*pallet.Pallet) []kernel.ID {
	out := make([]kernel.ID, 0, len(pallets))
	for _, p := range pallets {
		out = append(out, p.ID())
	}
	return out
}

func TestShelfLifeAnalyzer_GroupPalletsByExpiration(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()

	heavyJan := createPallet(t, 1, 100, boxSpec{10, 10, 5000, "2024-01-01"})
	lightMar := createPallet(t, 2, 100, boxSpec{10, 10, 100, "2024-03-01"})
	lightJan := createPallet(t, 3, 100, boxSpec{10, 10, 100, "2024-01-01"}, boxSpec{10, 10, 100, "2024-05-01"})
	empty := createPallet(t, 4, 100)
	twinJan := createPallet(t, 5, 100, boxSpec{10, 10, 200, "2024-01-01"})
	snapshot := []*pallet.Pallet{heavyJan, lightMar, lightJan, empty, twinJan}

	var (
		keys   []string
		groups [][]kernel.ID
	)
	for expire, group := range analyzer.GroupPalletsByExpiration(snapshot) {
		keys = append(keys, expire.String())
		groups = append(groups, ids(group))
	}

	assert.Equal(t, []string{"2024-01-01", "2024-03-01", "9999-12-31"}, keys)
	assert.Equal(t, [][]kernel.ID{{3, 5, 1}, {2}, {4}}, groups)
	assert.Equal(t, []kernel.ID{1, 2, 3, 4, 5}, ids(snapshot), "input must not be reordered")
}

func TestShelfLifeAnalyzer_GroupPalletsByExpiration_StableTies(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()

	first := createPallet(t, 10, 100, boxSpec{10, 10, 300, "2024-02-01"})
	second := createPallet(t, 7, 100, boxSpec{10, 10, 300, "2024-02-01"})
	third := createPallet(t, 8, 100, boxSpec{10, 10, 300, "2024-02-01"})

	for _, group := range analyzer.GroupPalletsByExpiration([]*pallet.Pallet{first, second, third}) {
		assert.Equal(t, []kernel.ID{10, 7, 8}, ids(group))
	}
}

func TestShelfLifeAnalyzer_GroupPalletsByExpiration_OrderingProperty(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()
	dates := []string{"2024-03-01", "2024-01-01", "2024-02-01"}

	var snapshot []*pallet.Pallet
	for i := range 30 {
		weight := uint32(100 + (i*7)%5*100)
		snapshot = append(snapshot, createPallet(t, kernel.ID(i+1), 100,
			boxSpec{10, 10, weight, dates[i%len(dates)]}))
	}

	var previous *kernel.Date
	total := 0
	for expire, group := range analyzer.GroupPalletsByExpiration(snapshot) {
		if previous != nil {
			assert.True(t, previous.Before(expire), "groups must be strictly ascending")
		}
		previous = &expire

		for i, p := range group {
			assert.True(t, p.ExpireDate().IsEqual(expire))
			if i > 0 {
				assert.LessOrEqual(t, group[i-1].Weight(), p.Weight())
				if group[i-1].Weight() == p.Weight() {
					assert.Less(t, group[i-1].ID(), p.ID(), "equal keys keep snapshot order")
				}
			}
		}
		total += len(group)
	}
	assert.Equal(t, len(snapshot), total)
}

func TestShelfLifeAnalyzer_GroupPalletsByExpiration_EarlyBreak(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()
	snapshot := []*pallet.Pallet{
		createPallet(t, 1, 100, boxSpec{10, 10, 100, "2024-01-01"}),
		createPallet(t, 2, 100, boxSpec{10, 10, 100, "2024-02-01"}),
	}

	seen := 0
	for range analyzer.GroupPalletsByExpiration(snapshot) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)

	for range analyzer.GroupPalletsByExpiration(nil) {
		t.Fatal("empty snapshot must yield nothing")
	}
}

func TestShelfLifeAnalyzer_TopNLongestShelfLife(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()

	april := createPallet(t, 1, 150, boxSpec{10, 10, 100, "2024-04-01"})
	march := createPallet(t, 2, 100, boxSpec{10, 10, 100, "2024-03-15"})
	february := createPallet(t, 3, 120, boxSpec{10, 10, 100, "2024-02-20"})
	january := createPallet(t, 4, 100, boxSpec{10, 10, 100, "2024-01-15"})
	empty := createPallet(t, 5, 90)
	snapshot := []*pallet.Pallet{january, february, empty, april, march}

	top := analyzer.TopNLongestShelfLife(snapshot, services.DefaultTopN)

	require.Len(t, top, 3)
	assert.Equal(t, []kernel.ID{2, 3, 1}, ids(top), "ordered by ascending volume")
	assert.Equal(t, []kernel.ID{4, 3, 5, 1, 2}, ids(snapshot), "input must not be reordered")
}

func TestShelfLifeAnalyzer_TopNLongestShelfLife_Bounds(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()
	snapshot := []*pallet.Pallet{
		createPallet(t, 1, 100, boxSpec{10, 10, 100, "2024-04-01"}),
		createPallet(t, 2, 100),
	}

	assert.Empty(t, analyzer.TopNLongestShelfLife(snapshot, 0))
	assert.Empty(t, analyzer.TopNLongestShelfLife(snapshot, -1))
	assert.Equal(t, []kernel.ID{1}, ids(analyzer.TopNLongestShelfLife(snapshot, 5)))
	assert.NotNil(t, analyzer.TopNLongestShelfLife(nil, 3))
}

func TestShelfLifeAnalyzer_TopNLongestShelfLife_CutOffTie(t *testing.T) {
	analyzer := services.NewShelfLifeAnalyzer()
	snapshot := []*pallet.Pallet{
		createPallet(t, 1, 100, boxSpec{10, 10, 100, "2024-05-01"}),
		createPallet(t, 2, 110, boxSpec{10, 10, 100, "2024-03-01"}),
		createPallet(t, 3, 90, boxSpec{10, 10, 100, "2024-03-01"}),
	}

	top := analyzer.TopNLongestShelfLife(snapshot, 2)

	assert.Equal(t, []kernel.ID{1, 2}, ids(top), "first pallet met wins the cut-off tie")
}
