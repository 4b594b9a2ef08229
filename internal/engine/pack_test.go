package engine

import (
	"testing"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet4x8() model.Stock {
	return model.Stock{ID: "4x8", Name: "4x8 Plywood", Length: 96, Width: 48, Quantity: 1}
}

func TestPackSheet_FirstCutAtOrigin(t *testing.T) {
	cuts := []model.Cut{{ID: "a", Label: "A", Length: 30, Width: 20, Quantity: 1}}
	res := packSheet(sheet4x8(), cuts, 0.125, nil)

	require.Len(t, res.sheet.Cuts, 1)
	pc := res.sheet.Cuts[0]
	assert.Equal(t, 0.0, pc.X)
	assert.Equal(t, 0.0, pc.Y)
	assert.Len(t, res.placed, 1)
	assert.Empty(t, res.unplaced)
	require.NotNil(t, res.firstRotated)
	assert.Equal(t, pc.Rotated, *res.firstRotated)
}

func TestPackSheet_RectsSortedTopLeftFirst(t *testing.T) {
	cuts := []model.Cut{
		{ID: "a", Label: "A", Length: 30, Width: 20, Quantity: 1},
		{ID: "b", Label: "B", Length: 10, Width: 10, Quantity: 1},
	}
	res := packSheet(sheet4x8(), cuts, 0.125, nil)

	for i := 1; i < len(res.sheet.Rects); i++ {
		prev, cur := res.sheet.Rects[i-1], res.sheet.Rects[i]
		assert.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X <= cur.X), "rects out of order: %+v before %+v", prev, cur)
	}
}

func TestPackSheet_MaterialMismatchIsUnplaced(t *testing.T) {
	stock := sheet4x8()
	stock.Material = "Plywood"
	cuts := []model.Cut{
		{ID: "m", Label: "M", Length: 10, Width: 10, Quantity: 1, Material: "MDF"},
		{ID: "p", Label: "P", Length: 10, Width: 10, Quantity: 1, Material: "Plywood"},
	}
	res := packSheet(stock, cuts, 0, nil)

	require.Len(t, res.unplaced, 1)
	assert.Equal(t, "M", res.unplaced[0].Label)
	require.Len(t, res.sheet.Cuts, 1)
	assert.Equal(t, "P", res.sheet.Cuts[0].Label)
	assert.Nil(t, res.firstRotated, "the first cut of the pass was not placed")
}

func TestPackSheet_TooLargeIsUnplaced(t *testing.T) {
	cuts := []model.Cut{{ID: "x", Label: "X", Length: 100, Width: 50, Quantity: 1}}
	res := packSheet(sheet4x8(), cuts, 0, nil)
	assert.Empty(t, res.sheet.Cuts)
	assert.Len(t, res.unplaced, 1)
}

func TestPackSheet_ForcedFirstRotation(t *testing.T) {
	cuts := []model.Cut{{ID: "a", Label: "A", Length: 30, Width: 20, Quantity: 1}}

	rotated := true
	res := packSheet(sheet4x8(), cuts, 0.125, &rotated)
	require.Len(t, res.sheet.Cuts, 1)
	assert.True(t, res.sheet.Cuts[0].Rotated)
	assert.Equal(t, 30.0, res.sheet.Cuts[0].PW)
	assert.Equal(t, 20.0, res.sheet.Cuts[0].PH)

	normal := false
	res = packSheet(sheet4x8(), cuts, 0.125, &normal)
	require.Len(t, res.sheet.Cuts, 1)
	assert.False(t, res.sheet.Cuts[0].Rotated)
	assert.Equal(t, 20.0, res.sheet.Cuts[0].PW)
}

func TestPackSheet_ForcedRotationIgnoredWhenItDoesNotFit(t *testing.T) {
	// 50 wide does not fit the 48 wide sheet, so the normal orientation stays.
	cuts := []model.Cut{{ID: "a", Label: "A", Length: 50, Width: 40, Quantity: 1}}
	rotated := true
	res := packSheet(sheet4x8(), cuts, 0.125, &rotated)
	require.Len(t, res.sheet.Cuts, 1)
	assert.False(t, res.sheet.Cuts[0].Rotated)
}

func TestPackSheet_DoesNotMutateInput(t *testing.T) {
	cuts := []model.Cut{
		{ID: "a", Label: "A", Length: 30, Width: 20, Quantity: 1},
		{ID: "b", Label: "B", Length: 100, Width: 100, Quantity: 1},
		{ID: "c", Label: "C", Length: 10, Width: 10, Quantity: 1},
	}
	snapshot := append([]model.Cut(nil), cuts...)

	_ = packSheet(sheet4x8(), cuts[:2], 0.125, nil)
	assert.Equal(t, snapshot, cuts)
}

func TestFindBestPlacement_OrientationBreaksTies(t *testing.T) {
	// A square cut scores the same both ways; the first orientation wins
	// unless a same-label cut was already placed rotated.
	square := model.Cut{Label: "A", Length: 10, Width: 10}
	rects := []model.Rect{{W: 48, H: 96}}

	p, ok := findBestPlacement(square, rects, 0.125, nil, nil)
	require.True(t, ok)
	assert.False(t, p.rotated)

	placed := []model.PlacedCut{model.Place(square, 0, 0, true)}
	p, ok = findBestPlacement(square, rects, 0.125, nil, placed)
	require.True(t, ok)
	assert.True(t, p.rotated)
}

func TestFindBestPlacement_NoFit(t *testing.T) {
	_, ok := findBestPlacement(model.Cut{Length: 50, Width: 50}, []model.Rect{{W: 10, H: 10}}, 0, nil, nil)
	assert.False(t, ok)
}

func TestPreferredRotation(t *testing.T) {
	placed := []model.PlacedCut{
		model.Place(model.Cut{Label: "A", Length: 2, Width: 1}, 0, 0, true),
		model.Place(model.Cut{Label: "A", Length: 2, Width: 1}, 0, 0, false),
	}
	pref := preferredRotation("A", placed)
	require.NotNil(t, pref)
	assert.True(t, *pref, "first same-label placement decides")
	assert.Nil(t, preferredRotation("B", placed))
}
