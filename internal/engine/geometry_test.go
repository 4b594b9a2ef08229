package engine

import (
	"testing"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitsInRect_ExactFillNeedsNoKerf(t *testing.T) {
	r := model.Rect{W: 48, H: 96}
	assert.True(t, fitsInRect(48, 96, r, 0.125))
	assert.True(t, fitsInRect(47.875, 96, r, 0.125), "piece plus kerf exactly fills the width")
	assert.False(t, fitsInRect(47.9, 96, r, 0.125), "kerf pushes the piece past the edge")
	assert.False(t, fitsInRect(49, 10, r, 0))
	assert.False(t, fitsInRect(10, 97, r, 0))
}

func TestFitsEitherWay(t *testing.T) {
	r := model.Rect{W: 10, H: 40}
	assert.True(t, fitsEitherWay(model.Cut{Length: 10, Width: 30}, r, 0), "fits once rotated")
	assert.False(t, fitsEitherWay(model.Cut{Length: 41, Width: 11}, r, 0))
}

func TestSplitRectangle_BothVariants(t *testing.T) {
	r := model.Rect{X: 0, Y: 0, W: 48, H: 96}
	h, v := splitRectangle(r, 24, 12, 0.125)

	require.Len(t, h, 2)
	assert.Equal(t, model.Rect{X: 24.125, Y: 0, W: 23.875, H: 12}, h[0])
	assert.Equal(t, model.Rect{X: 0, Y: 12.125, W: 48, H: 83.875}, h[1])

	require.Len(t, v, 2)
	assert.Equal(t, model.Rect{X: 24.125, Y: 0, W: 23.875, H: 96}, v[0])
	assert.Equal(t, model.Rect{X: 0, Y: 12.125, W: 24, H: 83.875}, v[1])
}

func TestSplitRectangle_DropsSlivers(t *testing.T) {
	r := model.Rect{X: 5, Y: 5, W: 24.125, H: 20}
	h, v := splitRectangle(r, 24, 20, 0.125)
	assert.Empty(t, h, "slack equal to kerf leaves nothing usable")
	assert.Empty(t, v)

	h, v = splitRectangle(model.Rect{W: 48, H: 96}, 48, 50, 0)
	require.Len(t, h, 1)
	require.Len(t, v, 1)
	assert.Equal(t, model.Rect{X: 0, Y: 50, W: 48, H: 46}, h[0])
}

func TestReplaceRect_LeavesInputUntouched(t *testing.T) {
	rects := []model.Rect{{X: 1}, {X: 2}, {X: 3}}
	out := replaceRect(rects, 1, []model.Rect{{X: 7}, {X: 8}})

	assert.Equal(t, []model.Rect{{X: 1}, {X: 7}, {X: 8}, {X: 3}}, out)
	assert.Equal(t, []model.Rect{{X: 1}, {X: 2}, {X: 3}}, rects)

	out = replaceRect(rects, 0, nil)
	assert.Equal(t, []model.Rect{{X: 2}, {X: 3}}, out)
}

func TestStockCanFitCut_IgnoresKerf(t *testing.T) {
	s := model.Stock{Length: 96, Width: 48}
	assert.True(t, stockCanFitCut(s, model.Cut{Length: 96, Width: 48}))
	assert.True(t, stockCanFitCut(s, model.Cut{Length: 48, Width: 96}), "rotated")
	assert.False(t, stockCanFitCut(s, model.Cut{Length: 60, Width: 60}))
}

func TestScorePlacement_FullSheetBonus(t *testing.T) {
	score := scorePlacement(48, 96, model.Rect{W: 48, H: 96}, 0, nil)
	assert.InDelta(t, -10000.0, score, 1e-9)
}

func TestScorePlacement_UselessStripPenalty(t *testing.T) {
	// 3" right strip that nothing can use, full height consumed.
	score := scorePlacement(45, 96, model.Rect{W: 48, H: 96}, 0, nil)
	assert.InDelta(t, 50000.0-5000.0-28.8+3.0, score, 1e-9)
}

func TestScorePlacement_RewardsUsableStrips(t *testing.T) {
	r := model.Rect{W: 48, H: 96}
	remaining := []model.Cut{{Length: 20, Width: 20}}
	with := scorePlacement(24, 24, r, 0, remaining)
	without := scorePlacement(24, 24, r, 0, nil)
	// Right strip 24x24 takes the 20x20 both ways, bottom strip 48x72 too.
	assert.InDelta(t, without-4000, with, 1e-9)
}

func TestScorePlacement_OnlyLooksAheadFive(t *testing.T) {
	r := model.Rect{W: 48, H: 96}
	small := model.Cut{Length: 1, Width: 1}
	five := []model.Cut{small, small, small, small, small}
	six := append(append([]model.Cut{}, five...), small)
	assert.Equal(t, scorePlacement(24, 24, r, 0, five), scorePlacement(24, 24, r, 0, six))
}

func TestScoreRectangles(t *testing.T) {
	rects := []model.Rect{{W: 10, H: 10}}
	assert.InDelta(t, 100.0, scoreRectangles(rects, nil, 0), 1e-9)
	assert.InDelta(t, 175.0, scoreRectangles(rects, []model.Cut{{Length: 5, Width: 5}}, 0), 1e-9)

	// Only the first fitting cut counts per rect.
	two := []model.Cut{{Length: 5, Width: 5}, {Length: 2, Width: 2}}
	assert.InDelta(t, 175.0, scoreRectangles(rects, two, 0), 1e-9)
}
