package engine

import (
	"math"

	"github.com/piwi3910/kerfcut/internal/model"
)

const (
	// lookahead is how many upcoming cuts the scorers consider.
	lookahead = 5

	fullDimensionBonus = 5000.0
	uselessStripCost   = 50000.0
	usableFitBonus     = 1000.0
	minUsefulStrip     = 10.0
	stripAreaWeight    = 0.1
	shortSideWeight    = 10.0

	// orientationPenalty only separates otherwise equal placements.
	orientationPenalty = 0.1
)

func nextCuts(remaining []model.Cut) []model.Cut {
	if len(remaining) > lookahead {
		return remaining[:lookahead]
	}
	return remaining
}

// scorePlacement ranks putting a cutW x cutH piece at the origin of r.
// Lower is better.
func scorePlacement(cutW, cutH float64, r model.Rect, kerf float64, remaining []model.Cut) float64 {
	leftoverW := r.W - cutW - kerf
	leftoverH := r.H - cutH - kerf

	// Right strip is leftoverW x cutH, bottom strip is r.W x leftoverH.
	var rightUsable, bottomUsable int
	for _, c := range nextCuts(remaining) {
		if leftoverW >= c.Width && cutH >= c.Length {
			rightUsable++
		}
		if leftoverW >= c.Length && cutH >= c.Width {
			rightUsable++
		}
		if r.W >= c.Width && leftoverH >= c.Length {
			bottomUsable++
		}
		if r.W >= c.Length && leftoverH >= c.Width {
			bottomUsable++
		}
	}

	var score float64

	if leftoverW <= 0 {
		score -= fullDimensionBonus
	}
	if leftoverH <= 0 {
		score -= fullDimensionBonus
	}

	if leftoverW > 0 && leftoverW < minUsefulStrip && rightUsable == 0 {
		score += uselessStripCost
	}
	if leftoverH > 0 && leftoverH < minUsefulStrip && bottomUsable == 0 {
		score += uselessStripCost
	}

	score -= float64(rightUsable+bottomUsable) * usableFitBonus

	clampW := math.Max(0, leftoverW)
	clampH := math.Max(0, leftoverH)
	rightArea := clampW * cutH
	bottomArea := r.W * clampH
	score -= math.Max(rightArea, bottomArea) * stripAreaWeight

	score += math.Min(clampW, clampH) * shortSideWeight
	score += clampW + clampH

	return score
}

// scoreRectangles rates a set of free rects by area, boosted when one of
// the upcoming cuts fits. Higher is better.
func scoreRectangles(rects []model.Rect, remaining []model.Cut, kerf float64) float64 {
	next := nextCuts(remaining)
	var score float64
	for _, r := range rects {
		score += r.Area()
		for _, c := range next {
			if fitsEitherWay(c, r, kerf) {
				score += c.Area() * 3
				break
			}
		}
	}
	return score
}
