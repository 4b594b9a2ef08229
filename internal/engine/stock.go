package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
)

const (
	// fillRatioLimit leaves headroom for kerf and waste when deciding whether
	// a stock could take every remaining cut.
	fillRatioLimit = 0.85
	// fillRatioTolerance is the gap below which fill ratios count as equal.
	fillRatioTolerance = 0.05
)

// stockUsage counts opened sheets per stock ID for one optimizer run.
type stockUsage map[string]int

func (u stockUsage) available(s model.Stock) int {
	return s.Quantity - u[s.ID]
}

func (u stockUsage) open(s model.Stock) {
	u[s.ID]++
}

// distinctStockIDs copies stocks so that every ID is unique. An empty or
// repeated ID is replaced with "stock-N" from the stock's position, so two
// stocks never share a usage count.
func distinctStockIDs(stocks []model.Stock) []model.Stock {
	taken := make(map[string]bool, len(stocks))
	for _, s := range stocks {
		if s.ID != "" {
			taken[s.ID] = true
		}
	}

	out := make([]model.Stock, len(stocks))
	copy(out, stocks)
	used := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" || used[out[i].ID] {
			n := i + 1
			id := fmt.Sprintf("stock-%d", n)
			for taken[id] {
				n++
				id = fmt.Sprintf("stock-%d", n)
			}
			out[i].ID = id
			taken[id] = true
		}
		used[out[i].ID] = true
	}
	return out
}

type stockCandidate struct {
	stock     model.Stock
	fillRatio float64
	canFitAll bool
	area      float64
}

// selectBestStock picks the next stock to open for remaining, which must be
// sorted largest first. It returns false when nothing can take remaining[0].
func selectBestStock(stocks []model.Stock, remaining []model.Cut, usage stockUsage) (model.Stock, bool) {
	if len(remaining) == 0 {
		return model.Stock{}, false
	}
	largest := remaining[0]

	var candidates []stockCandidate
	for _, s := range stocks {
		if usage.available(s) <= 0 {
			continue
		}
		if !model.MaterialCompatible(largest.Material, s.Material) {
			continue
		}
		if !stockCanFitCut(s, largest) {
			continue
		}

		var fittable float64
		for _, c := range remaining {
			if !model.MaterialCompatible(c.Material, s.Material) {
				continue
			}
			if stockCanFitCut(s, c) {
				fittable += c.Area()
			}
		}

		area := s.Area()
		ratio := fittable / area
		candidates = append(candidates, stockCandidate{
			stock:     s,
			fillRatio: ratio,
			canFitAll: ratio <= fillRatioLimit,
			area:      area,
		})
	}

	if len(candidates) == 0 {
		return model.Stock{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.canFitAll != b.canFitAll {
			return a.canFitAll
		}
		if a.canFitAll {
			if math.Abs(a.fillRatio-b.fillRatio) > fillRatioTolerance {
				return a.fillRatio > b.fillRatio
			}
			return a.area < b.area
		}
		return a.area > b.area
	})

	return candidates[0].stock, true
}
