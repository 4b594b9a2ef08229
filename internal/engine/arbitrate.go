package engine

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/kerfcut/internal/model"
)

// CalculateStats summarizes a result. Used area counts placed cuts only, so
// kerf losses show up as waste.
func CalculateStats(r model.OptimizationResult) model.OptimizationStats {
	var total, used float64
	for _, s := range r.Sheets {
		total += s.TotalArea()
		used += s.UsedArea()
	}

	waste := decimal.Zero
	if total > 0 {
		waste = decimal.NewFromFloat((total - used) / total * 100).Round(1)
	}

	return model.OptimizationStats{
		Sheets:   len(r.Sheets),
		Used:     used,
		Total:    total,
		Waste:    waste,
		Unplaced: len(r.Unplaced),
	}
}

// better reports whether a should be kept over b: fewer unplaced cuts, then
// fewer sheets, then no more waste.
func better(a, b model.OptimizationResult) bool {
	if len(a.Unplaced) != len(b.Unplaced) {
		return len(a.Unplaced) < len(b.Unplaced)
	}
	if len(a.Sheets) != len(b.Sheets) {
		return len(a.Sheets) < len(b.Sheets)
	}
	return CalculateStats(a).Waste.LessThanOrEqual(CalculateStats(b).Waste)
}

// searchBudget scales the branch-and-bound time with the number of unit cuts.
func searchBudget(unitCuts int) time.Duration {
	switch {
	case unitCuts <= 10:
		return 3000 * time.Millisecond
	case unitCuts <= 15:
		return 2000 * time.Millisecond
	default:
		return 1000 * time.Millisecond
	}
}

// optimizeBest runs every strategy concurrently and keeps the best result.
// Comparison order is fixed: guillotine against shelf, then the winner
// against branch-and-bound. A positive limit overrides the tiered budget.
func optimizeBest(ctx context.Context, stocks []model.Stock, cuts []model.Cut, kerf float64, limit time.Duration, tr Tracer) model.OptimizationResult {
	if limit <= 0 {
		limit = searchBudget(model.TotalQuantity(cuts))
	}

	var guillotine, shelf, optimal model.OptimizationResult
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		guillotine = optimizeGuillotine(stocks, cuts, kerf, tr)
	}()
	go func() {
		defer wg.Done()
		shelf = optimizeShelf(stocks, cuts, kerf, tr)
	}()
	go func() {
		defer wg.Done()
		optimal = optimizeOptimal(ctx, stocks, cuts, kerf, limit, tr)
	}()
	wg.Wait()

	winner := shelf
	if better(guillotine, shelf) {
		winner = guillotine
	}
	if !better(winner, optimal) {
		winner = optimal
	}

	stats := CalculateStats(winner)
	tr.Trace(Event{
		Kind:      EventWinnerChosen,
		Algorithm: winner.Algorithm,
		Placed:    winner.PlacedCount(),
		Unplaced:  stats.Unplaced,
		Sheet:     stats.Sheets,
	})
	return winner
}
