package engine

import (
	"context"
	"sort"
	"time"

	"github.com/piwi3910/kerfcut/internal/model"
)

const (
	// DefaultSearchTimeLimit is the branch-and-bound budget when none is given.
	DefaultSearchTimeLimit = 2000 * time.Millisecond
	// minSheetSearch is the least time any single sheet gets.
	minSheetSearch = 500 * time.Millisecond
	// areaSlack allows free area to be overcommitted by kerf waste before pruning.
	areaSlack = 1.15
)

type splitDir int

const (
	splitHorizontal splitDir = iota
	splitVertical
)

type searchMove struct {
	rectIndex int
	rotated   bool
	split     splitDir
	score     float64
}

// searchState is one node of the search tree. Slices are never mutated in
// place, so sibling branches can share them.
type searchState struct {
	rects     []model.Rect
	placed    []model.PlacedCut
	remaining []model.Cut
}

type searchResult struct {
	placed    []model.PlacedCut
	allPlaced bool
}

// searcher holds the per-sheet search context.
type searcher struct {
	ctx      context.Context
	kerf     float64
	deadline time.Time
	nodes    int
	timedOut bool
}

func (s *searcher) expired() bool {
	if s.timedOut {
		return true
	}
	if time.Now().After(s.deadline) || s.ctx.Err() != nil {
		s.timedOut = true
	}
	return s.timedOut
}

// canPossiblyFitAll prunes nodes whose remaining cuts cannot all fit.
func (s *searcher) canPossiblyFitAll(st searchState) bool {
	if len(st.remaining) == 0 {
		return true
	}

	var cutArea, freeArea float64
	for _, c := range st.remaining {
		cutArea += c.Area()
	}
	for _, r := range st.rects {
		freeArea += r.Area()
	}
	if cutArea > freeArea*areaSlack {
		return false
	}

	largest := st.remaining[0]
	for _, r := range st.rects {
		if fitsEitherWay(largest, r, s.kerf) {
			return true
		}
	}
	return false
}

// moves lists every placement of c, best score first. The vertical split of
// a position scores one worse than its horizontal twin.
func (s *searcher) moves(c model.Cut, st searchState) []searchMove {
	pool := st.remaining[1:]
	pref := preferredRotation(c.Label, st.placed)

	var out []searchMove
	add := func(i int, rotated bool, w, h float64) {
		score := scorePlacement(w, h, st.rects[i], s.kerf, pool)
		if pref != nil && *pref != rotated {
			score += orientationPenalty
		}
		out = append(out,
			searchMove{rectIndex: i, rotated: rotated, split: splitHorizontal, score: score},
			searchMove{rectIndex: i, rotated: rotated, split: splitVertical, score: score + 1},
		)
	}

	for i, r := range st.rects {
		if fitsInRect(c.Width, c.Length, r, s.kerf) {
			add(i, false, c.Width, c.Length)
		}
		if c.Width != c.Length && fitsInRect(c.Length, c.Width, r, s.kerf) {
			add(i, true, c.Length, c.Width)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	return out
}

func (s *searcher) apply(st searchState, m searchMove) searchState {
	c := st.remaining[0]
	r := st.rects[m.rectIndex]
	pc := model.Place(c, r.X, r.Y, m.rotated)

	horizontal, vertical := splitRectangle(r, pc.PW, pc.PH, s.kerf)
	split := horizontal
	if m.split == splitVertical {
		split = vertical
	}

	placed := make([]model.PlacedCut, len(st.placed), len(st.placed)+1)
	copy(placed, st.placed)

	return searchState{
		rects:     replaceRect(st.rects, m.rectIndex, split),
		placed:    append(placed, pc),
		remaining: st.remaining[1:],
	}
}

// search explores depth first and returns the first complete placement it
// finds, or the deepest partial one when the tree is exhausted or time runs
// out.
func (s *searcher) search(st searchState, best searchResult) searchResult {
	s.nodes++

	if s.expired() {
		return best
	}
	if len(st.remaining) == 0 {
		return searchResult{placed: st.placed, allPlaced: true}
	}
	if best.allPlaced {
		return best
	}
	if !s.canPossiblyFitAll(st) {
		if len(st.placed) > len(best.placed) {
			return searchResult{placed: st.placed}
		}
		return best
	}

	moves := s.moves(st.remaining[0], st)
	for _, m := range moves {
		if best.allPlaced {
			break
		}
		res := s.search(s.apply(st, m), best)
		if res.allPlaced {
			return res
		}
		if len(res.placed) > len(best.placed) {
			best = res
		}
	}

	if len(moves) == 0 && len(st.placed) > len(best.placed) {
		return searchResult{placed: st.placed}
	}
	return best
}

// optimizeOptimal runs a time-boxed branch-and-bound search per sheet. Each
// sheet gets what is left of limit, but never less than minSheetSearch.
func optimizeOptimal(ctx context.Context, stocks []model.Stock, cuts []model.Cut, kerf float64, limit time.Duration, tr Tracer) model.OptimizationResult {
	const algo = model.AlgorithmOptimal
	if limit <= 0 {
		limit = DefaultSearchTimeLimit
	}

	remaining := model.ExpandCuts(cuts)
	sortByArea(remaining)

	result := model.OptimizationResult{Algorithm: algo}
	usage := stockUsage{}
	start := time.Now()

	for len(remaining) > 0 && len(result.Sheets) < maxSheets {
		stock, ok := selectBestStock(stocks, remaining, usage)
		if !ok {
			break
		}
		n := len(result.Sheets) + 1
		tr.Trace(Event{Kind: EventStockSelected, Algorithm: algo, Sheet: n, Stock: stock.Name})

		var pool []model.Cut
		var poolIndex []int
		for i, c := range remaining {
			if model.MaterialCompatible(c.Material, stock.Material) {
				pool = append(pool, c)
				poolIndex = append(poolIndex, i)
			}
		}

		budget := limit - time.Since(start)
		if budget < minSheetSearch {
			budget = minSheetSearch
		}
		sheetStart := time.Now()
		s := &searcher{ctx: ctx, kerf: kerf, deadline: sheetStart.Add(budget)}
		initial := model.NewSheet(stock)
		found := s.search(searchState{rects: initial.Rects, remaining: pool}, searchResult{})

		tr.Trace(Event{
			Kind:      EventSearchFinished,
			Algorithm: algo,
			Sheet:     n,
			Stock:     stock.Name,
			Placed:    len(found.placed),
			Unplaced:  len(pool) - len(found.placed),
			Nodes:     s.nodes,
			TimedOut:  s.timedOut,
			Elapsed:   time.Since(sheetStart),
		})

		if len(found.placed) == 0 {
			break
		}

		usage.open(stock)
		sheet := model.Sheet{Stock: stock, Cuts: found.placed}
		remaining = removeUnits(remaining, poolIndex[:len(found.placed)])
		result.Sheets = append(result.Sheets, sheet)
		traceSheet(tr, algo, n, sheet, remaining)

		if time.Since(start) > limit || ctx.Err() != nil {
			break
		}
	}

	result.Unplaced = remaining
	traceUnplaced(tr, algo, remaining)
	return result
}

// removeUnits drops the unit cuts at the given positions of remaining. The
// search always places the head of its pool, so a sheet's placed cuts are
// the first len(placed) entries of the pool it was given.
func removeUnits(remaining []model.Cut, positions []int) []model.Cut {
	drop := make(map[int]bool, len(positions))
	for _, i := range positions {
		drop[i] = true
	}

	out := make([]model.Cut, 0, len(remaining)-len(drop))
	for i, c := range remaining {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}
