package engine

import (
	"time"

	"github.com/piwi3910/kerfcut/internal/model"
)

// EventKind identifies a coarse optimizer decision point.
type EventKind string

const (
	EventStockSelected  EventKind = "stock_selected"
	EventCutPlaced      EventKind = "cut_placed"
	EventCutUnplaced    EventKind = "cut_unplaced"
	EventSheetClosed    EventKind = "sheet_closed"
	EventSearchFinished EventKind = "search_finished"
	EventWinnerChosen   EventKind = "winner_chosen"
)

// Event describes one decision. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Algorithm model.Algorithm
	Sheet     int    // 1-based sheet number
	Stock     string // stock name
	Cut       string // cut label
	Rotated   bool
	Placed    int
	Unplaced  int
	Nodes     int
	TimedOut  bool
	Elapsed   time.Duration
}

// Tracer receives optimizer events. Implementations must be safe for
// concurrent use because the best-of strategy runs algorithms in parallel.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Event)

func (f TracerFunc) Trace(e Event) { f(e) }

type nopTracer struct{}

func (nopTracer) Trace(Event) {}

// NopTracer discards all events.
var NopTracer Tracer = nopTracer{}

// traceSheet reports a closed sheet and each of its placements.
func traceSheet(tr Tracer, algo model.Algorithm, n int, s model.Sheet, unplaced []model.Cut) {
	for _, c := range s.Cuts {
		tr.Trace(Event{Kind: EventCutPlaced, Algorithm: algo, Sheet: n, Stock: s.Stock.Name, Cut: c.Label, Rotated: c.Rotated})
	}
	tr.Trace(Event{Kind: EventSheetClosed, Algorithm: algo, Sheet: n, Stock: s.Stock.Name, Placed: len(s.Cuts), Unplaced: len(unplaced)})
}

// traceUnplaced reports the cuts a run gave up on.
func traceUnplaced(tr Tracer, algo model.Algorithm, unplaced []model.Cut) {
	for _, c := range unplaced {
		tr.Trace(Event{Kind: EventCutUnplaced, Algorithm: algo, Cut: c.Label})
	}
}
