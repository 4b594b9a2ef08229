package logging

import (
	"context"
	"log/slog"

	"github.com/piwi3910/kerfcut/internal/engine"
)

// Tracer forwards optimizer events to a slog.Logger at debug level, except
// the final winner which is logged at info.
type Tracer struct {
	logger *slog.Logger
}

// NewTracer constructs a Tracer bound to logger.
func NewTracer(logger *slog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// Trace implements engine.Tracer.
func (t *Tracer) Trace(e engine.Event) {
	if t.logger == nil {
		return
	}

	level := slog.LevelDebug
	if e.Kind == engine.EventWinnerChosen {
		level = slog.LevelInfo
	}
	if !t.logger.Enabled(context.Background(), level) {
		return
	}

	attrs := []slog.Attr{slog.String("algorithm", string(e.Algorithm))}
	switch e.Kind {
	case engine.EventStockSelected:
		attrs = append(attrs, slog.Int("sheet", e.Sheet), slog.String("stock", e.Stock))
	case engine.EventCutPlaced:
		attrs = append(attrs, slog.Int("sheet", e.Sheet), slog.String("cut", e.Cut), slog.Bool("rotated", e.Rotated))
	case engine.EventCutUnplaced:
		attrs = append(attrs, slog.String("cut", e.Cut))
	case engine.EventSheetClosed:
		attrs = append(attrs, slog.Int("sheet", e.Sheet), slog.String("stock", e.Stock), slog.Int("placed", e.Placed), slog.Int("remaining", e.Unplaced))
	case engine.EventSearchFinished:
		attrs = append(attrs,
			slog.Int("sheet", e.Sheet),
			slog.Int("placed", e.Placed),
			slog.Int("nodes", e.Nodes),
			slog.Bool("timed_out", e.TimedOut),
			slog.Duration("elapsed", e.Elapsed),
		)
	case engine.EventWinnerChosen:
		attrs = append(attrs, slog.Int("sheets", e.Sheet), slog.Int("placed", e.Placed), slog.Int("unplaced", e.Unplaced))
	}

	t.logger.LogAttrs(context.Background(), level, string(e.Kind), attrs...)
}
