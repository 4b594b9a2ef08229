package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, "debug", LevelDebug.String())
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestNewLogger_NoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, LevelInfo).Info("plain")
	assert.NotContains(t, buf.String(), "\x1b[")

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
	assert.False(t, isTerminal(&buf))
}

func TestTracer_LogsEvents(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(NewLogger(&buf, LevelDebug))

	tr.Trace(engine.Event{Kind: engine.EventCutPlaced, Algorithm: "guillotine", Sheet: 1, Cut: "Side"})
	tr.Trace(engine.Event{Kind: engine.EventWinnerChosen, Algorithm: "shelf", Sheet: 2})

	out := buf.String()
	assert.Contains(t, out, "cut_placed")
	assert.Contains(t, out, "cut=Side")
	assert.Contains(t, out, "winner_chosen")
	assert.Contains(t, out, "algorithm=shelf")
}

func TestTracer_DebugEventsHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(NewLogger(&buf, LevelInfo))

	tr.Trace(engine.Event{Kind: engine.EventStockSelected, Stock: "4x8"})
	assert.Empty(t, buf.String())

	tr.Trace(engine.Event{Kind: engine.EventWinnerChosen, Algorithm: "optimal"})
	assert.Contains(t, buf.String(), "winner_chosen")
}

func TestTracer_NilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTracer(nil).Trace(engine.Event{Kind: engine.EventCutUnplaced})
	})
}
