// kerfcut: cut list optimizer for rectangular stock sheets
//
// Lays out parts on plywood, MDF and other sheet goods with saw kerf
// accounted for, and exports the layouts as PDF, labels, CSV, SVG, DXF,
// Excel or an HTML utilization chart. `kerfcut serve` exposes the same
// optimizer as a JSON HTTP API.
//
// Build:
//   go build -o kerfcut ./cmd/kerfcut
//
// Example:
//   kerfcut optimize --cuts parts.csv --preset "4x8 Plywood:2" -o layout.pdf

package main

import (
	"os"

	"github.com/piwi3910/kerfcut/internal/cli"
	"github.com/piwi3910/kerfcut/internal/logging"
)

func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
