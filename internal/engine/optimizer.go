package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/piwi3910/kerfcut/internal/model"
)

// ErrUnknownAlgorithm is returned for an algorithm name the engine does not know.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Optimizer runs the cut-stock optimization.
type Optimizer struct {
	Settings model.CutSettings
	tracer   Tracer
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithTracer routes optimizer events to t.
func WithTracer(t Tracer) Option {
	return func(o *Optimizer) {
		if t != nil {
			o.tracer = t
		}
	}
}

func New(settings model.CutSettings, opts ...Option) *Optimizer {
	o := &Optimizer{Settings: settings, tracer: NopTracer}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize lays out cuts on stocks with the configured algorithm. Cuts that
// fit nowhere end up in Unplaced; only an unknown algorithm is an error.
// ctx only bounds the branch-and-bound search. Stocks with an empty or
// repeated ID are given a distinct one in the result.
func (o *Optimizer) Optimize(ctx context.Context, stocks []model.Stock, cuts []model.Cut) (model.OptimizationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	kerf := o.Settings.Kerf
	stocks = distinctStockIDs(stocks)

	var result model.OptimizationResult
	switch o.Settings.Algorithm {
	case model.AlgorithmGuillotine:
		result = optimizeGuillotine(stocks, cuts, kerf, o.tracer)
	case model.AlgorithmShelf:
		result = optimizeShelf(stocks, cuts, kerf, o.tracer)
	case model.AlgorithmOptimal:
		result = optimizeOptimal(ctx, stocks, cuts, kerf, o.Settings.SearchTimeLimit, o.tracer)
	case model.AlgorithmBest, "":
		result = optimizeBest(ctx, stocks, cuts, kerf, o.Settings.SearchTimeLimit, o.tracer)
	default:
		return model.OptimizationResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, o.Settings.Algorithm)
	}

	if result.Sheets == nil {
		result.Sheets = []model.Sheet{}
	}
	if result.Unplaced == nil {
		result.Unplaced = []model.Cut{}
	}
	return result, nil
}

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(name string) (model.Algorithm, error) {
	for _, a := range model.Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
