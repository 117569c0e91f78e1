package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wgomg/sumrank/internal/utils"
)

// Options configures one summarization run.
type Options struct {
	Mode                Mode
	Damping             float64
	MaxIterations       int
	MinDiff             float64
	K1                  float64
	B                   float64
	RedundancyThreshold float64
	OutputSize          int
	Workers             int
}

func DefaultOptions() Options {
	return Options{
		Mode:                ModeRaw,
		Damping:             DefaultDamping,
		MaxIterations:       DefaultMaxIterations,
		MinDiff:             DefaultMinDiff,
		K1:                  DefaultK1,
		B:                   DefaultB,
		RedundancyThreshold: DefaultRedundancyThreshold,
		OutputSize:          DefaultOutputSize,
	}
}

func (o Options) Validate() error {
	var errs []error
	if o.Mode != ModeRaw && o.Mode != ModeNormalized {
		errs = append(errs, fmt.Errorf("unknown mode %v", o.Mode))
	}
	if o.Damping <= 0 || o.Damping >= 1 {
		errs = append(errs, fmt.Errorf("damping must be in (0, 1), got %g", o.Damping))
	}
	if o.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("max iterations must be positive, got %d", o.MaxIterations))
	}
	if o.MinDiff < 0 {
		errs = append(errs, fmt.Errorf("min diff must not be negative, got %g", o.MinDiff))
	}
	if o.K1 < 0 {
		errs = append(errs, fmt.Errorf("k1 must not be negative, got %g", o.K1))
	}
	if o.B < 0 || o.B > 1 {
		errs = append(errs, fmt.Errorf("b must be in [0, 1], got %g", o.B))
	}
	if o.OutputSize <= 0 {
		errs = append(errs, fmt.Errorf("output size must be positive, got %d", o.OutputSize))
	}
	return errors.Join(errs...)
}

// Summarize ranks the corpus and returns the selected sentence indices in
// document order. It performs no I/O beyond logging.
func Summarize(ctx context.Context, corpus Corpus, opts Options, logger *utils.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("summarize: invalid options: %w", err)
	}
	if logger == nil {
		logger = utils.NewDiscardLogger()
	}

	runID := uuid.NewString()

	model, err := NewRelevanceModel(corpus, WithMode(opts.Mode), WithParameters(opts.K1, opts.B))
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	logger.Debug(&runID, "Indexed %d sentences (avg length %.2f, mode %s)", model.Len(), model.AverageLength(), model.Mode())

	graph, err := NewGraph(ctx, model, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	ranking := graph.Solve(SolverOptions{
		Damping:       opts.Damping,
		MaxIterations: opts.MaxIterations,
		MinDiff:       opts.MinDiff,
	})
	if ranking.State == StateExhaustedIterations {
		logger.Info(&runID, "Importance iteration stopped after %d rounds without converging (max diff %g)", ranking.Iterations, ranking.MaxDiff)
	} else {
		logger.Debug(&runID, "Importance iteration converged after %d rounds", ranking.Iterations)
	}

	indices, err := SelectTopN(ranking.Scores, model, corpus, opts.OutputSize, opts.RedundancyThreshold)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	logger.Debug(&runID, "Selected sentences %v", indices)

	return &Result{
		RunID:      runID,
		Indices:    indices,
		Scores:     ranking.Scores,
		Iterations: ranking.Iterations,
		State:      ranking.State,
	}, nil
}

// Render joins the raw texts of the selected sentences in selection order.
func Render(indices []int, sentences []string, sep string) (string, error) {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(sentences) {
			return "", fmt.Errorf("render: %w", &IndexError{Index: i, Len: len(sentences)})
		}
		parts = append(parts, sentences[i])
	}
	return strings.Join(parts, sep), nil
}
