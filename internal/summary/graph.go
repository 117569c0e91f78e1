package summary

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultDamping       = 0.85
	DefaultMaxIterations = 200
	DefaultMinDiff       = 0.001
)

type SolverOptions struct {
	Damping       float64
	MaxIterations int
	MinDiff       float64
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Damping:       DefaultDamping,
		MaxIterations: DefaultMaxIterations,
		MinDiff:       DefaultMinDiff,
	}
}

// Graph is the weighted sentence graph. Row i holds the scores of sentence
// i's tokens used as a query against every sentence as the scored document.
type Graph struct {
	weight    *mat.Dense
	weightSum []float64
}

// NewGraph scores every sentence against the whole corpus. Rows are computed
// concurrently on up to workers goroutines; each goroutine writes only its
// own row.
func NewGraph(ctx context.Context, model *RelevanceModel, workers int) (*Graph, error) {
	n := model.Len()
	if n == 0 {
		return nil, ErrEmptyCorpus
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g := &Graph{
		weight:    mat.NewDense(n, n, nil),
		weightSum: make([]float64, n),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := model.ScoreAll(model.corpus[i])
			g.weight.SetRow(i, row)
			// weightSum excludes the diagonal
			row[i] = 0
			g.weightSum[i] = floats.Sum(row)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("graph: build weights: %w", err)
	}

	return g, nil
}

func (g *Graph) Len() int {
	return len(g.weightSum)
}

// Weight returns weight[i][j], the score of sentence i's tokens against
// sentence j.
func (g *Graph) Weight(i, j int) float64 {
	return g.weight.At(i, j)
}

func (g *Graph) WeightSum(i int) float64 {
	return g.weightSum[i]
}

// Solve runs the damped power iteration from a vector of ones. Sentences
// with a zero weight sum have no outgoing mass and are skipped as sources.
// Hitting MaxIterations is a normal terminal state, not an error.
func (g *Graph) Solve(opts SolverOptions) Ranking {
	n := g.Len()
	d := opts.Damping

	vertex := make([]float64, n)
	for i := range vertex {
		vertex[i] = 1.0
	}

	ranking := Ranking{State: StateRunning}
	next := make([]float64, n)
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		maxDiff := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if j == i || g.weightSum[j] == 0 {
					continue
				}
				sum += g.weight.At(j, i) / g.weightSum[j] * vertex[j]
			}
			next[i] = (1 - d) + d*sum
			maxDiff = math.Max(maxDiff, math.Abs(next[i]-vertex[i]))
		}
		vertex, next = next, vertex

		ranking.Iterations = iter
		ranking.MaxDiff = maxDiff
		if maxDiff <= opts.MinDiff {
			ranking.State = StateConverged
			break
		}
	}
	if ranking.State == StateRunning {
		ranking.State = StateExhaustedIterations
	}

	ranking.Scores = vertex
	return ranking
}
