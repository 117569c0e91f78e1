package summary

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	DefaultRedundancyThreshold = 10.0
	DefaultOutputSize          = 5
)

// SelectTopN picks up to size sentences by descending importance. The top
// sentence is always kept; any later candidate whose relevance against an
// already selected sentence exceeds threshold is skipped as redundant. The
// selection is returned in document order.
func SelectTopN(scores []float64, model Scorer, corpus Corpus, size int, threshold float64) ([]int, error) {
	if len(scores) != len(corpus) || model.Len() != len(corpus) {
		return nil, fmt.Errorf("selector: %d scores for %d sentences (model has %d): %w",
			len(scores), len(corpus), model.Len(), ErrIndexOutOfRange)
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	if size <= 0 {
		return []int{}, nil
	}

	ranked := make([]int, len(scores))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	selected := make([]int, 0, min(size, len(ranked)))
	selected = append(selected, ranked[0])

	for _, i := range ranked[1:] {
		if len(selected) >= size {
			break
		}

		redundant := false
		for _, j := range selected {
			value, err := model.Score(corpus[i], j)
			if err != nil {
				return nil, fmt.Errorf("selector: %w", err)
			}
			if value > threshold {
				redundant = true
				break
			}
		}
		if !redundant {
			selected = append(selected, i)
		}
	}

	slices.Sort(selected)
	return selected, nil
}
