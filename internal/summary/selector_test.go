package summary

import (
	"cmp"
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rank(t *testing.T, corpus Corpus) (*RelevanceModel, []float64) {
	t.Helper()
	m, g := buildGraph(t, corpus, 0)
	return m, g.Solve(DefaultSolverOptions()).Scores
}

func TestSelectTopN_CatScenario(t *testing.T) {
	corpus := catCorpus()
	m, scores := rank(t, corpus)

	tests := []struct {
		name      string
		size      int
		threshold float64
		want      []int
	}{
		{"size one keeps top sentence", 1, DefaultRedundancyThreshold, []int{0}},
		{"size two", 2, DefaultRedundancyThreshold, []int{0, 1}},
		{"size three", 3, DefaultRedundancyThreshold, []int{0, 1, 2}},
		{"size larger than corpus", 10, DefaultRedundancyThreshold, []int{0, 1, 2}},
		// s1 scores about -1.09 against s0, s2 scores 0
		{"threshold between scores", 3, -0.5, []int{0, 1}},
		{"threshold below every score", 3, -2, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTopN(scores, m, corpus, tt.size, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectTopN_DuplicatePairKeepsOne(t *testing.T) {
	corpus := Corpus{
		{"apple", "pie"},
		{"apple", "pie"},
		{"dog", "ran"},
		{"cat", "sat"},
		{"sun", "hot"},
	}
	m, scores := rank(t, corpus)

	mutual, err := m.Score(corpus[1], 0)
	require.NoError(t, err)
	require.Greater(t, mutual, 0.1)

	got, err := SelectTopN(scores, m, corpus, 5, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 4}, got)

	got, err = SelectTopN(scores, m, corpus, 5, DefaultRedundancyThreshold)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestSelectTopN_TiesBrokenByIndex(t *testing.T) {
	corpus := Corpus{{"a"}, {"b"}, {"c"}, {"d"}}
	m, err := NewRelevanceModel(corpus)
	require.NoError(t, err)

	scores := []float64{0.5, 0.9, 0.5, 0.9}
	got, err := SelectTopN(scores, m, corpus, 1, DefaultRedundancyThreshold)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	got, err = SelectTopN(scores, m, corpus, 3, DefaultRedundancyThreshold)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, got)
}

func TestSelectTopN_SingleSentence(t *testing.T) {
	corpus := Corpus{{"only", "one"}}
	m, scores := rank(t, corpus)

	for _, size := range []int{1, 2, 5} {
		got, err := SelectTopN(scores, m, corpus, size, DefaultRedundancyThreshold)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, got)
	}
}

func TestSelectTopN_NonPositiveSize(t *testing.T) {
	corpus := catCorpus()
	m, scores := rank(t, corpus)

	got, err := SelectTopN(scores, m, corpus, 0, DefaultRedundancyThreshold)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectTopN_ScoreLengthMismatch(t *testing.T) {
	corpus := catCorpus()
	m, err := NewRelevanceModel(corpus)
	require.NoError(t, err)

	_, err = SelectTopN([]float64{1, 2}, m, corpus, 2, DefaultRedundancyThreshold)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSelectTopN_Properties(t *testing.T) {
	vocab := []string{"alpha", "beta", "gamma", "delta", "eps", "zeta", "eta", "theta"}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(12)
		corpus := make(Corpus, n)
		for i := range corpus {
			length := rng.Intn(6)
			for k := 0; k < length; k++ {
				corpus[i] = append(corpus[i], vocab[rng.Intn(len(vocab))])
			}
		}

		m, err := NewRelevanceModel(corpus)
		require.NoError(t, err)
		g, err := NewGraph(context.Background(), m, 0)
		require.NoError(t, err)
		scores := g.Solve(DefaultSolverOptions()).Scores

		top := 0
		for i, s := range scores {
			if cmp.Compare(s, scores[top]) > 0 {
				top = i
			}
		}

		for _, size := range []int{1, 2, 3, 5, 20} {
			for _, threshold := range []float64{-1, 0, 0.5, DefaultRedundancyThreshold} {
				got, err := SelectTopN(scores, m, corpus, size, threshold)
				require.NoError(t, err)

				assert.LessOrEqual(t, len(got), min(size, n), "trial %d", trial)
				assert.Contains(t, got, top, "trial %d", trial)
				assert.True(t, slices.IsSorted(got), "trial %d", trial)
				assert.Len(t, slices.Compact(slices.Clone(got)), len(got), "trial %d: duplicates in %v", trial, got)
			}
		}
	}
}
