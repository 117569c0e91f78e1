package summary

import (
	"fmt"
	"math"
)

const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Scorer scores a token sequence against an indexed sentence.
type Scorer interface {
	Score(query []string, target int) (float64, error)
	Len() int
}

// RelevanceModel holds the BM25 term statistics of a corpus. It is never
// mutated after construction and may be shared by concurrent readers.
type RelevanceModel struct {
	corpus  Corpus
	mode    Mode
	k1      float64
	b       float64
	tf      []map[string]int
	sf      map[string]int
	idf     map[string]float64
	lengths []int
	avgLen  float64
}

type ModelOption func(*RelevanceModel)

func WithMode(mode Mode) ModelOption {
	return func(m *RelevanceModel) { m.mode = mode }
}

// WithParameters overrides k1 and b.
func WithParameters(k1, b float64) ModelOption {
	return func(m *RelevanceModel) {
		m.k1 = k1
		m.b = b
	}
}

func NewRelevanceModel(corpus Corpus, opts ...ModelOption) (*RelevanceModel, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	m := &RelevanceModel{
		corpus:  corpus,
		mode:    ModeRaw,
		k1:      DefaultK1,
		b:       DefaultB,
		tf:      make([]map[string]int, len(corpus)),
		sf:      make(map[string]int),
		idf:     make(map[string]float64),
		lengths: make([]int, len(corpus)),
	}
	for _, opt := range opts {
		opt(m)
	}

	total := 0
	for i, sentence := range corpus {
		tf := make(map[string]int, len(sentence))
		for _, term := range sentence {
			tf[term]++
		}
		for term := range tf {
			m.sf[term]++
		}
		m.tf[i] = tf
		m.lengths[i] = len(sentence)
		total += len(sentence)
	}
	m.avgLen = float64(total) / float64(len(corpus))

	d := float64(len(corpus))
	for term, sf := range m.sf {
		// negative for terms present in more than half the sentences
		m.idf[term] = math.Log(d-float64(sf)+0.5) - math.Log(float64(sf)+0.5)
	}

	return m, nil
}

func (m *RelevanceModel) Len() int {
	return len(m.corpus)
}

func (m *RelevanceModel) Mode() Mode {
	return m.mode
}

func (m *RelevanceModel) AverageLength() float64 {
	return m.avgLen
}

func (m *RelevanceModel) Sentence(i int) (Sentence, error) {
	if err := m.checkIndex(i); err != nil {
		return nil, err
	}
	return m.corpus[i], nil
}

// IDF returns the inverse sentence frequency of term and whether the term
// occurs anywhere in the corpus.
func (m *RelevanceModel) IDF(term string) (float64, bool) {
	v, ok := m.idf[term]
	return v, ok
}

func (m *RelevanceModel) SentenceFrequency(term string) int {
	return m.sf[term]
}

func (m *RelevanceModel) TermFrequency(i int, term string) (int, error) {
	if err := m.checkIndex(i); err != nil {
		return 0, err
	}
	return m.tf[i][term], nil
}

// Score computes the BM25 relevance of query against the sentence at target.
// Query terms outside the corpus vocabulary contribute zero.
func (m *RelevanceModel) Score(query []string, target int) (float64, error) {
	if err := m.checkIndex(target); err != nil {
		return 0, err
	}
	return m.score(query, target), nil
}

// ScoreAll scores query against every sentence, indexed by position.
func (m *RelevanceModel) ScoreAll(query []string) []float64 {
	scores := make([]float64, len(m.corpus))
	for i := range m.corpus {
		scores[i] = m.score(query, i)
	}
	return scores
}

func (m *RelevanceModel) score(query []string, target int) float64 {
	tf := m.tf[target]
	norm := m.k1 * (1 - m.b + m.b*float64(m.lengths[target])/m.avgLen)

	score := 0.0
	for _, term := range query {
		idf, ok := m.idf[term]
		if !ok {
			continue
		}
		f := float64(tf[term])
		if f == 0 {
			continue
		}
		score += idf * f * (m.k1 + 1) / (f + norm)
	}

	if m.mode == ModeNormalized {
		score /= float64(len(query) + len(m.corpus))
	}
	return score
}

func (m *RelevanceModel) checkIndex(i int) error {
	if i < 0 || i >= len(m.corpus) {
		return fmt.Errorf("relevance model: %w", &IndexError{Index: i, Len: len(m.corpus)})
	}
	return nil
}
