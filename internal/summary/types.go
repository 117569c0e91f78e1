package summary

import (
	"errors"
	"fmt"
	"strings"
)

// Sentence is one unit of text as an ordered token sequence.
type Sentence []string

// Corpus is the ordered set of sentences ranked in one run. Indices are
// stable for the lifetime of the run.
type Corpus []Sentence

// Mode selects the relevance scoring variant.
type Mode int

const (
	ModeRaw Mode = iota
	ModeNormalized
)

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeNormalized:
		return "normalized"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return ModeRaw, nil
	case "normalized", "normalised":
		return ModeNormalized, nil
	default:
		return ModeRaw, fmt.Errorf("unknown scoring mode %q (supported: raw, normalized)", s)
	}
}

var (
	ErrEmptyCorpus     = errors.New("corpus has no sentences")
	ErrIndexOutOfRange = errors.New("sentence index out of range")
)

// IndexError reports a sentence index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("sentence index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// SolverState is the terminal state of the importance iteration.
type SolverState int

const (
	StateRunning SolverState = iota
	StateConverged
	StateExhaustedIterations
)

func (s SolverState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhaustedIterations:
		return "exhausted_iterations"
	default:
		return fmt.Sprintf("SolverState(%d)", int(s))
	}
}

func (s SolverState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ranking is the importance vector produced by Graph.Solve.
type Ranking struct {
	Scores     []float64
	Iterations int
	State      SolverState
	MaxDiff    float64
}

// Result is the outcome of one summarization run.
type Result struct {
	RunID      string      `json:"-"`
	Indices    []int       `json:"indices"`
	Scores     []float64   `json:"scores"`
	Iterations int         `json:"iterations"`
	State      SolverState `json:"state"`
}
