package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wgomg/sumrank/internal/config"
	"github.com/wgomg/sumrank/internal/parser"
	"github.com/wgomg/sumrank/internal/summary"
	"github.com/wgomg/sumrank/internal/utils"
)

var (
	summarizeSize       int
	summarizeMode       string
	summarizeThreshold  float64
	summarizeDamping    float64
	summarizeMaxIter    int
	summarizeMinDiff    float64
	summarizeK1         float64
	summarizeB          float64
	summarizeWorkers    int
	summarizeDelimiters string
	summarizeStopwords  string
	summarizeSeparator  string
	summarizeJSON       bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a text document",
	Long: `Reads a document from file (or stdin when no file or "-" is given), splits
it into sentences, ranks them with BM25-weighted TextRank and prints the
selected sentences in their original order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	f := summarizeCmd.Flags()
	f.IntVarP(&summarizeSize, "size", "n", summary.DefaultOutputSize, "number of sentences to select")
	f.StringVar(&summarizeMode, "mode", summary.ModeRaw.String(), "relevance scoring mode (raw, normalized)")
	f.Float64Var(&summarizeThreshold, "threshold", summary.DefaultRedundancyThreshold, "relevance score above which a sentence is redundant")
	f.Float64Var(&summarizeDamping, "damping", summary.DefaultDamping, "damping factor")
	f.IntVar(&summarizeMaxIter, "max-iter", summary.DefaultMaxIterations, "maximum importance iterations")
	f.Float64Var(&summarizeMinDiff, "min-diff", summary.DefaultMinDiff, "convergence tolerance")
	f.Float64Var(&summarizeK1, "k1", summary.DefaultK1, "BM25 term frequency saturation")
	f.Float64Var(&summarizeB, "b", summary.DefaultB, "BM25 length normalization")
	f.IntVar(&summarizeWorkers, "workers", 0, "graph construction workers (0 uses the configured default)")
	f.StringVar(&summarizeDelimiters, "delimiters", parser.DefaultDelimiters, "sentence delimiter characters")
	f.StringVar(&summarizeStopwords, "stopwords", "", "path to a stop word list, one word per line")
	f.StringVar(&summarizeSeparator, "separator", " ", "separator placed between selected sentences")
	f.BoolVar(&summarizeJSON, "json", false, "output the selection as JSON")
	rootCmd.AddCommand(summarizeCmd)
}

type summarizeOutput struct {
	Summary    string    `json:"summary"`
	Indices    []int     `json:"indices"`
	Sentences  []string  `json:"sentences"`
	Scores     []float64 `json:"scores"`
	Iterations int       `json:"iterations"`
	State      string    `json:"state"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := utils.NewLoggerWithWriter(cfg.App.LogLevel, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	p, err := newParser(cfg)
	if err != nil {
		return err
	}
	raw, corpus := p.Parse(text)
	logger.Debug(nil, "Parsed %d sentences, %d words", len(raw), utils.CountWords(text))

	opts, err := cfg.SummaryOptions()
	if err != nil {
		return err
	}

	result, err := summary.Summarize(cmd.Context(), corpus, opts, logger)
	if err != nil {
		return err
	}

	rendered, err := summary.Render(result.Indices, raw, cfg.Parser.Separator)
	if err != nil {
		return err
	}
	for _, i := range result.Indices {
		logger.Debug(&result.RunID, "#%d (%.4f) %s", i, result.Scores[i], utils.Truncate(raw[i], 60))
	}

	out := cmd.OutOrStdout()
	if summarizeJSON {
		selected := make([]string, len(result.Indices))
		for k, i := range result.Indices {
			selected[k] = raw[i]
		}
		data, err := json.MarshalIndent(summarizeOutput{
			Summary:    rendered,
			Indices:    result.Indices,
			Sentences:  selected,
			Scores:     result.Scores,
			Iterations: result.Iterations,
			State:      result.State.String(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

// loadConfig reads the config file and environment, then applies any flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}

	f := cmd.Flags()
	if f.Changed("size") {
		cfg.Summary.OutputSize = summarizeSize
	}
	if f.Changed("mode") {
		cfg.Summary.Mode = summarizeMode
	}
	if f.Changed("threshold") {
		cfg.Summary.RedundancyThreshold = summarizeThreshold
	}
	if f.Changed("damping") {
		cfg.Summary.Damping = summarizeDamping
	}
	if f.Changed("max-iter") {
		cfg.Summary.MaxIterations = summarizeMaxIter
	}
	if f.Changed("min-diff") {
		cfg.Summary.MinDiff = summarizeMinDiff
	}
	if f.Changed("k1") {
		cfg.Summary.K1 = summarizeK1
	}
	if f.Changed("b") {
		cfg.Summary.B = summarizeB
	}
	if f.Changed("workers") && summarizeWorkers > 0 {
		cfg.Summary.Workers = summarizeWorkers
	}
	if f.Changed("delimiters") {
		cfg.Parser.Delimiters = summarizeDelimiters
	}
	if f.Changed("stopwords") {
		cfg.Parser.StopwordsPath = summarizeStopwords
	}
	if f.Changed("separator") {
		cfg.Parser.Separator = summarizeSeparator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func newParser(cfg *config.Config) (*parser.Parser, error) {
	opts := []parser.Option{
		parser.WithDelimiters(cfg.Parser.Delimiters),
		parser.WithLowercase(cfg.Parser.Lowercase),
	}
	if cfg.Parser.StopwordsPath != "" {
		words, err := parser.LoadStopwords(cfg.Parser.StopwordsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithStopwords(words))
	}
	return parser.New(opts...), nil
}
