// Package parser turns raw text into the sentence and token sequences the
// summarizer ranks. It splits on delimiter runes, normalizes and tokenizes
// each sentence, and drops stop words from an explicitly supplied list.
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/wgomg/sumrank/internal/summary"
	"github.com/wgomg/sumrank/internal/utils"
)

const DefaultDelimiters = "。！？；!?;.\n"

type Parser struct {
	delimiters map[rune]struct{}
	stopwords  map[string]struct{}
	lowercase  bool
}

type Option func(*Parser)

func WithDelimiters(delimiters string) Option {
	return func(p *Parser) { p.SetDelimiters(delimiters) }
}

func WithStopwords(words map[string]struct{}) Option {
	return func(p *Parser) { p.stopwords = words }
}

func WithLowercase(lowercase bool) Option {
	return func(p *Parser) { p.lowercase = lowercase }
}

func New(opts ...Option) *Parser {
	p := &Parser{
		stopwords: map[string]struct{}{},
		lowercase: true,
	}
	p.SetDelimiters(DefaultDelimiters)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDelimiters replaces the sentence boundary runes. An empty string keeps
// the whole text as one sentence.
func (p *Parser) SetDelimiters(delimiters string) {
	p.delimiters = make(map[rune]struct{}, len(delimiters))
	for _, r := range delimiters {
		p.delimiters[r] = struct{}{}
	}
}

// CutSentences splits text after every delimiter rune. The delimiter stays
// with the sentence it ends. Sentences are trimmed and whitespace-only
// fragments are dropped.
func (p *Parser) CutSentences(text string) []string {
	var sentences []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			sentences = append(sentences, s)
		}
		buf.Reset()
	}

	for _, r := range text {
		buf.WriteRune(r)
		if _, ok := p.delimiters[r]; ok {
			flush()
		}
	}
	flush()

	return sentences
}

// Tokenize returns the word tokens of a sentence. Letter and digit runs form
// one token; Han characters are emitted one per token.
func (p *Parser) Tokenize(sentence string) []string {
	text := utils.CleanUp(norm.NFKC.String(sentence))
	if p.lowercase {
		text = strings.ToLower(text)
	}

	var tokens []string
	var word strings.Builder

	emit := func(tok string) {
		if tok == "" {
			return
		}
		if _, stop := p.stopwords[tok]; stop {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			emit(word.String())
			word.Reset()
			emit(string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			word.WriteRune(r)
		default:
			emit(word.String())
			word.Reset()
		}
	}
	emit(word.String())

	return tokens
}

// Parse cuts text into sentences and tokenizes each one. The returned raw
// sentences and corpus share indices.
func (p *Parser) Parse(text string) ([]string, summary.Corpus) {
	raw := p.CutSentences(text)
	corpus := make(summary.Corpus, len(raw))
	for i, s := range raw {
		corpus[i] = p.Tokenize(s)
	}
	return raw, corpus
}
