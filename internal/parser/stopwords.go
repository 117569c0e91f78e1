package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStopwords reads one stop word per line. Blank lines and lines starting
// with '#' are ignored.
func ReadStopwords(r io.Reader) (map[string]struct{}, error) {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words[strings.ToLower(w)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return words, nil
}

func LoadStopwords(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords %s: %w", path, err)
	}
	defer f.Close()

	return ReadStopwords(f)
}
