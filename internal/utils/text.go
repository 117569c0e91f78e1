package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var symbolRe = regexp.MustCompile(`[$€£¥¢%&*+=<>^|~@#\\_\[\]{}]`)

func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CleanUp strips symbols that never carry meaning for term statistics.
func CleanUp(text string) string {
	return symbolRe.ReplaceAllString(text, "")
}

// Truncate shortens s to at most maxRunes runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, maxRunes int) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	maxRunes = max(maxRunes, 0)
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}
