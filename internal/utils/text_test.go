package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 4, CountWords(" the  cat\tsat\ndown "))
}

func TestCleanUp(t *testing.T) {
	assert.Equal(t, "price 10 or more", CleanUp("price $10 or more"))
	assert.Equal(t, "ab", CleanUp("a{}[]#b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("   ", 5))
	assert.Equal(t, "short", Truncate("short", 5))
	assert.Equal(t, "abc…", Truncate("abcdef", 3))
	assert.Equal(t, "今天…", Truncate("今天天气", 2))
}
