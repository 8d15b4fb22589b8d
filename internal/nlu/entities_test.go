package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumberDigits(t *testing.T) {
	n, ok := ExtractNumber("25 मिनट का टाइमर")
	assert.True(t, ok)
	assert.Equal(t, 25, n)

	// First digit run wins.
	n, _ = ExtractNumber("5 बजे 10 मिनट")
	assert.Equal(t, 5, n)
}

func TestExtractNumberDevanagariDigits(t *testing.T) {
	n, ok := ExtractNumber("५ मिनट का टाइमर")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, _ = ExtractNumber("१० बजे")
	assert.Equal(t, 10, n)

	assert.Equal(t, 300, ExtractDuration("५ मिनट"))
}

func TestExtractNumberHindiWords(t *testing.T) {
	n, ok := ExtractNumber("दस बजे")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, _ = ExtractNumber("पचास प्रतिशत")
	assert.Equal(t, 50, n)

	_, ok = ExtractNumber("कोई संख्या नहीं")
	assert.False(t, ok)
}

func TestExtractDuration(t *testing.T) {
	assert.Equal(t, 300, ExtractDuration("5 मिनट का टाइमर लगाओ"))
	assert.Equal(t, 7200, ExtractDuration("दो घंटे"))
	assert.Equal(t, 30, ExtractDuration("30 सेकंड"))
	// No numeral, no unit: one minute.
	assert.Equal(t, 60, ExtractDuration("टाइमर लगाओ"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2 घंटे", FormatDuration(7200))
	assert.Equal(t, "5 मिनट", FormatDuration(300))
	assert.Equal(t, "45 सेकंड", FormatDuration(45))
}

func TestExtract(t *testing.T) {
	entities := Extract("5 मिनट का टाइमर लगाओ", IntentSetTimer)
	assert.Equal(t, 300, entities["duration"])
	assert.Equal(t, "5 मिनट", entities["duration_str"])
	assert.Equal(t, 5, entities["number"])

	// Numbers are extracted for any intent.
	entities = Extract("वॉल्यूम 80 करो", "volume_up")
	assert.Equal(t, 80, entities["number"])
	assert.NotContains(t, entities, "duration")

	assert.Empty(t, Extract("नमस्ते", "greeting"))
}
