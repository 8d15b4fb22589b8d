package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityBounds(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("समय", "समय"))
	assert.Equal(t, 0.0, Similarity("", "समय"))
	assert.Equal(t, 0.0, Similarity("समय", ""))
	assert.Equal(t, 0.0, Similarity("", ""))
}

func TestSimilarityConfusables(t *testing.T) {
	// तारीक vs तारीख: four exact runes plus the क/ख confusable pair.
	got := Similarity("तारीक", "तारीख")
	assert.InDelta(t, 4.8/5.0, got, 1e-9)

	// Symmetric.
	assert.InDelta(t, got, Similarity("तारीख", "तारीक"), 1e-9)
}

func TestSimilarityLookahead(t *testing.T) {
	// One inserted rune: the lookahead realigns and only the insertion
	// costs credit.
	assert.InDelta(t, 4.0/5.0, Similarity("abcd", "abxcd"), 1e-9)
	assert.InDelta(t, 4.0/5.0, Similarity("abxcd", "abcd"), 1e-9)
}

func TestSimilarityNoCreditMismatch(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestSimilarityNuktaConsonants(t *testing.T) {
	// Precomposed nukta consonants pair with their base forms.
	assert.InDelta(t, 3.8/4.0, Similarity("जहाज", "जहाज़"), 1e-9)
	assert.InDelta(t, 2.8/3.0, Similarity("राम", "ड़ाम"), 1e-9)

	// A decomposed consonant+nukta scans as two runes and earns nothing.
	assert.Equal(t, 0.0, Similarity("र", "ड\u093c"))
}

func TestSimilarityUnmappedCharacter(t *testing.T) {
	// Unmapped characters never earn partial credit.
	assert.InDelta(t, 2.0/3.0, Similarity("अमर", "अxर"), 1e-9)
}
