package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuess(t *testing.T) {
	g, err := parseGuess(`{"intent": "get_time", "confidence": 0.8}`)
	require.NoError(t, err)
	assert.Equal(t, "get_time", g.Intent)
	assert.Equal(t, 0.8, g.Confidence)
}

func TestParseGuessRejectsBadPayloads(t *testing.T) {
	_, err := parseGuess("not json")
	assert.Error(t, err)

	_, err = parseGuess(`{"intent": "get_time", "confidence": 1.5}`)
	assert.Error(t, err)
}

func TestClassifierFiltersUnregisteredIntents(t *testing.T) {
	c, err := New("test-key", "", []string{"greeting", "get_time", "unknown"})
	require.NoError(t, err)

	assert.True(t, c.intents["greeting"])
	assert.False(t, c.intents["turn_on"])
	assert.Contains(t, c.prompt, `"get_time"`)
}
