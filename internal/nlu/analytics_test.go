package nlu

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAppendsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.jsonl")
	tr := NewTracker(path, defaultMinConfidence)

	tr.Log("नमस्ते", "greeting", 1.0, MatchExact)
	tr.Log("xyz", IntentUnknown, 0.3, MatchNgram)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, sc.Err())

	require.Len(t, records, 2)
	assert.Equal(t, "नमस्ते", records[0].Text)
	assert.Equal(t, "greeting", records[0].Intent)
	assert.Equal(t, 1.0, records[0].Confidence)
	assert.Equal(t, "exact", records[0].MatchType)
	assert.NotEmpty(t, records[0].Timestamp)
	assert.Equal(t, "unknown", records[1].Intent)
}

func TestTrackerStats(t *testing.T) {
	tr := NewTracker("", defaultMinConfidence)

	tr.Log("a", "greeting", 1.0, MatchExact)
	tr.Log("b", "greeting", 0.9, MatchCorrected)
	tr.Log("c", IntentUnknown, 0.3, MatchNgram)

	stats := tr.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, 1, stats.Unknown)
	assert.Equal(t, 1, stats.LowConfidence)
	assert.Equal(t, 2, stats.Intents["greeting"])
	assert.Equal(t, 1, stats.MatchTypes["exact"])
	assert.InDelta(t, (1.0+0.9+0.3)/3, stats.AvgConfidence, 1e-9)
	assert.InDelta(t, 2.0/3.0, stats.MatchRate, 1e-9)
}

func TestTrackerSwallowsWriteFailures(t *testing.T) {
	// Unwritable sink: classification accounting must carry on regardless.
	tr := NewTracker("/no/such/dir/analytics.jsonl", defaultMinConfidence)

	assert.NotPanics(t, func() {
		tr.Log("नमस्ते", "greeting", 1.0, MatchExact)
	})
	assert.Equal(t, 1, tr.Stats().Total)
}

func TestTrackerEmptyStats(t *testing.T) {
	tr := NewTracker("", defaultMinConfidence)
	stats := tr.Stats()
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AvgConfidence)
	assert.Zero(t, stats.MatchRate)
}
