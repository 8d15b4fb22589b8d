package nlu

import (
	"encoding/json"
	log "log/slog"
	"os"
	"sync"
	"time"
)

// Record is one line of the analytics log.
type Record struct {
	Timestamp  string  `json:"timestamp"`
	Text       string  `json:"text"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	MatchType  string  `json:"match_type"`
}

// Stats are the running session counters, readable over IPC.
type Stats struct {
	Total         int            `json:"total"`
	Matched       int            `json:"matched"`
	Unknown       int            `json:"unknown"`
	LowConfidence int            `json:"low_confidence"`
	Intents       map[string]int `json:"intents"`
	MatchTypes    map[string]int `json:"match_types"`
	AvgConfidence float64        `json:"avg_confidence"`
	MatchRate     float64        `json:"match_rate"`
}

// Tracker appends one JSONL record per classification for offline accuracy
// analysis and keeps session counters. Every write is best effort: an I/O
// failure is logged at debug level and otherwise swallowed, so analytics can
// never affect a classification result.
type Tracker struct {
	path          string
	minConfidence float64

	mu            sync.Mutex
	total         int
	matched       int
	unknown       int
	lowConfidence int
	intents       map[string]int
	matchTypes    map[string]int
	confidenceSum float64
}

// NewTracker writes records to path; an empty path keeps counters only.
func NewTracker(path string, minConfidence float64) *Tracker {
	return &Tracker{
		path:          path,
		minConfidence: minConfidence,
		intents:       make(map[string]int),
		matchTypes:    make(map[string]int),
	}
}

// Log records one classification outcome.
func (t *Tracker) Log(text, intent string, confidence float64, matchType MatchType) {
	t.mu.Lock()
	t.total++
	t.intents[intent]++
	t.matchTypes[string(matchType)]++
	t.confidenceSum += confidence
	if intent == IntentUnknown {
		t.unknown++
	} else {
		t.matched++
	}
	if confidence < t.minConfidence {
		t.lowConfidence++
	}
	t.mu.Unlock()

	if t.path == "" {
		return
	}

	rec := Record{
		Timestamp:  time.Now().Format(time.RFC3339),
		Text:       text,
		Intent:     intent,
		Confidence: confidence,
		MatchType:  string(matchType),
	}
	if err := t.append(rec); err != nil {
		log.Debug("Analytics write failed", "path", t.path, "err", err)
	}
}

func (t *Tracker) append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// Stats snapshots the session counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Total:         t.total,
		Matched:       t.matched,
		Unknown:       t.unknown,
		LowConfidence: t.lowConfidence,
		Intents:       make(map[string]int, len(t.intents)),
		MatchTypes:    make(map[string]int, len(t.matchTypes)),
	}
	for k, v := range t.intents {
		s.Intents[k] = v
	}
	for k, v := range t.matchTypes {
		s.MatchTypes[k] = v
	}
	if t.total > 0 {
		s.AvgConfidence = t.confidenceSum / float64(t.total)
		s.MatchRate = float64(t.matched) / float64(t.total)
	}
	return s
}
