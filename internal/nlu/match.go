// Package nlu turns noisy Hindi/Devanagari ASR output into a structured
// intent classification. It is pure computation over static tables plus a
// small per-conversation state; everything around it (audio, STT, TTS,
// handlers) only consumes its Result.
package nlu

// Well-known intent names the engine itself needs to recognize. Everything
// else is opaque registry content.
const (
	IntentUnknown  = "unknown"
	IntentRepeat   = "repeat"
	IntentSetTimer = "set_timer"
	IntentGoodbye  = "goodbye"
)

// MatchType identifies the strategy that produced a confidence score.
type MatchType string

const (
	MatchNone          MatchType = "none"
	MatchExact         MatchType = "exact"
	MatchCorrected     MatchType = "corrected"
	MatchWordExact     MatchType = "word_exact"
	MatchPhrasePartial MatchType = "phrase_partial"
	MatchNgram         MatchType = "ngram"
	MatchPhonetic      MatchType = "phonetic"
	MatchLearned       MatchType = "learned"
)

// Weight returns the fixed strategy weight. The values are part of the
// engine's compatibility contract; threshold tuning downstream depends on
// them staying exactly as they are.
func (m MatchType) Weight() float64 {
	switch m {
	case MatchExact:
		return 1.00
	case MatchCorrected:
		return 0.95
	case MatchWordExact:
		return 0.90
	case MatchPhrasePartial:
		return 0.85
	case MatchNgram:
		return 0.75
	case MatchPhonetic:
		return 0.70
	case MatchLearned:
		return 0.65
	}
	return 0
}

// Match is the best scoring outcome of one intent against one input.
type Match struct {
	Intent     string
	Confidence float64
	Keywords   []string
	Type       MatchType
	Entities   map[string]any
}

// Result is what Parse hands to the caller. Intent is either a registry key
// or IntentUnknown. LastIntent is set only when Intent is IntentRepeat and
// names the intent matched before this turn.
type Result struct {
	Intent     string
	Confidence float64
	MatchType  MatchType
	Entities   map[string]any
	LastIntent string
}
