package nlu

import (
	log "log/slog"
	"sort"
	"strings"
)

// defaultMinConfidence gates classifications: anything below is demoted to
// unknown.
const defaultMinConfidence = 0.50

// disambiguationMargin: when the top two candidates score within this margin,
// the fixed intent priority breaks the tie.
const disambiguationMargin = 0.10

// intentPriority ranks intents for near-tie disambiguation. Control words
// like stop must win over chatty intents when confidences are close.
var intentPriority = map[string]int{
	"stop": 10, "repeat": 9, "help": 8,
	"set_timer": 7, "volume_up": 6, "volume_down": 6,
	"greeting": 5, "goodbye": 5, "thanks": 5,
	"get_time": 4, "get_date": 4, "get_day": 4, "get_weather": 4,
	"battery": 3, "unknown": 0,
}

// Config carries everything a Parser needs; there are no globals, so tests
// and parallel conversations can run isolated instances with distinct
// registries.
type Config struct {
	Registry *Registry

	// AnalyticsPath is the JSONL sink; empty keeps counters in memory only.
	AnalyticsPath string

	// MinConfidence overrides the default 0.50 gate when > 0.
	MinConfidence float64

	// LearnedPatterns seeds intent -> extra trigger phrases scored in the
	// learned slot.
	LearnedPatterns map[string][]string
}

// Parser classifies utterances for a single conversation. The static tables
// it reads are shareable; the Parser itself is not safe for concurrent use
// without external synchronization.
type Parser struct {
	registry      *Registry
	tracker       *Tracker
	state         ConversationState
	learned       map[string][]string
	minConfidence float64
}

func New(cfg Config) *Parser {
	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}

	learned := make(map[string][]string, len(cfg.LearnedPatterns))
	for intent, patterns := range cfg.LearnedPatterns {
		learned[intent] = append([]string(nil), patterns...)
	}

	return &Parser{
		registry:      cfg.Registry,
		tracker:       NewTracker(cfg.AnalyticsPath, minConfidence),
		learned:       learned,
		minConfidence: minConfidence,
	}
}

// Parse classifies one utterance. It never fails: anything that cannot be
// matched degrades to IntentUnknown.
func (p *Parser) Parse(text string) Result {
	if strings.TrimSpace(text) == "" {
		// No scoring, no state mutation, no analytics for empty input.
		return Result{Intent: IntentUnknown, MatchType: MatchNone}
	}

	normalized := Normalize(text)
	corrected := Correct(normalized)
	log.Debug("Classifying", "raw", text, "normalized", normalized, "corrected", corrected)

	var candidates []Match
	for _, name := range p.registry.Names() {
		if name == IntentUnknown {
			continue
		}
		cmd, _ := p.registry.Get(name)
		m := scoreIntent(normalized, corrected, cmd.Keywords, p.learned[name], name)
		if m.Confidence > 0 {
			candidates = append(candidates, m)
		}
	}

	if len(candidates) == 0 {
		log.Info("No intent matched", "text", text)
		p.tracker.Log(text, IntentUnknown, 0, MatchNone)
		return Result{Intent: IntentUnknown, MatchType: MatchNone}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return intentPriority[candidates[i].Intent] > intentPriority[candidates[j].Intent]
	})

	best := candidates[0]

	if best.Confidence < p.minConfidence {
		log.Info("Low confidence, demoting to unknown", "intent", best.Intent, "confidence", best.Confidence)
		p.tracker.Log(text, IntentUnknown, best.Confidence, best.Type)
		return Result{Intent: IntentUnknown, Confidence: best.Confidence, MatchType: best.Type}
	}

	// Near-tie: a strictly higher-priority runner-up wins. Priority breaks
	// close calls, it does not override a clear confidence lead.
	if len(candidates) > 1 {
		second := candidates[1]
		if best.Confidence-second.Confidence < disambiguationMargin &&
			intentPriority[second.Intent] > intentPriority[best.Intent] {
			log.Debug("Priority disambiguation", "winner", second.Intent, "over", best.Intent)
			best = second
		}
	}

	entities := Extract(corrected, best.Intent)
	best.Entities = entities

	prevIntent := p.state.LastIntent
	p.state.remember(best.Intent, entities)

	log.Info("Matched intent", "intent", best.Intent, "confidence", best.Confidence, "type", best.Type)
	p.tracker.Log(text, best.Intent, best.Confidence, best.Type)

	res := Result{
		Intent:     best.Intent,
		Confidence: best.Confidence,
		MatchType:  best.Type,
		Entities:   entities,
	}
	if best.Intent == IntentRepeat {
		res.LastIntent = prevIntent
	}
	return res
}

// Learn registers an extra trigger phrase for an intent, scored in the
// learned slot on later turns. Unregistered intents are ignored.
func (p *Parser) Learn(intent, pattern string) {
	if _, ok := p.registry.Get(intent); !ok || intent == IntentUnknown {
		return
	}
	pattern = Normalize(pattern)
	if pattern == "" {
		return
	}
	for _, existing := range p.learned[intent] {
		if existing == pattern {
			return
		}
	}
	p.learned[intent] = append(p.learned[intent], pattern)
	log.Debug("Learned pattern", "intent", intent, "pattern", pattern)
}

// Registry exposes the read-only command catalog.
func (p *Parser) Registry() *Registry { return p.registry }

// State returns a snapshot of the conversation state.
func (p *Parser) State() ConversationState {
	snapshot := p.state
	snapshot.History = append([]string(nil), p.state.History...)
	return snapshot
}

// Stats returns the analytics session counters.
func (p *Parser) Stats() Stats { return p.tracker.Stats() }
