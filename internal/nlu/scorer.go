package nlu

import (
	"math"
	"strings"
	"unicode/utf8"
)

// scoreIntent runs the strategy cascade for one intent over both the
// normalized and the spell-corrected text and keeps the single best outcome.
// Confidences are not normalized across intents; the parser compares the
// per-intent winners afterwards.
//
// Per keyword, in order: full-string equality (immediate 1.0), substring
// containment, whole-token equality, multi-word overlap, character-bigram
// overlap, phonetic similarity per token. The first three are mutually
// exclusive per keyword; bigram and phonetic both get a chance when nothing
// containment-shaped fired.
func scoreIntent(normalized, corrected string, keywords, learned []string, intent string) Match {
	best := Match{Intent: intent, Type: MatchNone}
	if normalized == "" || (len(keywords) == 0 && len(learned) == 0) {
		return best
	}

	variants := []struct {
		text string
		typ  MatchType
	}{
		{normalized, MatchExact},
		{corrected, MatchCorrected},
	}

	for _, v := range variants {
		text := strings.TrimSpace(strings.ToLower(v.text))
		if text == "" {
			continue
		}
		textLen := utf8.RuneCountInString(text)
		tokens := strings.Fields(text)
		tokenSet := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			tokenSet[t] = struct{}{}
		}

		for _, keyword := range keywords {
			kw := strings.TrimSpace(strings.ToLower(keyword))
			if kw == "" {
				continue
			}

			// Full-string match beats everything across all intents.
			if kw == text {
				return Match{Intent: intent, Confidence: 1.0, Keywords: []string{keyword}, Type: v.typ}
			}

			if strings.Contains(text, kw) {
				ratio := float64(utf8.RuneCountInString(kw)) / float64(textLen)
				score := math.Max(0.85, ratio) * v.typ.Weight()
				best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{keyword}, Type: v.typ})
				continue
			}

			if _, ok := tokenSet[kw]; ok {
				score := 0.90 * v.typ.Weight()
				best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{keyword}, Type: MatchWordExact})
				continue
			}

			if strings.Contains(kw, " ") {
				if overlap := wordOverlap(kw, tokenSet); overlap > 0 {
					score := overlap * MatchPhrasePartial.Weight()
					best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{keyword}, Type: MatchPhrasePartial})
				}
				continue
			}

			if ng := bigramSimilarity(text, kw); ng > 0.5 {
				score := ng * MatchNgram.Weight()
				best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{keyword}, Type: MatchNgram})
			}

			for _, token := range tokens {
				if p := Similarity(token, kw); p > 0.7 {
					score := p * MatchPhonetic.Weight()
					best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{keyword}, Type: MatchPhonetic})
				}
			}
		}

		// Learned patterns are externally supplied (e.g. fed back by the LLM
		// fallback) and score in their own fixed slot.
		for _, pattern := range learned {
			p := strings.TrimSpace(strings.ToLower(pattern))
			if p == "" {
				continue
			}
			_, isToken := tokenSet[p]
			if p == text || isToken || strings.Contains(text, p) {
				score := MatchLearned.Weight()
				best = better(best, Match{Intent: intent, Confidence: score, Keywords: []string{pattern}, Type: MatchLearned})
			}
		}
	}

	return best
}

func better(current, candidate Match) Match {
	if candidate.Confidence > current.Confidence {
		return candidate
	}
	return current
}

// wordOverlap is the fraction of the multi-word keyword's words present in
// the text.
func wordOverlap(keyword string, tokenSet map[string]struct{}) float64 {
	words := strings.Fields(keyword)
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(words))
	hits := 0
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := tokenSet[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(seen))
}

// bigramSimilarity counts how many of the keyword's distinct character
// bigrams occur in the text, relative to the keyword's bigram count.
func bigramSimilarity(text, keyword string) float64 {
	textGrams := bigrams(text)
	kwGrams := bigrams(keyword)
	if len(textGrams) == 0 || len(kwGrams) == 0 {
		return 0
	}

	hits := 0
	for g := range kwGrams {
		if _, ok := textGrams[g]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(kwGrams))
}

func bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make(map[string]struct{}, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out[string(runes[i:i+2])] = struct{}{}
	}
	return out
}
