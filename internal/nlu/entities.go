package nlu

import (
	"fmt"
	"strconv"
	"strings"
)

type numberWord struct {
	word  string
	value int
}

// hindiNumbers is scanned in order; the first word found in the text wins.
// Units 1-20 first, then decades up to 100.
var hindiNumbers = []numberWord{
	{"एक", 1}, {"दो", 2}, {"तीन", 3}, {"चार", 4}, {"पांच", 5},
	{"छह", 6}, {"छः", 6}, {"सात", 7}, {"आठ", 8}, {"नौ", 9}, {"दस", 10},
	{"ग्यारह", 11}, {"बारह", 12}, {"तेरह", 13}, {"चौदह", 14}, {"पंद्रह", 15},
	{"सोलह", 16}, {"सत्रह", 17}, {"अठारह", 18}, {"उन्नीस", 19}, {"बीस", 20},
	{"तीस", 30}, {"चालीस", 40}, {"पचास", 50}, {"साठ", 60},
	{"सत्तर", 70}, {"अस्सी", 80}, {"नब्बे", 90}, {"सौ", 100},
}

type timeUnit struct {
	unit    string
	seconds int
}

var timeUnits = []timeUnit{
	{"सेकंड", 1}, {"सेकेंड", 1}, {"second", 1}, {"seconds", 1},
	{"मिनट", 60}, {"minute", 60}, {"minutes", 60},
	{"घंटा", 3600}, {"घंटे", 3600}, {"hour", 3600}, {"hours", 3600},
}

// ExtractNumber finds a numeral in text: the first run of digits (ASCII or
// Devanagari), or failing that the first Hindi number word in table order.
func ExtractNumber(text string) (int, bool) {
	if digits := firstDigitRun(text); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n, true
		}
	}

	for _, nw := range hindiNumbers {
		if strings.Contains(text, nw.word) {
			return nw.value, true
		}
	}

	return 0, false
}

// firstDigitRun returns the first digit run normalized to ASCII. Devanagari
// digits (०-९) count; an ASR transcribing Hindi numerals can emit either
// script.
func firstDigitRun(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '०' && r <= '९':
			b.WriteRune('0' + (r - '०'))
		default:
			if b.Len() > 0 {
				return b.String()
			}
		}
	}
	return b.String()
}

// ExtractDuration resolves a duration in seconds: the extracted numeral
// (default 1) times the first time unit found in the text (default minutes).
func ExtractDuration(text string) int {
	n, ok := ExtractNumber(text)
	if !ok {
		n = 1
	}

	multiplier := 60
	lower := strings.ToLower(text)
	for _, tu := range timeUnits {
		if strings.Contains(lower, tu.unit) {
			multiplier = tu.seconds
			break
		}
	}

	return n * multiplier
}

// FormatDuration renders seconds as a short Hindi phrase.
func FormatDuration(seconds int) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%d घंटे", seconds/3600)
	case seconds >= 60:
		return fmt.Sprintf("%d मिनट", seconds/60)
	default:
		return fmt.Sprintf("%d सेकंड", seconds)
	}
}

// Extract pulls the entities relevant for an intent out of corrected text.
// A timer intent gets duration and duration_str; every intent gets a generic
// number entity when one is present. Missing entities are simply omitted.
func Extract(text, intent string) map[string]any {
	entities := make(map[string]any)

	if intent == IntentSetTimer {
		if d := ExtractDuration(text); d > 0 {
			entities["duration"] = d
			entities["duration_str"] = FormatDuration(d)
		}
	}

	if n, ok := ExtractNumber(text); ok {
		entities["number"] = n
	}

	return entities
}
