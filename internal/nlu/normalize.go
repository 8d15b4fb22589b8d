package nlu

import "strings"

// Punctuation stripped before matching: the Devanagari danda plus common
// Latin marks an ASR may emit.
const punctuation = "।,.?!'\""

// Normalize lowercases ASCII, strips punctuation, collapses whitespace runs
// and trims. Devanagari has no case, so ToLower only affects transliterated
// Latin fragments. Empty input stays empty.
func Normalize(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
