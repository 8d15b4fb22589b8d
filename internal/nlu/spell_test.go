package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrect(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"समाई क्या है", "समय क्या है"},
		{"तारीक बताओ", "तारीख बताओ"},
		{"मोसम कैसा है", "मौसम कैसा है"},
		{"नमस्ता", "नमस्ते"},
		{"वॉल्यूम बड़ा", "वॉल्यूम बढ़ा"},
		{"नमस्ते", "नमस्ते"}, // already correct
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Correct(c.in), "input %q", c.in)
	}
}

func TestCorrectTableOrder(t *testing.T) {
	// "कहीं दिन" must be rewritten as a phrase before the bare noise word
	// "कहीं" gets deleted further down the table.
	assert.Equal(t, "कौन सा दिन", Correct("कहीं दिन"))

	// The standalone noise word still gets removed.
	assert.Equal(t, " जाओ", Correct("कहीं जाओ"))
}

func TestCorrectIdempotent(t *testing.T) {
	samples := []string{
		"समाई क्या है",
		"कितना बाजा",
		"है क्या बाजा",
		"वॉल्यूम बड़ा हुआ",
		"कहीं दिन",
		"धन्यवात जी",
		"random english text",
		"नमस्ते रुको",
	}
	for _, s := range samples {
		once := Correct(s)
		assert.Equal(t, once, Correct(once), "input %q", s)
	}
	// The right-hand sides themselves must be fixed points.
	for _, c := range spellCorrections {
		assert.Equal(t, c.right, Correct(c.right), "rhs of %q", c.wrong)
	}
}
