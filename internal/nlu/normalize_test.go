package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"नमस्ते", "नमस्ते"},
		{"  समय क्या है  ", "समय क्या है"},
		{"समय   क्या\tहै", "समय क्या है"},
		{"मौसम कैसा है।", "मौसम कैसा है"},
		{"HELLO, World!", "hello world"},
		{"\"क्या बजा?\"", "क्या बजा"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "input %q", c.in)
	}
}
