// Package tts speaks Hindi responses through espeak-ng.
package tts

import (
	"fmt"
	log "log/slog"
	"os/exec"
	"strconv"
)

// Settings are the espeak-ng voice parameters. The defaults are tuned for
// intelligible Hindi on small speakers.
type Settings struct {
	Voice     string
	Speed     int // words per minute
	Pitch     int // 0-99
	Amplitude int // 0-200
	WordGap   int // units of 10ms
}

func DefaultSettings() Settings {
	return Settings{
		Voice:     "hi",
		Speed:     100,
		Pitch:     40,
		Amplitude: 80,
		WordGap:   15,
	}
}

type Engine struct {
	settings Settings
}

func New(settings Settings) *Engine {
	return &Engine{settings: settings}
}

// Verify checks that espeak-ng is installed.
func (e *Engine) Verify() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng not found: %w", err)
	}
	return nil
}

// Speak synthesizes text synchronously. Empty text is a no-op.
func (e *Engine) Speak(text string) error {
	if text == "" {
		return nil
	}

	cmd := exec.Command("espeak-ng",
		"-v", e.settings.Voice,
		"-s", strconv.Itoa(e.settings.Speed),
		"-p", strconv.Itoa(e.settings.Pitch),
		"-a", strconv.Itoa(e.settings.Amplitude),
		"-g", strconv.Itoa(e.settings.WordGap),
		text,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng: %w: %s", err, out)
	}

	log.Debug("Spoke response", "chars", len(text))
	return nil
}
