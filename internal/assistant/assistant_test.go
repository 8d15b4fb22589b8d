package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahayak/internal/bus"
	"sahayak/internal/fallback"
	"sahayak/internal/handlers"
	"sahayak/internal/nlu"
	"sahayak/pkg/stt"
)

type fakeSystem struct{}

func (fakeSystem) AdjustVolume(int) error { return nil }
func (fakeSystem) BatteryLevel() int      { return 100 }

type fakeRecorder struct {
	pcm []float32
	err error
}

func (f *fakeRecorder) Record() ([]float32, error) { return f.pcm, f.err }

type fakeSTT struct {
	text   string
	err    error
	called bool
}

func (f *fakeSTT) TranscribePCM(_ context.Context, _ []float32, _ stt.Options) (stt.Result, error) {
	f.called = true
	return stt.Result{Text: f.text, Language: "hi"}, f.err
}

type fakeSpeaker struct {
	spoken []string
}

func (f *fakeSpeaker) Speak(text string) error {
	f.spoken = append(f.spoken, text)
	return nil
}

type fakeFallback struct {
	guess fallback.Guess
	err   error
}

func (f *fakeFallback) Classify(context.Context, string) (fallback.Guess, error) {
	return f.guess, f.err
}

type fakePublisher struct {
	events []bus.Event
}

func (f *fakePublisher) Publish(ev bus.Event) error {
	f.events = append(f.events, ev)
	return nil
}

func newTestAssistant(t *testing.T) (*Assistant, *fakeSpeaker, *fakePublisher) {
	t.Helper()
	reg, err := nlu.LoadRegistry("")
	require.NoError(t, err)

	speaker := &fakeSpeaker{}
	pub := &fakePublisher{}
	a := &Assistant{
		Parser:   nlu.New(nlu.Config{Registry: reg}),
		Handlers: handlers.New(reg, fakeSystem{}),
		Speaker:  speaker,
		Bus:      pub,
	}
	return a, speaker, pub
}

func TestProcessTextKnownIntent(t *testing.T) {
	a, _, pub := newTestAssistant(t)

	res, response := a.ProcessText(context.Background(), "नमस्ते")
	assert.Equal(t, "greeting", res.Intent)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "नमस्ते! मैं आपकी कैसे मदद कर सकता हूं?", response)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "sahayak", pub.events[0].From)
	assert.Equal(t, "greeting", pub.events[0].Intent)
	assert.Equal(t, response, pub.events[0].Response)
}

func TestProcessTextFallbackLearnsAndReparses(t *testing.T) {
	a, _, _ := newTestAssistant(t)
	a.Fallback = &fakeFallback{guess: fallback.Guess{Intent: "get_weather", Confidence: 0.9}}

	res, _ := a.ProcessText(context.Background(), "zzz qqq")
	assert.Equal(t, "get_weather", res.Intent)
	assert.Equal(t, nlu.MatchLearned, res.MatchType)
	assert.Equal(t, 0.65, res.Confidence)

	// Second time around the learned pattern resolves without the fallback.
	a.Fallback = &fakeFallback{err: errors.New("should not be consulted")}
	res, _ = a.ProcessText(context.Background(), "zzz qqq")
	assert.Equal(t, "get_weather", res.Intent)
}

func TestProcessTextFallbackFailureStaysUnknown(t *testing.T) {
	a, _, _ := newTestAssistant(t)
	a.Fallback = &fakeFallback{err: errors.New("api down")}

	res, _ := a.ProcessText(context.Background(), "zzz qqq")
	assert.Equal(t, nlu.IntentUnknown, res.Intent)
}

func TestHandleTriggerSpeaksResponse(t *testing.T) {
	a, speaker, _ := newTestAssistant(t)
	a.Recorder = &fakeRecorder{pcm: make([]float32, 16000)}
	a.STT = &fakeSTT{text: "नमस्ते"}

	res, err := a.HandleTrigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "greeting", res.Intent)
	require.Len(t, speaker.spoken, 1)
	assert.Equal(t, "नमस्ते! मैं आपकी कैसे मदद कर सकता हूं?", speaker.spoken[0])
}

func TestHandleTriggerNoSpeech(t *testing.T) {
	a, speaker, _ := newTestAssistant(t)
	tr := &fakeSTT{text: "नमस्ते"}
	a.Recorder = &fakeRecorder{}
	a.STT = tr

	res, err := a.HandleTrigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nlu.IntentUnknown, res.Intent)
	assert.False(t, tr.called)
	assert.Empty(t, speaker.spoken)
}
