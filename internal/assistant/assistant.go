// Package assistant wires the pipeline together: chime, record, transcribe,
// classify, respond, speak.
package assistant

import (
	"context"
	log "log/slog"
	"time"

	"sahayak/internal/bus"
	"sahayak/internal/fallback"
	"sahayak/internal/handlers"
	"sahayak/internal/nlu"
	"sahayak/pkg/stt"
)

const sttTimeout = 60 * time.Second

// Recorder captures one utterance of 16 kHz mono PCM.
type Recorder interface {
	Record() ([]float32, error)
}

// Transcriber turns PCM into text.
type Transcriber interface {
	TranscribePCM(ctx context.Context, pcm []float32, opt stt.Options) (stt.Result, error)
}

// Speaker voices a response.
type Speaker interface {
	Speak(text string) error
}

// Fallback classifies utterances the rule engine gave up on.
type Fallback interface {
	Classify(ctx context.Context, text string) (fallback.Guess, error)
}

// Publisher forwards classified utterances to the home bus.
type Publisher interface {
	Publish(ev bus.Event) error
}

type Assistant struct {
	Parser   *nlu.Parser
	Handlers *handlers.Set
	Recorder Recorder
	STT      Transcriber
	Speaker  Speaker

	// Optional collaborators, nil when not configured.
	Fallback Fallback
	Bus      Publisher
	Chime    func() error

	SttOptions stt.Options
}

// ProcessText runs one utterance through classification and response. When
// the rule engine returns unknown and a fallback is configured, the model's
// guess is taught to the parser and the text re-parsed so it flows through
// the normal state and analytics path.
func (a *Assistant) ProcessText(ctx context.Context, text string) (nlu.Result, string) {
	res := a.Parser.Parse(text)

	if res.Intent == nlu.IntentUnknown && a.Fallback != nil && text != "" {
		res = a.consultFallback(ctx, text, res)
	}

	response := a.Handlers.Handle(res)
	log.Info("Processed utterance",
		"text", text,
		"intent", res.Intent,
		"confidence", res.Confidence,
		"match", res.MatchType)

	if a.Bus != nil {
		err := a.Bus.Publish(bus.Event{
			From:       "sahayak",
			Kind:       "utterance",
			Text:       text,
			Intent:     res.Intent,
			Confidence: res.Confidence,
			Response:   response,
		})
		if err != nil {
			log.Warn("Bus publish failed", "err", err)
		}
	}

	return res, response
}

func (a *Assistant) consultFallback(ctx context.Context, text string, res nlu.Result) nlu.Result {
	guess, err := a.Fallback.Classify(ctx, text)
	if err != nil {
		log.Warn("Fallback classification failed", "err", err)
		return res
	}
	if guess.Intent == nlu.IntentUnknown {
		return res
	}

	log.Info("Fallback classified", "intent", guess.Intent, "confidence", guess.Confidence)
	a.Parser.Learn(guess.Intent, text)
	return a.Parser.Parse(text)
}

// HandleTrigger runs one full voice interaction and reports the resolved
// intent so callers can react, e.g. leave continuous mode on goodbye.
func (a *Assistant) HandleTrigger(ctx context.Context) (nlu.Result, error) {
	if a.Chime != nil {
		if err := a.Chime(); err != nil {
			log.Warn("Chime failed", "err", err)
		}
	}

	log.Info("Listening")
	pcm, err := a.Recorder.Record()
	if err != nil {
		return nlu.Result{}, err
	}
	if len(pcm) == 0 {
		log.Info("No speech detected")
		return nlu.Result{Intent: nlu.IntentUnknown}, nil
	}
	log.Debug("Recorded", "samples", len(pcm))

	sttCtx, cancel := context.WithTimeout(ctx, sttTimeout)
	defer cancel()

	tr, err := a.STT.TranscribePCM(sttCtx, pcm, a.SttOptions)
	if err != nil {
		return nlu.Result{}, err
	}
	log.Info("Transcribed", "text", tr.Text)

	res, response := a.ProcessText(ctx, tr.Text)

	if err := a.Speaker.Speak(response); err != nil {
		log.Error("Speech synthesis failed", "err", err)
	}
	return res, nil
}

// Run keeps listening until the user says goodbye or the context ends.
func (a *Assistant) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := a.HandleTrigger(ctx)
		if err != nil {
			log.Error("Interaction failed", "err", err)
			continue
		}
		if res.Intent == nlu.IntentGoodbye {
			log.Info("Goodbye, leaving continuous mode")
			return nil
		}
	}
}
