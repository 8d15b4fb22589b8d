// The sahayakd daemon listens for triggers over the control socket and runs
// the full voice pipeline: chime, record, whisper, classify, respond, speak.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"sahayak/internal/assistant"
	"sahayak/internal/audio"
	"sahayak/internal/bus"
	"sahayak/internal/fallback"
	"sahayak/internal/handlers"
	"sahayak/internal/ipc"
	"sahayak/internal/nlu"
	"sahayak/internal/notify"
	"sahayak/internal/system"
	"sahayak/internal/tts"
	"sahayak/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	modelPath := cli.StringP("model", "m", "models/ggml-small.bin", "Whisper model path")
	intentsPath := cli.StringP("intents", "i", "", "Intent registry JSON (empty = built-in)")
	analyticsPath := cli.StringP("analytics", "a", "analytics.jsonl", "Classification log sink")
	socketPath := cli.String("socket", ipc.DefaultSocketPath, "Control socket path")
	busURL := cli.StringP("bus", "b", "", "Websocket bus URL (empty = disabled)")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS proxy for the fallback API (empty = direct)")
	chimePath := cli.StringP("chime", "c", "", "Listening chime mp3 (empty = silent)")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	registry, err := nlu.LoadRegistry(*intentsPath)
	if err != nil {
		log.Error("Failed to load intent registry", "err", err)
		os.Exit(1)
	}
	log.Debug("Loaded registry", "intents", registry.Len())

	parser := nlu.New(nlu.Config{
		Registry:      registry,
		AnalyticsPath: *analyticsPath,
	})

	handlerSet := handlers.New(registry, system.Detect())

	speaker := tts.New(tts.DefaultSettings())
	if err := speaker.Verify(); err != nil {
		log.Warn("TTS unavailable, responses will be logged only", "err", err)
	}

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()
	log.Debug("Loaded recorder")

	whisper, err := stt.NewTranscriber(*modelPath)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()
	log.Debug("Loaded whisper", "model", *modelPath)

	a := &assistant.Assistant{
		Parser:   parser,
		Handlers: handlerSet,
		Recorder: rec,
		STT:      whisper,
		Speaker:  speaker,
		SttOptions: stt.Options{
			Language:      "hi",
			InitialPrompt: "हिंदी वॉयस कमांड: समय, तारीख, टाइमर, वॉल्यूम, बैटरी",
		},
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fb, err := fallback.New(apiKey, *proxyAddr, registry.Names())
		if err != nil {
			log.Error("Failed to init fallback classifier", "err", err)
			os.Exit(1)
		}
		a.Fallback = fb
		log.Debug("Loaded fallback classifier")
	} else {
		log.Info("OPENAI_API_KEY not set, fallback classification disabled")
	}

	if *busURL != "" {
		pub, err := bus.Dial(*busURL)
		if err != nil {
			log.Warn("Bus unavailable, publishing disabled", "url", *busURL, "err", err)
		} else {
			defer pub.Close()
			a.Bus = pub
		}
	}

	if *chimePath != "" {
		a.Chime = func() error { return notify.Chime(*chimePath) }
	}

	log.Info("Boot up - successful")

	// One interaction at a time; the parser holds conversation state.
	var mu sync.Mutex

	ln, err := ipc.StartServer(*socketPath, func(msg ipc.ControlMessage) ipc.Reply {
		mu.Lock()
		defer mu.Unlock()

		switch msg.Cmd {
		case "trigger":
			if _, err := a.HandleTrigger(context.Background()); err != nil {
				return ipc.Reply{Error: err.Error()}
			}
			return ipc.Reply{OK: true}

		case "say":
			res, response := a.ProcessText(context.Background(), msg.Arg)
			data, _ := json.Marshal(map[string]any{
				"intent":     res.Intent,
				"confidence": res.Confidence,
				"match_type": res.MatchType,
				"response":   response,
			})
			return ipc.Reply{OK: true, Data: data}

		case "stats":
			data, err := json.Marshal(parser.Stats())
			if err != nil {
				return ipc.Reply{Error: err.Error()}
			}
			return ipc.Reply{OK: true, Data: data}

		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
			return ipc.Reply{Error: "unknown command: " + msg.Cmd}
		}
	})
	if err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}
	defer ln.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")
}
