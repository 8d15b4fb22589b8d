// sahayak classifies a single utterance without the daemon: either text
// given as arguments or an audio file via --file. Useful for tuning the
// registry and eyeballing classifications.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"sahayak/internal/handlers"
	"sahayak/internal/nlu"
	"sahayak/internal/system"
	"sahayak/internal/tts"
	"sahayak/pkg/audioconv"
	"sahayak/pkg/stt"
)

func main() {
	logLevel := cli.StringP("log", "l", "warn", "Log level")
	filePath := cli.StringP("file", "f", "", "Audio file to transcribe and classify")
	modelPath := cli.StringP("model", "m", "models/ggml-small.bin", "Whisper model path (with --file)")
	intentsPath := cli.StringP("intents", "i", "", "Intent registry JSON (empty = built-in)")
	speak := cli.BoolP("speak", "s", false, "Voice the response through espeak-ng")
	cli.Parse()

	levels := map[string]log.Level{
		"debug": log.LevelDebug, "info": log.LevelInfo,
		"warn": log.LevelWarn, "error": log.LevelError,
	}
	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: levels[*logLevel],
	})))

	text := strings.Join(cli.Args(), " ")
	if *filePath != "" {
		var err error
		text, err = transcribeFile(*filePath, *modelPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "transcribe:", err)
			os.Exit(1)
		}
		fmt.Println("transcript:", text)
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: sahayak [flags] <hindi text> | sahayak -f audio.wav")
		os.Exit(2)
	}

	registry, err := nlu.LoadRegistry(*intentsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "registry:", err)
		os.Exit(1)
	}

	parser := nlu.New(nlu.Config{Registry: registry})
	res := parser.Parse(text)
	response := handlers.New(registry, system.Detect()).Handle(res)

	fmt.Println("intent:    ", res.Intent)
	fmt.Printf("confidence: %.2f\n", res.Confidence)
	fmt.Println("match:     ", res.MatchType)
	if len(res.Entities) > 0 {
		fmt.Println("entities:  ", res.Entities)
	}
	fmt.Println("response:  ", response)

	if *speak {
		engine := tts.New(tts.DefaultSettings())
		if err := engine.Speak(response); err != nil {
			fmt.Fprintln(os.Stderr, "tts:", err)
			os.Exit(1)
		}
	}
}

func transcribeFile(path, model string) (string, error) {
	pcm, err := audioconv.LoadPCM16k(path)
	if err != nil {
		return "", err
	}

	tr, err := stt.NewTranscriber(model)
	if err != nil {
		return "", err
	}
	defer tr.Close()

	res, err := tr.TranscribePCM(context.Background(), pcm, stt.Options{Language: "hi"})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
