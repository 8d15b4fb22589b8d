// Package fallback classifies utterances the rule engine could not, using a
// chat model. Confirmed guesses get fed back into the parser as learned
// patterns so the next occurrence resolves locally.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	log "log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	xproxy "golang.org/x/net/proxy"
)

// Guess is the model's structured answer.
type Guess struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

const promptHeader = `You are the intent classifier for a Hindi voice assistant.
The input is noisy Devanagari speech-to-text output.

RULES:
1. Do NOT converse or answer the question.
2. Output ONLY JSON, no markdown.
3. confidence is your certainty in [0,1].
4. If the meaning is unclear, intent = "unknown".

OUTPUT FORMAT:
{"intent": "<string>", "confidence": <float>}

INTENTS (canonical, snake_case):
`

type Classifier struct {
	client  openai.Client
	model   openai.ChatModel
	prompt  string
	intents map[string]bool
}

// New builds a classifier restricted to the given intents. socksAddr, when
// non-empty, routes API traffic through a SOCKS5 proxy.
func New(apiKey, socksAddr string, intents []string) (*Classifier, error) {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	if socksAddr != "" {
		httpClient, err := socksClient(socksAddr)
		if err != nil {
			return nil, fmt.Errorf("socks proxy: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	known := make(map[string]bool, len(intents))
	for _, name := range intents {
		fmt.Fprintf(&sb, "- %q\n", name)
		known[name] = true
	}

	return &Classifier{
		client:  openai.NewClient(opts...),
		model:   openai.ChatModelGPT5Nano,
		prompt:  sb.String(),
		intents: known,
	}, nil
}

// Classify asks the model for an intent. Intents outside the registry come
// back as unknown rather than leaking into the parser.
func (c *Classifier) Classify(ctx context.Context, text string) (Guess, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.prompt),
			openai.UserMessage(text),
		},
		Model: c.model,
	})
	if err != nil {
		return Guess{}, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Guess{}, fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return Guess{}, fmt.Errorf("empty message content")
	}

	guess, err := parseGuess(content)
	if err != nil {
		return Guess{}, err
	}

	if !c.intents[guess.Intent] {
		log.Warn("Model proposed unregistered intent", "intent", guess.Intent)
		guess.Intent = "unknown"
	}
	return guess, nil
}

func parseGuess(content string) (Guess, error) {
	var g Guess
	if err := json.Unmarshal([]byte(content), &g); err != nil {
		return Guess{}, fmt.Errorf("unmarshal guess: %w (raw: %s)", err, content)
	}
	if g.Confidence < 0 || g.Confidence > 1 {
		return Guess{}, fmt.Errorf("confidence out of range: %v", g.Confidence)
	}
	return g, nil
}

func socksClient(socksAddr string) (*http.Client, error) {
	dialer, err := xproxy.SOCKS5("tcp", socksAddr, nil, xproxy.Direct)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}

	return &http.Client{
		Transport: transport,
		Timeout:   120 * time.Second,
	}, nil
}
