package nlu

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	log "log/slog"
	"os"
)

//go:embed data/intents.json
var defaultIntents []byte

// Command is one registry entry: the trigger keywords for an intent and an
// optional response template. The template is opaque to the engine; the
// handlers own its placeholders.
type Command struct {
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
}

// Registry is the ordered, read-only intent catalog. It is immutable after
// load and safe to share across parsers.
type Registry struct {
	names  []string
	byName map[string]Command
}

// LoadRegistry reads an intents file, or the embedded default catalog when
// path is empty.
func LoadRegistry(path string) (*Registry, error) {
	data := defaultIntents
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read intents: %w", err)
		}
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes a JSON object of intent -> command, preserving key
// order. A malformed entry is skipped with a warning; only unparseable JSON
// as a whole is an error.
func ParseRegistry(data []byte) (*Registry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse intents: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parse intents: expected object, got %v", tok)
	}

	reg := &Registry{byName: make(map[string]Command)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse intents: %w", err)
		}
		name := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse intents: entry %q: %w", name, err)
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			log.Warn("Skipping malformed intent entry", "intent", name, "err", err)
			continue
		}
		if name == "" {
			log.Warn("Skipping intent entry with empty name")
			continue
		}
		if _, dup := reg.byName[name]; dup {
			log.Warn("Skipping duplicate intent entry", "intent", name)
			continue
		}

		reg.names = append(reg.names, name)
		reg.byName[name] = cmd
	}

	log.Debug("Loaded intent registry", "intents", len(reg.names))
	return reg, nil
}

// Names returns intent names in declaration order.
func (r *Registry) Names() []string { return r.names }

// Get looks up one intent's command.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Response returns the response template for an intent, empty when the
// intent is unregistered or has none.
func (r *Registry) Response(name string) string {
	return r.byName[name].Response
}

// Len is the number of registered intents.
func (r *Registry) Len() int { return len(r.names) }
