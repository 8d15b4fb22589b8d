// Package bus publishes classified utterances to the home websocket bus so
// other services (displays, automations) can react to voice commands.
package bus

import (
	"encoding/json"
	log "log/slog"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Event is one classified utterance as seen on the bus.
type Event struct {
	From       string  `json:"from"`
	Kind       string  `json:"kind"`
	Text       string  `json:"text"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Response   string  `json:"response,omitempty"`
}

type Publisher struct {
	mu     sync.Mutex
	conn   *ws.Conn
	url    string
	reconn time.Duration
}

func Dial(url string) (*Publisher, error) {
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	log.Info("Connected to bus", "url", url)
	return &Publisher{conn: conn, url: url, reconn: 5 * time.Second}, nil
}

const redialAttempts = 3

// Publish writes one event. On a closed connection it redials with backoff
// and retries; a still-failing write is returned to the caller, who treats
// the bus as best-effort.
func (p *Publisher) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.conn.WriteMessage(ws.TextMessage, data)
	if err == nil || !isClosed(err) {
		return err
	}

	log.Warn("Bus connection closed, redialing", "err", err)
	for attempt := 0; attempt < redialAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(p.reconn)
		}
		conn, _, derr := ws.DefaultDialer.Dial(p.url, nil)
		if derr != nil {
			err = derr
			continue
		}
		p.conn.Close()
		p.conn = conn
		return p.conn.WriteMessage(ws.TextMessage, data)
	}
	return err
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Close()
}

func isClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure) || ws.IsUnexpectedCloseError(err)
}
