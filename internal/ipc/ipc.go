// Package ipc is the unix-socket control channel between the daemon and the
// ctl tool.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

const DefaultSocketPath = "/tmp/sahayak.sock"

// ControlMessage is one command from the ctl tool.
type ControlMessage struct {
	Cmd string `json:"cmd"`
	Arg string `json:"arg,omitempty"`
}

// Reply is the daemon's answer. Data carries command-specific JSON, e.g. the
// stats payload.
type Reply struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// StartServer listens on path and calls handler for every message. The
// handler's reply is written back on the same connection. Returns the
// listener so the caller can close it on shutdown.
func StartServer(path string, handler func(ControlMessage) Reply) (net.Listener, error) {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handleConn(conn, handler)
		}
	}()

	return ln, nil
}

func handleConn(conn net.Conn, handler func(ControlMessage) Reply) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		json.NewEncoder(conn).Encode(Reply{Error: "bad message: " + err.Error()})
		return
	}

	json.NewEncoder(conn).Encode(handler(msg))
}

// Send delivers one command to the daemon and waits for its reply.
func Send(path string, msg ControlMessage) (Reply, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return Reply{}, fmt.Errorf("dial %s: %w", path, err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return Reply{}, err
	}

	var reply Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
