package ipc

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.sock")

	ln, err := StartServer(path, func(msg ControlMessage) Reply {
		switch msg.Cmd {
		case "say":
			data, _ := json.Marshal(map[string]string{"said": msg.Arg})
			return Reply{OK: true, Data: data}
		default:
			return Reply{Error: "unknown command: " + msg.Cmd}
		}
	})
	require.NoError(t, err)
	defer ln.Close()

	reply, err := Send(path, ControlMessage{Cmd: "say", Arg: "नमस्ते"})
	require.NoError(t, err)
	assert.True(t, reply.OK)

	var data map[string]string
	require.NoError(t, json.Unmarshal(reply.Data, &data))
	assert.Equal(t, "नमस्ते", data["said"])

	reply, err = Send(path, ControlMessage{Cmd: "bogus"})
	require.NoError(t, err)
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown command")
}

func TestSendNoServer(t *testing.T) {
	_, err := Send(filepath.Join(t.TempDir(), "absent.sock"), ControlMessage{Cmd: "trigger"})
	assert.Error(t, err)
}
