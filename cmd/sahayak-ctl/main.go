// sahayak-ctl sends one command to the running daemon: trigger (default),
// say <text>, or stats.
package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"sahayak/internal/ipc"
)

func main() {
	socketPath := cli.String("socket", ipc.DefaultSocketPath, "Control socket path")
	cli.Parse()

	msg := ipc.ControlMessage{Cmd: "trigger"}
	if args := cli.Args(); len(args) > 0 {
		msg.Cmd = args[0]
		msg.Arg = strings.Join(args[1:], " ")
	}

	reply, err := ipc.Send(*socketPath, msg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sahayakd not running:", err)
		os.Exit(1)
	}

	if !reply.OK {
		fmt.Fprintln(os.Stderr, "error:", reply.Error)
		os.Exit(1)
	}

	if len(reply.Data) > 0 {
		fmt.Println(string(reply.Data))
	}
}
