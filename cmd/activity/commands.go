package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"flowboard/internal/client"
)

const commandHelp = "commands: dismiss <task id> | restore [task id] | refresh"

// readCommands applies feed commands read line by line from in until ctx is
// done or in is exhausted. refresh is called after every change.
func readCommands(ctx context.Context, in io.Reader, out io.Writer, suppressed *client.Suppressions, refresh func()) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := strings.ToLower(fields[0]), fields[1:]; {
		case cmd == "dismiss" && len(args) == 1:
			suppressed.Add(args[0])
		case cmd == "restore" && len(args) == 1:
			suppressed.Remove(args[0])
		case cmd == "restore" && len(args) == 0:
			suppressed.Clear()
		case cmd == "refresh" && len(args) == 0:
		default:
			fmt.Fprintln(out, commandHelp)
			continue
		}
		refresh()
	}
}
