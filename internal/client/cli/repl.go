package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

var errQuit = errors.New("quit")

// execIface is the command surface the REPL needs. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	Execute(ctx context.Context, args []string) error
	status() string
}

// runREPL reads lines from reader and runs each through a. Command errors
// not already shown by the Notifier are printed and the loop goes on; it ends on EOF, on "exit"/"quit" or
// when ctx is done.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "portfolio %s> ", a.status())
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		args, err := splitArgs(line)
		switch {
		case err != nil:
			fmt.Fprintln(w, "error:", err)
		case len(args) > 0:
			err = a.Execute(ctx, args)
			if errors.Is(err, errQuit) {
				fmt.Fprintln(w, "Bye!")
				return
			}
			var shown reportedError
			if err != nil && !errors.As(err, &shown) {
				fmt.Fprintln(w, "error:", err)
			}
		}

		if readErr != nil {
			return
		}
	}
}
