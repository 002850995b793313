package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Create(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Lock(ctx context.Context, args []string) error
	Unlock(ctx context.Context, args []string) error
	Health(ctx context.Context) error
}

const helpText = `Available commands:
  create            register an account (interactive)
  (l)ist [skip] [limit]
  lock <id>         acquire the lease on an account
  unlock <id>       release the lease
  health            check the server
  exit | quit`

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF, on "exit"/"quit" or when ctx is cancelled. Command
// handlers print their own errors, so the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("bf [%s]> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "create":
			_ = a.Create(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "lock":
			_ = a.Lock(ctx, args)

		case "unlock":
			_ = a.Unlock(ctx, args)

		case "health":
			_ = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
