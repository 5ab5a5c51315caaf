package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	FilterGenre(ctx context.Context, genre string) error
	Genres(ctx context.Context) error
	ClearFilters(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const helpText = "Available commands: (l)ist, search [term], genre [name], genres, clear, show <id>, add, edit <id>, delete <id>, exit"

// runREPL reads a line at a time from reader, takes the first token as the
// command and dispatches to a. The prompt, carrying the status from statusFn,
// is written to prompts. The loop exits on EOF or on "exit"/"quit".
//
// Errors returned by handlers are ignored here; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompts io.Writer) {
	for {
		if err := ctx.Err(); err != nil {
			return
		}
		fmt.Fprintf(prompts, "bk %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		// the argument text as typed, inner spacing included
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, rest)

		case "genre":
			_ = a.FilterGenre(ctx, rest)

		case "genres":
			_ = a.Genres(ctx)

		case "clear":
			_ = a.ClearFilters(ctx)

		case "show", "edit", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0])
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0])
			}

		case "add":
			_ = a.Add(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
