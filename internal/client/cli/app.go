package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/client/services"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
)

// App is one interactive session over the catalog.
type App struct {
	library services.LibraryService
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer
	// prompts receives prompt text; io.Discard when input is scripted.
	prompts io.Writer

	term  string
	genre string
}

// NewApp builds a session reading commands from in and printing to out.
func NewApp(library services.LibraryService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	a := &App{
		library: library,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
		prompts: io.Discard,
	}
	if interactive(in) {
		a.prompts = out
	}
	return a
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	unsubscribe := a.library.Subscribe(func(books []models.Book) {
		a.logger.Debug(ctx, "collection changed", "books", len(books))
	})
	defer unsubscribe()

	fmt.Fprintln(a.prompts, "Welcome to bookkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.prompts)
}

// getStatus describes the active filters for the prompt.
func (a *App) getStatus() string {
	s := ""
	if a.term != "" {
		s = fmt.Sprintf("search=%q", a.term)
	}
	if a.genre != "" {
		if s != "" {
			s += " "
		}
		s += "genre=" + a.genre
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
