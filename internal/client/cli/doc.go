// Package cli provides the interactive bookkeeper command-line client.
//
// App wraps a services.LibraryService and drives a small REPL over it. The
// session keeps a search term and a genre filter; `list` always prints the
// filtered view, the way the catalog home screen would.
//
// Commands
//
//	list | l            list books matching the current filters
//	search [term]       set the search term (empty clears it) and list
//	genre [name]        set the genre filter (empty clears it) and list
//	genres              show the distinct genres
//	clear               reset both filters
//	show <id>           show one book
//	add                 add a book interactively
//	edit <id>           edit a book; blank answers keep the current value
//	delete <id>         delete a book after confirmation
//	help                show commands
//	exit | quit         leave the program
//
// Prompts are only echoed when stdin is a terminal, so the CLI can also be
// driven from a script.
package cli
