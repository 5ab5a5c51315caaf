package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/bookkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   database file (sqlite) or directory (badger)
//	-b string   storage backend: sqlite or badger
//	-l string   log level: debug, info, warn, error
//
// os.Args is filtered with flagx.FilterArgs so that flags owned by other
// loaders (such as -c) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "database file or directory")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite|badger)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
