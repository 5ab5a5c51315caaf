package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bookkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/bookkeeper/internal/client/cli"
	"github.com/dmitrijs2005/bookkeeper/internal/client/client"
	"github.com/dmitrijs2005/bookkeeper/internal/client/config"
	"github.com/dmitrijs2005/bookkeeper/internal/client/services"
	"github.com/dmitrijs2005/bookkeeper/internal/client/storage"
	"github.com/dmitrijs2005/bookkeeper/internal/client/store"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	repo, closer, err := client.OpenSlots(ctx, cfg.Backend, cfg.DBPath, logger.Slog())
	if err != nil {
		log.Fatalf("error opening %s storage: %v", cfg.Backend, err)
	}
	defer closer.Close()

	persister := storage.NewBookStorage(repo, cfg.StorageKey, logger.With("component", "storage"))
	books := store.New(ctx, persister, store.WithLogger(logger.With("component", "store")))

	library, err := services.NewLibraryService(books, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger.Info(ctx, "catalog loaded", "backend", cfg.Backend, "path", cfg.DBPath, "books", len(library.ListAll(ctx)))

	cli.NewApp(library, logger, os.Stdin, os.Stdout).Run(ctx)
}
