package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/promptcraft/internal/catalog"
	"github.com/alexanderramin/promptcraft/internal/cli"
	"github.com/alexanderramin/promptcraft/internal/config"
	"github.com/alexanderramin/promptcraft/internal/db"
	"github.com/alexanderramin/promptcraft/internal/logging"
	"github.com/alexanderramin/promptcraft/internal/repository"
	"github.com/alexanderramin/promptcraft/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// With a broken custom catalog, run on the built-ins; commands that need
	// the catalog report CatalogErr.
	cat, catErr := catalog.Load(cfg.CatalogDir)
	if catErr != nil {
		logger.Warn("custom catalog rejected", zap.String("dir", cfg.CatalogDir), zap.Error(catErr))
		cat, err = catalog.Load("")
		if err != nil {
			return fmt.Errorf("loading built-in catalog: %w", err)
		}
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observer := service.NewZapUseCaseObserver(logger)
	historyRepo := repository.NewSQLiteHistoryRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	history := service.NewHistoryService(historyRepo, uow, cfg.HistoryLimit, observer)
	export := service.NewExportService(
		service.NewSaver(cfg.OutputDir),
		service.NewCopier(service.SystemClipboard{}, cfg.CopyWithMetadata),
		history,
		observer,
	)

	app := &cli.App{
		Catalog:    cat,
		CatalogErr: catErr,
		Config:     cfg,
		History:    history,
		Export:     export,
		Logger:     logger,
		Policy:     cfg.MissingPolicy(),
	}

	// Detect interactive terminal for the full-screen entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting",
		zap.String("db", cfg.DBPath),
		zap.Int("categories", len(cat.Categories())),
		zap.Int("custom", len(cat.Custom())))

	rootCmd := cli.NewRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}
