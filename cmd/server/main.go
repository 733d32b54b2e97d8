package main

import (
	"fmt"
	"os"

	"github.com/JustJay7/nyaya-mitra/internal/cache"
	"github.com/JustJay7/nyaya-mitra/internal/cases"
	"github.com/JustJay7/nyaya-mitra/internal/config"
	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/JustJay7/nyaya-mitra/internal/judgment"
	"github.com/JustJay7/nyaya-mitra/internal/metrics"
	"github.com/JustJay7/nyaya-mitra/internal/server"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "nyaya-mitra",
		Short:         "Submit legal disputes and generate preliminary AI judgments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Run database migrations and exit",
			RunE:  runMigrate,
		},
		newCasesCommand(),
		newSmokeCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize already migrates; run again so an existing file picks up new indexes
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully", "path", cfg.DatabasePath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	generator, err := judgment.NewGenerator(cmd.Context(), judgment.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.Model(),
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.LLMBaseURL,
		Timeout:  cfg.GenerationTimeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize judgment generator", "error", err)
	}

	caseCache := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)
	m := metrics.New()

	service := cases.NewService(database.NewCaseStore(db), generator, cases.Options{
		Cache:   caseCache,
		Logger:  log,
		Metrics: m,
		Guard:   cfg.JudgmentGuard,
	})

	srv := server.New(cfg, db, service, caseCache, m, log)

	log.Info("Starting Nyaya Mitra",
		"host", cfg.Host,
		"port", cfg.Port,
		"generator", generator.Name(),
		"judgment_guard", cfg.JudgmentGuard,
	)

	return srv.Run()
}
