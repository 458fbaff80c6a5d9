package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/maplebudget/statement-ingest/internal/api"
	"github.com/maplebudget/statement-ingest/internal/bank"
	"github.com/maplebudget/statement-ingest/internal/config"
	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/logger"
	"github.com/maplebudget/statement-ingest/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.PrettyLogs)

	st, err := store.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer st.Close()

	pipeline := ingest.NewPipeline(bank.DefaultRegistry(), st, log)

	app := fiber.New(fiber.Config{
		AppName:   "statement-ingest",
		BodyLimit: 12 << 20, // headroom over the handler's own 10MB cap
	})
	api.NewHandler(pipeline, st, log).Register(app)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info().Str("addr", addr).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
