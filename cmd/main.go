package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/zlog"

	"jiggermix/cmd/buildCFG"
	"jiggermix/internal/api/api"
	"jiggermix/internal/mailer"
	"jiggermix/internal/repo"
	"jiggermix/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	serverCfg := buildCFG.BuildServerConfig(&log)
	dbCfg := buildCFG.BuildDBConfig(&log)
	mailCfg := buildCFG.BuildMailConfig(&log)

	db, err := repo.Open(dbCfg.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	repository, err := repo.NewRepository(db, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repository")
	}
	if err := repository.InitSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}
	log.Info().Str("path", dbCfg.Path).Msg("database ready")

	notifier := mailer.NewNotifier(mailer.NewSMTPSender(mailCfg), repository, &log)

	serviceInstance := service.NewService(repository, notifier, &log)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	if err := repository.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
	log.Info().Msg("Shutdown complete")
}
