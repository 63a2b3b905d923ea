package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airportops/config"
	"github.com/Domenick1991/airportops/internal/kafka"
	"github.com/Domenick1991/airportops/internal/notify"
	"github.com/Domenick1991/airportops/internal/repository"
	"github.com/Domenick1991/airportops/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	flightRepo := repository.NewFlightRepository(pool)
	gateRepo := repository.NewGateRepository(pool)
	flightService := flights.NewFlightService(flightRepo, gateRepo, nil, nil, "")

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()

	go func() {
		if err := consumer.Consume(ctx, notifier.Notify); err != nil {
			log.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.ReconcileSweepMinutes) * time.Minute)
	defer sweep.Stop()

	for {
		select {
		case <-sweep.C:
			fixed, err := flightService.ReconcileGateAssignments(ctx)
			if err != nil {
				log.Error().Err(err).Msg("reconcile gate assignments")
				continue
			}
			if fixed > 0 {
				log.Info().Int64("gates", fixed).Msg("reconciled gate availability")
			}
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		}
	}
}
