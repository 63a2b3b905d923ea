package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airportops/api"
	"github.com/Domenick1991/airportops/config"
	"github.com/Domenick1991/airportops/internal/auth"
	"github.com/Domenick1991/airportops/internal/bootstrap"
	"github.com/Domenick1991/airportops/internal/cache"
	"github.com/Domenick1991/airportops/internal/kafka"
	"github.com/Domenick1991/airportops/internal/repository"
	"github.com/Domenick1991/airportops/internal/service/flights"
	"github.com/Domenick1991/airportops/internal/service/gates"
	"github.com/Domenick1991/airportops/internal/service/passengers"
	"github.com/Domenick1991/airportops/internal/service/reports"
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
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	gateRepo := repository.NewGateRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)

	authManager := auth.NewManager(employeeRepo, []byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	gateService := gates.NewGateService(gateRepo, flightRepo)
	flightService := flights.NewFlightService(flightRepo, gateRepo, redisCache, producer, cfg.Kafka.OpsEventsTopic)
	passengerService := passengers.NewPassengerService(passengerRepo, flightRepo, producer, cfg.Kafka.NotificationsTopic)
	reportService := reports.NewReportService(flightRepo, passengerRepo, gateRepo, redisCache)

	handlers := bootstrap.Handlers{
		Auth:       api.NewAuthHandler(authManager),
		Gates:      api.NewGateHandler(gateService),
		Flights:    api.NewFlightHandler(flightService),
		Passengers: api.NewPassengerHandler(passengerService),
		Reports:    api.NewReportHandler(reportService),
		Guard:      api.NewGuard(authManager),
	}

	log.Info().Str("address", cfg.HTTP.Address).Msg("starting airport ops api")
	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}
