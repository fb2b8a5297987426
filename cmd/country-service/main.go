package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/config"
	"github.com/LavaJover/shvark-country-service/internal/delivery/httpapi"
	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/exchangerates"
	publisher "github.com/LavaJover/shvark-country-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/restcountries"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/summary"
	"github.com/LavaJover/shvark-country-service/internal/usecase"
	"github.com/LavaJover/shvark-country-service/internal/usecase/gdp"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.CountryDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.CountryDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repos
	countryRepo := repository.NewDefaultCountryRepository(db)
	settingRepo := repository.NewDefaultSettingRepository(db)
	store := repository.NewStore(db)

	// Init external sources
	rateSource := exchangerates.NewClient(cfg.Sources.ExchangeRatesAPIURL)
	countrySource := restcountries.NewClient(cfg.Sources.CountriesAPIURL)

	// Init summary renderer
	renderer := summary.NewPNGRenderer(cfg.Cache.Dir)

	// Init refresh event publisher
	var eventPublisher domain.EventPublisher = publisher.NoopPublisher{}
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		eventPublisher = publisher.NewRefreshEventPublisher(brokers, cfg.KafkaService.Topic)
	}

	// Init metrics
	countryMetrics := metrics.NewCountryMetrics()

	// Init usecases
	countryUC := usecase.NewDefaultCountryUsecase(countryRepo, settingRepo)
	refreshUC := usecase.NewDefaultRefreshUsecase(
		rateSource,
		countrySource,
		store,
		countryRepo,
		settingRepo,
		gdp.NewRandomEstimator(),
		renderer,
		eventPublisher,
		countryMetrics,
	)

	// Init HTTP server
	handler := httpapi.NewCountryHandler(countryUC, refreshUC, renderer.Path())
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("country service started", "addr", server.Addr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
