package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-country-service/internal/usecase/gdp"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

var newBatchID, _ = nanoid.Standard(12)

type DefaultRefreshUsecase struct {
	RateSource    domain.RateSource
	CountrySource domain.CountrySource
	Store         domain.RefreshStore
	CountryRepo   domain.CountryRepository
	SettingRepo   domain.SettingRepository
	Estimator     *gdp.Estimator
	Renderer      domain.SummaryRenderer
	Publisher     domain.EventPublisher
	Metrics       *metrics.CountryMetrics
}

func NewDefaultRefreshUsecase(
	rateSource domain.RateSource,
	countrySource domain.CountrySource,
	store domain.RefreshStore,
	countryRepo domain.CountryRepository,
	settingRepo domain.SettingRepository,
	estimator *gdp.Estimator,
	renderer domain.SummaryRenderer,
	publisher domain.EventPublisher,
	countryMetrics *metrics.CountryMetrics,
) *DefaultRefreshUsecase {
	return &DefaultRefreshUsecase{
		RateSource:    rateSource,
		CountrySource: countrySource,
		Store:         store,
		CountryRepo:   countryRepo,
		SettingRepo:   settingRepo,
		Estimator:     estimator,
		Renderer:      renderer,
		Publisher:     publisher,
		Metrics:       countryMetrics,
	}
}

// Refresh pulls rates then countries, reconciles them into the store inside
// one transaction and reports aggregate counts. Per-record failures are
// accumulated, never escalated; a failed fetch or a failed commit aborts the
// whole run with zero writes.
func (uc *DefaultRefreshUsecase) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	start := time.Now()

	fetchStart := time.Now()
	rates, err := uc.RateSource.FetchRates(ctx)
	uc.Metrics.RecordFetch("exchange_rates", time.Since(fetchStart).Seconds(), err != nil)
	if err != nil {
		uc.Metrics.RecordRefresh("source_unavailable", time.Since(start).Seconds(), 0, 0, 0, 0)
		return nil, err
	}

	fetchStart = time.Now()
	rawCountries, err := uc.CountrySource.FetchCountries(ctx)
	uc.Metrics.RecordFetch("countries", time.Since(fetchStart).Seconds(), err != nil)
	if err != nil {
		uc.Metrics.RecordRefresh("source_unavailable", time.Since(start).Seconds(), 0, 0, 0, 0)
		return nil, err
	}

	result := &domain.RefreshResult{BatchID: newBatchID()}
	refreshedAt := time.Now().UTC()

	err = uc.Store.WithinTransaction(func(countries domain.CountryRepository, settings domain.SettingRepository) error {
		// Marker first: a refresh that errors on every record still advances it.
		if err := settings.SetLastGlobalRefresh(refreshedAt); err != nil {
			return err
		}

		for _, raw := range rawCountries {
			result.Processed++
			if raw.Name == "" {
				continue
			}

			country, buildErr := uc.buildCountry(raw, rates)
			if buildErr != nil {
				slog.Warn("skipping country record", "batch_id", result.BatchID, "name", raw.Name, "error", buildErr.Error())
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", raw.Name, buildErr))
				continue
			}

			created, upsertErr := countries.Upsert(country)
			if upsertErr != nil {
				slog.Warn("failed to upsert country", "batch_id", result.BatchID, "name", raw.Name, "error", upsertErr.Error())
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", raw.Name, upsertErr))
				continue
			}

			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		return nil
	})
	if err != nil {
		uc.Metrics.RecordRefresh("persistence_failure", time.Since(start).Seconds(), 0, 0, 0, 0)
		return nil, fmt.Errorf("refresh transaction failed: %w", err)
	}

	uc.Metrics.RecordRefresh("success", time.Since(start).Seconds(),
		result.Processed, result.Created, result.Updated, len(result.Errors))

	slog.Info("countries refresh completed",
		"batch_id", result.BatchID,
		"processed", result.Processed,
		"created", result.Created,
		"updated", result.Updated,
		"errors", len(result.Errors))
	for i, recordErr := range result.Errors {
		if i == 5 {
			break
		}
		slog.Warn("refresh record error", "batch_id", result.BatchID, "error", recordErr)
	}

	// Reporting steps never fail the refresh
	if err := uc.renderSummary(refreshedAt); err != nil {
		slog.Warn("summary image generation failed", "batch_id", result.BatchID, "error", err.Error())
	}
	if err := uc.Publisher.PublishRefresh(ctx, domain.RefreshEvent{
		BatchID:     result.BatchID,
		Processed:   result.Processed,
		Created:     result.Created,
		Updated:     result.Updated,
		Errors:      len(result.Errors),
		RefreshedAt: refreshedAt,
	}); err != nil {
		slog.Warn("refresh event publish failed", "batch_id", result.BatchID, "error", err.Error())
	}

	return result, nil
}

func (uc *DefaultRefreshUsecase) buildCountry(raw domain.RawCountry, rates domain.Rates) (*domain.Country, error) {
	var population int64
	if raw.Population != nil {
		population = *raw.Population
	}
	if population < 0 {
		return nil, fmt.Errorf("negative population %d", population)
	}

	currencyCode := firstCurrencyCode(raw.Currencies)

	var exchangeRate *decimal.Decimal
	if currencyCode != nil {
		if rate, ok := rates[*currencyCode]; ok && rate.IsPositive() {
			exchangeRate = &rate
		}
	}

	return &domain.Country{
		Name:         raw.Name,
		Capital:      raw.Capital,
		Region:       raw.Region,
		Population:   population,
		CurrencyCode: currencyCode,
		ExchangeRate: exchangeRate,
		EstimatedGDP: uc.Estimator.Estimate(population, exchangeRate, currencyCode != nil),
		FlagURL:      raw.Flag,
	}, nil
}

func firstCurrencyCode(currencies []domain.RawCurrency) *string {
	for _, currency := range currencies {
		if currency.Code != "" {
			code := currency.Code
			return &code
		}
	}
	return nil
}

func (uc *DefaultRefreshUsecase) renderSummary(refreshedAt time.Time) error {
	total, err := uc.CountryRepo.Count()
	if err != nil {
		return err
	}
	top, err := uc.CountryRepo.TopByGDP(5)
	if err != nil {
		return err
	}

	lastRefreshedAt, err := uc.SettingRepo.GetLastGlobalRefresh()
	if err != nil {
		return err
	}
	if lastRefreshedAt == nil {
		lastRefreshedAt = &refreshedAt
	}

	return uc.Renderer.Render(total, *lastRefreshedAt, top)
}
