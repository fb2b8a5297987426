package usecase

import (
	"slices"
	"sort"

	"github.com/LavaJover/shvark-country-service/internal/domain"
)

var validListParams = []string{"region", "currency", "name", "sort"}

type DefaultCountryUsecase struct {
	CountryRepo domain.CountryRepository
	SettingRepo domain.SettingRepository
}

func NewDefaultCountryUsecase(countryRepo domain.CountryRepository, settingRepo domain.SettingRepository) *DefaultCountryUsecase {
	return &DefaultCountryUsecase{
		CountryRepo: countryRepo,
		SettingRepo: settingRepo,
	}
}

// List validates the query parameter whitelist before touching the store.
// Unknown keys reject the whole request; an unrecognized sort value falls
// back to name_asc.
func (uc *DefaultCountryUsecase) List(params map[string][]string) ([]*domain.Country, error) {
	var invalid []string
	for key := range params {
		if !slices.Contains(validListParams, key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &domain.InvalidQueryError{Invalid: invalid, Valid: validListParams}
	}

	query := domain.ListQuery{
		Region:   firstValue(params, "region"),
		Currency: firstValue(params, "currency"),
		Name:     firstValue(params, "name"),
		Sort:     parseSortKey(firstValue(params, "sort")),
	}

	return uc.CountryRepo.List(query)
}

func (uc *DefaultCountryUsecase) GetByName(name string) (*domain.Country, error) {
	return uc.CountryRepo.GetByName(name)
}

func (uc *DefaultCountryUsecase) DeleteByName(name string) error {
	return uc.CountryRepo.DeleteByName(name)
}

func (uc *DefaultCountryUsecase) Status() (*domain.ServiceStatus, error) {
	total, err := uc.CountryRepo.Count()
	if err != nil {
		return nil, err
	}

	lastRefreshedAt, err := uc.SettingRepo.GetLastGlobalRefresh()
	if err != nil {
		return nil, err
	}

	return &domain.ServiceStatus{
		TotalCountries:  total,
		LastRefreshedAt: lastRefreshedAt,
	}, nil
}

func firstValue(params map[string][]string, key string) string {
	values := params[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func parseSortKey(value string) domain.SortKey {
	switch domain.SortKey(value) {
	case domain.SortGDPDesc, domain.SortGDPAsc,
		domain.SortPopulationDesc, domain.SortPopulationAsc,
		domain.SortNameAsc, domain.SortNameDesc:
		return domain.SortKey(value)
	default:
		return domain.SortNameAsc
	}
}
