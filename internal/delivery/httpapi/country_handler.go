package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/LavaJover/shvark-country-service/internal/delivery/httpapi/dto"
	"github.com/LavaJover/shvark-country-service/internal/domain"
)

type CountryHandler struct {
	CountryUC domain.CountryUsecase
	RefreshUC domain.RefreshUsecase
	ImagePath string
}

func NewCountryHandler(countryUC domain.CountryUsecase, refreshUC domain.RefreshUsecase, imagePath string) *CountryHandler {
	return &CountryHandler{
		CountryUC: countryUC,
		RefreshUC: refreshUC,
		ImagePath: imagePath,
	}
}

func (h *CountryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.RefreshUC.Refresh(r.Context())
	if err != nil {
		var sourceErr *domain.ExternalSourceError
		if errors.As(err, &sourceErr) {
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{
				Error:   "External data source unavailable",
				Details: sourceErr.Error(),
			})
			return
		}
		slog.Error("countries refresh failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.RefreshResponse{
		Message:            "Countries data refreshed successfully",
		CountriesProcessed: result.Processed,
		CountriesUpdated:   result.Updated,
		CountriesCreated:   result.Created,
		Errors:             len(result.Errors),
	})
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.CountryUC.List(r.URL.Query())
	if err != nil {
		var queryErr *domain.InvalidQueryError
		if errors.As(err, &queryErr) {
			writeJSON(w, http.StatusBadRequest, dto.InvalidQueryResponse{
				Error:             "Invalid query parameters",
				InvalidParameters: queryErr.Invalid,
				ValidParameters:   queryErr.Valid,
			})
			return
		}
		slog.Error("countries list failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, dto.FromCountries(countries))
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	country, err := h.CountryUC.GetByName(name)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Country not found"})
			return
		}
		slog.Error("country lookup failed", "name", name, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, dto.FromCountry(country))
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.CountryUC.DeleteByName(name); err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Country not found"})
			return
		}
		slog.Error("country delete failed", "name", name, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Country %s deleted successfully", name),
	})
}

func (h *CountryHandler) Image(w http.ResponseWriter, r *http.Request) {
	imageBytes, err := os.ReadFile(h.ImagePath)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Summary image not found"})
			return
		}
		slog.Error("summary image read failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(imageBytes)
}

func (h *CountryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.CountryUC.Status()
	if err != nil {
		slog.Error("status lookup failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{
		TotalCountries:  status.TotalCountries,
		LastRefreshedAt: status.LastRefreshedAt,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}
