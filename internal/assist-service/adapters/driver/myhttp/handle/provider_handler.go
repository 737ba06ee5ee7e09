package handle

import (
	"encoding/json"
	"net/http"
	"strconv"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/mylogger"
)

type ProviderHandler struct {
	providerService ports.IProviderService
	log             mylogger.Logger
}

func NewProviderHandler(providerService ports.IProviderService, log mylogger.Logger) *ProviderHandler {
	return &ProviderHandler{
		providerService: providerService,
		log:             log,
	}
}

func (ph *ProviderHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.providerService.Profile(r.Header.Get("X-UserId"))
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProviderHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.providerService.Dashboard(r.Header.Get("X-UserId"))
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProviderHandler) PendingRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.providerService.PendingRequests(r.Header.Get("X-UserId"))
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProviderHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		limit := 0
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			limit, _ = strconv.Atoi(rawLimit)
		}

		res, err := ph.providerService.History(r.Header.Get("X-UserId"), status, limit)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProviderHandler) SetAvailability() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.AvailabilityRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := ph.providerService.SetAvailability(r.PathValue("provider_id"), r.Header.Get("X-UserId"), req)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProviderHandler) UpdateLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.LocationUpdateDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := ph.providerService.UpdateLocation(r.PathValue("provider_id"), r.Header.Get("X-UserId"), req)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}
