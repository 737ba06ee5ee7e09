package handle

import (
	"encoding/json"
	"net/http"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/assist-service/core/services"
	"road-assist/internal/mylogger"
)

type MatchHandler struct {
	matcher ports.IMatcherService
	log     mylogger.Logger
}

func NewMatchHandler(matcher ports.IMatcherService, log mylogger.Logger) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
		log:     log,
	}
}

// Match works for anonymous callers too; identity only matters once the
// user actually requests help.
func (mh *MatchHandler) Match() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.MatchRequestDto{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		if err := services.ValidateMatchRequest(req); err != nil {
			WriteDomainError(w, err)
			return
		}

		serviceType := ""
		if req.ServiceType != nil {
			serviceType = *req.ServiceType
		}

		res, err := mh.matcher.FindProviders(*req.Latitude, *req.Longitude, serviceType)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
