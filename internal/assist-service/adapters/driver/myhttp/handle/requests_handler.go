package handle

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/mylogger"
)

type RequestsHandler struct {
	requestService  ports.IRequestService
	providerService ports.IProviderService
	log             mylogger.Logger
}

func NewRequestsHandler(requestService ports.IRequestService, providerService ports.IProviderService, log mylogger.Logger) *RequestsHandler {
	return &RequestsHandler{
		requestService:  requestService,
		providerService: providerService,
		log:             log,
	}
}

func (rh *RequestsHandler) CreateRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.HelpRequestDto{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		// the authenticated user owns the request, whatever the body says
		userId := r.Header.Get("X-UserId")
		req.UserId = &userId

		res, err := rh.requestService.CreateRequest(req)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (rh *RequestsHandler) Accept() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerId, err := rh.actorProviderId(r)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		res, err := rh.requestService.Accept(r.PathValue("request_id"), providerId)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *RequestsHandler) Decline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerId, err := rh.actorProviderId(r)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		req := dto.DeclineRequestDto{}
		if err := decodeOptionalBody(r, &req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := rh.requestService.Decline(r.PathValue("request_id"), providerId, req)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *RequestsHandler) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerId, err := rh.actorProviderId(r)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		res, err := rh.requestService.Complete(r.PathValue("request_id"), providerId)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *RequestsHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CancelRequestDto{}
		if err := decodeOptionalBody(r, &req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := rh.requestService.Cancel(r.PathValue("request_id"), r.Header.Get("X-UserId"), req)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *RequestsHandler) UserRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := r.PathValue("user_id")
		if userId != r.Header.Get("X-UserId") {
			JsonError(w, http.StatusForbidden, errors.New("cannot read another user's requests"))
			return
		}

		res, err := rh.requestService.UserHistory(userId, 0)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

// actorProviderId resolves the authenticated user to their provider row,
// the same lookup the lifecycle authorization is checked against.
func (rh *RequestsHandler) actorProviderId(r *http.Request) (string, error) {
	profile, err := rh.providerService.Profile(r.Header.Get("X-UserId"))
	if err != nil {
		return "", err
	}
	return profile.ProviderId, nil
}

// decodeOptionalBody tolerates an empty body; decline/cancel reasons are
// optional.
func decodeOptionalBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
