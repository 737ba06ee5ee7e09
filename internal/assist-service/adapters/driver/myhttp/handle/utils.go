package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"road-assist/internal/assist-service/core/myerrors"
)

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func JsonError(w http.ResponseWriter, status int, err error) {
	jsonResponse(w, status, map[string]string{
		"message": err.Error(),
	})
}

// WriteDomainError maps the domain error taxonomy onto distinct HTTP
// responses so the caller can tell retry from re-auth from re-fetch.
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		validationErr    *myerrors.ValidationError
		authorizationErr *myerrors.AuthorizationError
		notFoundErr      *myerrors.NotFoundError
		conflictErr      *myerrors.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		JsonError(w, http.StatusBadRequest, err)
	case errors.As(err, &authorizationErr):
		JsonError(w, http.StatusForbidden, err)
	case errors.As(err, &notFoundErr):
		JsonError(w, http.StatusNotFound, err)
	case errors.As(err, &conflictErr):
		JsonError(w, http.StatusConflict, err)
	default:
		JsonError(w, http.StatusInternalServerError, errors.New("internal error, please try again later"))
	}
}
