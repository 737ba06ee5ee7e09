package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"road-assist/internal/auth-service/core/domain/dto"
	"road-assist/internal/auth-service/core/myerrors"
	"road-assist/internal/auth-service/core/ports"
	"road-assist/internal/mylogger"
)

type AuthHandler struct {
	authService ports.IAuthService
	mylog       mylogger.Logger
}

func NewAuthHandler(authService ports.IAuthService, mylog mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mylog:       mylog,
	}
}

func (ah *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.SignupRequest

		mylog := ah.mylog.Action("Register")

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse signup payload", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), WaitTime*time.Second)
		defer cancel()

		resp, err := ah.authService.Register(ctx, req)
		if err != nil {
			if errors.Is(err, myerrors.ErrEmailRegistered) {
				jsonError(w, http.StatusConflict, err)
				return
			}
			if errors.Is(err, myerrors.ErrFieldIsEmpty) || errors.Is(err, myerrors.ErrUnknownRole) {
				jsonError(w, http.StatusBadRequest, err)
				return
			}
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusCreated, resp)
		mylog.Info("Successfully registered", "user-id", resp.UserId)
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest

		mylog := ah.mylog.Action("Login")

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse login payload", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), WaitTime*time.Second)
		defer cancel()

		resp, err := ah.authService.Login(ctx, req)
		if err != nil {
			if errors.Is(err, myerrors.ErrUnknownEmail) || errors.Is(err, myerrors.ErrPasswordUnknown) {
				jsonError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
				return
			}
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusOK, resp)
		mylog.Info("Successfully logged in", "user-id", resp.UserId)
	}
}
