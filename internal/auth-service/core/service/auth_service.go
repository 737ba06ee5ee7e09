package service

import (
	"context"
	"strings"

	"road-assist/internal/auth-service/core/domain/dto"
	"road-assist/internal/auth-service/core/domain/models"
	"road-assist/internal/auth-service/core/myerrors"
	"road-assist/internal/auth-service/core/ports"
	"road-assist/internal/mylogger"
)

type AuthService struct {
	mylog        mylogger.Logger
	userRepo     ports.IUserRepo
	accessSecret string
}

func NewAuthService(mylog mylogger.Logger, userRepo ports.IUserRepo, accessSecret string) ports.IAuthService {
	return &AuthService{
		mylog:        mylog,
		userRepo:     userRepo,
		accessSecret: accessSecret,
	}
}

func (as *AuthService) Register(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error) {
	log := as.mylog.Action("Register")

	if err := validateRegistration(req); err != nil {
		return dto.AuthResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		log.Error("cannot hash password", err)
		return dto.AuthResponse{}, err
	}

	role := strings.ToLower(req.Role)
	user := models.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Phone:    req.Phone,
		Password: hashed,
		Role:     role,
	}

	var profile *models.ProviderProfile
	if role == models.RoleProvider {
		radius := DefaultCoverageRadiusKm
		if req.CoverageRadiusKm != nil && *req.CoverageRadiusKm > 0 {
			radius = *req.CoverageRadiusKm
		}
		profile = &models.ProviderProfile{
			ServiceTypes:     req.ServiceTypes,
			CoverageRadiusKm: radius,
		}
	}

	userId, err := as.userRepo.Create(ctx, user, profile)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := generateToken(as.accessSecret, userId, role, user.Email)
	if err != nil {
		log.Error("cannot sign token", err)
		return dto.AuthResponse{}, err
	}

	log.Info("user registered", "user-id", userId, "role", role)
	return dto.AuthResponse{
		UserId:  userId,
		Role:    role,
		Token:   token,
		Message: "Registered successfully",
	}, nil
}

func (as *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	log := as.mylog.Action("Login")

	if err := validateLogin(req); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := as.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	if !checkPassword(user.Password, req.Password) {
		return dto.AuthResponse{}, myerrors.ErrPasswordUnknown
	}

	token, err := generateToken(as.accessSecret, user.ID, user.Role, user.Email)
	if err != nil {
		log.Error("cannot sign token", err)
		return dto.AuthResponse{}, err
	}

	log.Info("user logged in", "user-id", user.ID)
	return dto.AuthResponse{
		UserId:  user.ID,
		Role:    user.Role,
		Token:   token,
		Message: "Logged in successfully",
	}, nil
}
