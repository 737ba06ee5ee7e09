package service

import (
	"fmt"
	"strings"
	"time"

	"road-assist/internal/auth-service/core/domain/dto"
	"road-assist/internal/auth-service/core/domain/models"
	"road-assist/internal/auth-service/core/myerrors"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinNameLen = 1
	MaxNameLen = 100

	MinEmailLen = 5
	MaxEmailLen = 100

	MinPasswordLen = 6
	MaxPasswordLen = 50

	HashFactor = 10

	TokenTTL = 24 * time.Hour

	DefaultCoverageRadiusKm = 50.0
)

var AllowedRoles = map[string]bool{
	models.RoleUser:     true,
	models.RoleProvider: true,
}

func validateRegistration(req dto.SignupRequest) error {
	if err := validateName(req.Name); err != nil {
		return fmt.Errorf("invalid name: %v", err)
	}

	if err := validateEmail(req.Email); err != nil {
		return fmt.Errorf("invalid email: %v", err)
	}

	if err := validatePassword(req.Password); err != nil {
		return fmt.Errorf("invalid password: %v", err)
	}

	if req.Phone == "" {
		return fmt.Errorf("invalid phone: %v", myerrors.ErrFieldIsEmpty)
	}

	if !AllowedRoles[strings.ToLower(req.Role)] {
		return myerrors.ErrUnknownRole
	}

	return nil
}

func validateLogin(req dto.LoginRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return fmt.Errorf("invalid email: %v", err)
	}

	if err := validatePassword(req.Password); err != nil {
		return fmt.Errorf("invalid password: %v", err)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return myerrors.ErrFieldIsEmpty
	}

	nameLen := len(name)
	if nameLen < MinNameLen || nameLen > MaxNameLen {
		return fmt.Errorf("must be in range [%d, %d]", MinNameLen, MaxNameLen)
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return myerrors.ErrFieldIsEmpty
	}

	emailLen := len(email)
	if emailLen < MinEmailLen || emailLen > MaxEmailLen {
		return fmt.Errorf("must be in range [%d, %d]", MinEmailLen, MaxEmailLen)
	}

	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("must contain only one @: %s", email)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return myerrors.ErrFieldIsEmpty
	}

	passwordLen := len(password)
	if passwordLen < MinPasswordLen || passwordLen > MaxPasswordLen {
		return fmt.Errorf("must be in range [%d, %d]", MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), HashFactor)
}

func checkPassword(hashed []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}

func generateToken(secret, userId, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId,
		"role":    role,
		"email":   email,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
