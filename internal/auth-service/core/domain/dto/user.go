package dto

type SignupRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Password         string   `json:"password"`
	Role             string   `json:"role"`
	ServiceTypes     []string `json:"service_types,omitempty"`
	CoverageRadiusKm *float64 `json:"coverage_radius_km,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UserId  string `json:"user_id"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
