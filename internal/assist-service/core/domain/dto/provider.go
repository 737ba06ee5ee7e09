package dto

// API transfer data for provider self-service.

type AvailabilityRequestDto struct {
	IsAvailable *bool `json:"is_available"`
}

type AvailabilityResponseDto struct {
	ProviderId  string `json:"provider_id"`
	IsAvailable bool   `json:"is_available"`
	Message     string `json:"message"`
}

type LocationUpdateDto struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type LocationResponseDto struct {
	ProviderId string `json:"provider_id"`
	UpdatedAt  string `json:"updated_at"`
}

type ProviderProfileDto struct {
	ProviderId       string   `json:"provider_id"`
	UserId           string   `json:"user_id"`
	Name             string   `json:"name"`
	ApprovalStatus   string   `json:"approval_status"`
	IsAvailable      bool     `json:"is_available"`
	CoverageRadiusKm float64  `json:"coverage_radius_km"`
	ServiceTypes     []string `json:"service_types"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

type ProviderDashboardDto struct {
	ProviderId      string `json:"provider_id"`
	TotalCompleted  int    `json:"total_completed"`
	PendingRequests int    `json:"pending_requests"`
	ActiveRequests  int    `json:"active_requests"`
}
