package dto

// API transfer data for provider matching.

type MatchRequestDto struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ServiceType *string  `json:"service_type,omitempty"`
}

type MatchedProviderDto struct {
	ProviderId   string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	DistanceKm   float64  `json:"distance_km"`
	ServiceTypes []string `json:"service_types"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

type MatchResponseDto struct {
	Providers []MatchedProviderDto `json:"providers"`
	Count     int                  `json:"count"`
}
