package ports

import "road-assist/internal/assist-service/core/domain/dto"

type IMatcherService interface {
	// FindProviders ranks matchable providers by distance from the query
	// point. An empty list is a normal outcome, not an error.
	FindProviders(lat, lon float64, serviceType string) (dto.MatchResponseDto, error)
}

type IRequestService interface {
	CreateRequest(req dto.HelpRequestDto) (dto.HelpRequestResponseDto, error)
	Accept(requestID, actorProviderID string) (dto.RequestStatusResponseDto, error)
	Decline(requestID, actorProviderID string, req dto.DeclineRequestDto) (dto.RequestStatusResponseDto, error)
	Complete(requestID, actorProviderID string) (dto.RequestStatusResponseDto, error)
	Cancel(requestID, actorUserID string, req dto.CancelRequestDto) (dto.RequestStatusResponseDto, error)
	UserHistory(userID string, limit int) (dto.RequestListDto, error)
}

type IProviderService interface {
	Profile(userID string) (dto.ProviderProfileDto, error)
	Dashboard(userID string) (dto.ProviderDashboardDto, error)
	PendingRequests(userID string) (dto.RequestListDto, error)
	History(userID, status string, limit int) (dto.RequestListDto, error)
	SetAvailability(providerID, actorUserID string, req dto.AvailabilityRequestDto) (dto.AvailabilityResponseDto, error)
	UpdateLocation(providerID, actorUserID string, req dto.LocationUpdateDto) (dto.LocationResponseDto, error)
}
