package services

import (
	"context"
	"time"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/domain/model"
	"road-assist/internal/assist-service/core/myerrors"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/mylogger"
)

type ProviderService struct {
	ctx          context.Context
	mylog        mylogger.Logger
	providerRepo ports.IProviderRepo
	requestRepo  ports.IRequestRepo
}

func NewProviderService(ctx context.Context,
	log mylogger.Logger,
	providerRepo ports.IProviderRepo,
	requestRepo ports.IRequestRepo,
) ports.IProviderService {
	return &ProviderService{
		ctx:          ctx,
		mylog:        log,
		providerRepo: providerRepo,
		requestRepo:  requestRepo,
	}
}

func (ps *ProviderService) Profile(userID string) (dto.ProviderProfileDto, error) {
	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	p, err := ps.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return dto.ProviderProfileDto{}, err
	}

	return dto.ProviderProfileDto{
		ProviderId:       p.ID,
		UserId:           p.UserID,
		Name:             p.Name,
		ApprovalStatus:   p.ApprovalStatus,
		IsAvailable:      p.IsAvailable,
		CoverageRadiusKm: p.CoverageRadiusKm,
		ServiceTypes:     p.ServiceTypes,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
	}, nil
}

func (ps *ProviderService) Dashboard(userID string) (dto.ProviderDashboardDto, error) {
	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	p, err := ps.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return dto.ProviderDashboardDto{}, err
	}

	stats, err := ps.providerRepo.Stats(ctx, p.ID)
	if err != nil {
		return dto.ProviderDashboardDto{}, err
	}

	return dto.ProviderDashboardDto{
		ProviderId:      p.ID,
		TotalCompleted:  stats.TotalCompleted,
		PendingRequests: stats.PendingRequests,
		ActiveRequests:  stats.ActiveRequests,
	}, nil
}

func (ps *ProviderService) PendingRequests(userID string) (dto.RequestListDto, error) {
	return ps.listForProvider(userID, model.StatusPending, 0)
}

func (ps *ProviderService) History(userID, status string, limit int) (dto.RequestListDto, error) {
	if err := validateStatusFilter(status); err != nil {
		return dto.RequestListDto{}, err
	}
	return ps.listForProvider(userID, status, limit)
}

func (ps *ProviderService) listForProvider(userID, status string, limit int) (dto.RequestListDto, error) {
	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	p, err := ps.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return dto.RequestListDto{}, err
	}

	requests, err := ps.requestRepo.ListByProvider(ctx, p.ID, status, normalizeLimit(limit))
	if err != nil {
		return dto.RequestListDto{}, err
	}
	return requestListDto(requests), nil
}

func (ps *ProviderService) SetAvailability(providerID, actorUserID string, req dto.AvailabilityRequestDto) (dto.AvailabilityResponseDto, error) {
	log := ps.mylog.Action("SetAvailability")

	if req.IsAvailable == nil {
		return dto.AvailabilityResponseDto{}, myerrors.Validationf("is_available is required")
	}

	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	p, err := ps.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return dto.AvailabilityResponseDto{}, err
	}
	if p.UserID != actorUserID {
		return dto.AvailabilityResponseDto{}, myerrors.Authorizationf("provider %s does not belong to you", providerID)
	}

	if err := ps.providerRepo.SetAvailability(ctx, providerID, *req.IsAvailable); err != nil {
		log.Error("cannot update availability", err)
		return dto.AvailabilityResponseDto{}, err
	}

	log.Info("availability updated", "provider-id", providerID, "is-available", *req.IsAvailable)
	return dto.AvailabilityResponseDto{
		ProviderId:  providerID,
		IsAvailable: *req.IsAvailable,
		Message:     "Availability updated successfully",
	}, nil
}

func (ps *ProviderService) UpdateLocation(providerID, actorUserID string, req dto.LocationUpdateDto) (dto.LocationResponseDto, error) {
	log := ps.mylog.Action("UpdateLocation")

	if err := validateLatLng(req.Latitude, req.Longitude); err != nil {
		return dto.LocationResponseDto{}, err
	}

	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	p, err := ps.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return dto.LocationResponseDto{}, err
	}
	if p.UserID != actorUserID {
		return dto.LocationResponseDto{}, myerrors.Authorizationf("provider %s does not belong to you", providerID)
	}

	if err := ps.providerRepo.UpdateLocation(ctx, providerID, *req.Latitude, *req.Longitude); err != nil {
		log.Error("cannot update location", err)
		return dto.LocationResponseDto{}, err
	}

	return dto.LocationResponseDto{
		ProviderId: providerID,
		UpdatedAt:  time.Now().Format(time.RFC3339),
	}, nil
}
