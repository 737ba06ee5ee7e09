package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/domain/model"
	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"
	"road-assist/internal/assist-service/core/myerrors"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/mylogger"

	"github.com/google/uuid"
)

type RequestService struct {
	ctx          context.Context
	mylog        mylogger.Logger
	requestRepo  ports.IRequestRepo
	providerRepo ports.IProviderRepo
	notifier     ports.INotifier
}

func NewRequestService(ctx context.Context,
	log mylogger.Logger,
	requestRepo ports.IRequestRepo,
	providerRepo ports.IProviderRepo,
	notifier ports.INotifier,
) ports.IRequestService {
	return &RequestService{
		ctx:          ctx,
		mylog:        log,
		requestRepo:  requestRepo,
		providerRepo: providerRepo,
		notifier:     notifier,
	}
}

func (rs *RequestService) CreateRequest(req dto.HelpRequestDto) (dto.HelpRequestResponseDto, error) {
	log := rs.mylog.Action("CreateRequest")

	if err := validateHelpRequest(req); err != nil {
		return dto.HelpRequestResponseDto{}, err
	}

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	// reference integrity: the bound provider must resolve
	provider, err := rs.providerRepo.FindByID(ctx, *req.ProviderId)
	if err != nil {
		return dto.HelpRequestResponseDto{}, err
	}

	m := model.Request{
		RequestNumber: newRequestNumber(),
		UserID:        *req.UserId,
		ProviderID:    provider.ID,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		IssueType:     *req.IssueType,
		Status:        model.StatusPending,
	}
	if req.Description != nil {
		m.Description = *req.Description
	}

	created, err := rs.requestRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create help request", err)
		return dto.HelpRequestResponseDto{}, err
	}

	log.Info("created help request",
		"request-id", created.ID,
		"request-number", created.RequestNumber,
		"provider-id", provider.ID,
	)

	rs.notifier.NotifyProvider(provider.ID, websocketdto.EventNewRequest, websocketdto.RequestEventDto{
		RequestId: created.ID,
		Status:    created.Status,
		UserId:    created.UserID,
		IssueType: created.IssueType,
	})

	return dto.HelpRequestResponseDto{
		RequestId:     created.ID,
		RequestNumber: created.RequestNumber,
		ProviderId:    created.ProviderID,
		Status:        created.Status,
		CreatedAt:     created.CreatedAt.Format(time.RFC3339),
		Message:       "Help request created successfully",
	}, nil
}

func (rs *RequestService) Accept(requestID, actorProviderID string) (dto.RequestStatusResponseDto, error) {
	log := rs.mylog.Action("Accept")

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	cur, err := rs.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}
	if cur.ProviderID != actorProviderID {
		return dto.RequestStatusResponseDto{}, myerrors.Authorizationf("request %s is not assigned to you", requestID)
	}

	updated, err := rs.applyTransition(ctx, requestID, model.AcceptableFrom, model.StatusAccepted, "")
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}

	log.Info("request accepted", "request-id", requestID, "provider-id", actorProviderID)

	rs.notifier.NotifyUser(updated.UserID, websocketdto.EventRequestAccepted, websocketdto.RequestEventDto{
		RequestId:  updated.ID,
		Status:     updated.Status,
		ProviderId: updated.ProviderID,
	})

	return statusResponse(updated, "Request accepted successfully"), nil
}

func (rs *RequestService) Decline(requestID, actorProviderID string, req dto.DeclineRequestDto) (dto.RequestStatusResponseDto, error) {
	log := rs.mylog.Action("Decline")

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	cur, err := rs.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}
	if cur.ProviderID != actorProviderID {
		return dto.RequestStatusResponseDto{}, myerrors.Authorizationf("request %s is not assigned to you", requestID)
	}

	reason := model.DefaultDeclineReason
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}

	updated, err := rs.applyTransition(ctx, requestID, model.DeclinableFrom, model.StatusDeclined, reason)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}

	log.Info("request declined", "request-id", requestID, "provider-id", actorProviderID, "reason", reason)

	rs.notifier.NotifyUser(updated.UserID, websocketdto.EventRequestDeclined, websocketdto.RequestEventDto{
		RequestId:  updated.ID,
		Status:     updated.Status,
		ProviderId: updated.ProviderID,
		Reason:     updated.Reason,
	})

	return statusResponse(updated, "Request declined"), nil
}

func (rs *RequestService) Complete(requestID, actorProviderID string) (dto.RequestStatusResponseDto, error) {
	log := rs.mylog.Action("Complete")

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	cur, err := rs.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}
	if cur.ProviderID != actorProviderID {
		return dto.RequestStatusResponseDto{}, myerrors.Authorizationf("request %s is not assigned to you", requestID)
	}

	updated, err := rs.applyTransition(ctx, requestID, model.CompletableFrom, model.StatusCompleted, "")
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}

	log.Info("request completed", "request-id", requestID, "provider-id", actorProviderID)

	rs.notifier.NotifyUser(updated.UserID, websocketdto.EventRequestCompleted, websocketdto.RequestEventDto{
		RequestId:  updated.ID,
		Status:     updated.Status,
		ProviderId: updated.ProviderID,
	})

	return statusResponse(updated, "Request completed successfully"), nil
}

func (rs *RequestService) Cancel(requestID, actorUserID string, req dto.CancelRequestDto) (dto.RequestStatusResponseDto, error) {
	log := rs.mylog.Action("Cancel")

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	cur, err := rs.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}
	if cur.UserID != actorUserID {
		return dto.RequestStatusResponseDto{}, myerrors.Authorizationf("request %s does not belong to you", requestID)
	}

	reason := ""
	if req.Reason != nil {
		reason = strings.TrimSpace(*req.Reason)
	}

	updated, err := rs.applyTransition(ctx, requestID, model.CancellableFrom, model.StatusCancelled, reason)
	if err != nil {
		return dto.RequestStatusResponseDto{}, err
	}

	log.Info("request cancelled", "request-id", requestID, "user-id", actorUserID)

	if updated.ProviderID != "" {
		rs.notifier.NotifyProvider(updated.ProviderID, websocketdto.EventRequestCancelled, websocketdto.RequestEventDto{
			RequestId: updated.ID,
			Status:    updated.Status,
			UserId:    updated.UserID,
			Reason:    updated.Reason,
		})
	}

	return statusResponse(updated, "Request cancelled successfully"), nil
}

func (rs *RequestService) UserHistory(userID string, limit int) (dto.RequestListDto, error) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	requests, err := rs.requestRepo.ListByUser(ctx, userID, normalizeLimit(limit))
	if err != nil {
		return dto.RequestListDto{}, err
	}
	return requestListDto(requests), nil
}

// applyTransition performs the conditional update and, when it matched
// nothing, re-reads the row so the ConflictError carries the status the
// loser of a race actually lost to.
func (rs *RequestService) applyTransition(ctx context.Context, requestID string, from []string, to, reason string) (model.Request, error) {
	updated, err := rs.requestRepo.UpdateStatus(ctx, requestID, from, to, reason)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, myerrors.ErrNoRowsUpdated) {
		return model.Request{}, err
	}

	cur, readErr := rs.requestRepo.FindByID(ctx, requestID)
	if readErr != nil {
		return model.Request{}, readErr
	}
	return model.Request{}, myerrors.Conflict(cur.Status)
}

func statusResponse(m model.Request, message string) dto.RequestStatusResponseDto {
	return dto.RequestStatusResponseDto{
		RequestId: m.ID,
		Status:    m.Status,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   message,
	}
}

func newRequestNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("REQ_%s_%s", time.Now().Format("20060102"), id[:8])
}

func requestListDto(requests []model.Request) dto.RequestListDto {
	res := dto.RequestListDto{
		Requests: make([]dto.RequestDto, 0, len(requests)),
		Count:    len(requests),
	}
	for _, m := range requests {
		res.Requests = append(res.Requests, requestDto(m))
	}
	return res
}

func requestDto(m model.Request) dto.RequestDto {
	d := dto.RequestDto{
		RequestId:     m.ID,
		RequestNumber: m.RequestNumber,
		UserId:        m.UserID,
		ProviderId:    m.ProviderID,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		IssueType:     m.IssueType,
		Description:   m.Description,
		Status:        m.Status,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	d.AssignedAt = formatStamp(m.AssignedAt)
	d.CompletedAt = formatStamp(m.CompletedAt)
	d.CancelledAt = formatStamp(m.CancelledAt)
	d.DeclinedAt = formatStamp(m.DeclinedAt)
	return d
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func normalizeLimit(limit int) int {
	const defaultLimit = 50
	if limit <= 0 || limit > 200 {
		return defaultLimit
	}
	return limit
}
