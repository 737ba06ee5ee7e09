package services

import (
	"context"
	"sync"
	"testing"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/domain/model"
	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"
	"road-assist/internal/assist-service/core/myerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func helpRequest() dto.HelpRequestDto {
	return dto.HelpRequestDto{
		UserId:      strPtr("user-1"),
		ProviderId:  strPtr("prov-1"),
		Latitude:    floatPtr(51.1),
		Longitude:   floatPtr(71.4),
		IssueType:   strPtr("flat_tire"),
		Description: strPtr("rear left tire"),
	}
}

func newRequestServiceForTest(t *testing.T, requests ...model.Request) (*fakeRequestRepo, *fakeProviderRepo, *fakeNotifier, *RequestService) {
	t.Helper()
	requestRepo := newFakeRequestRepo(requests...)
	providerRepo := newFakeProviderRepo(model.Provider{ID: "prov-1", UserID: "prov-user-1", Name: "Towing Co"})
	notifier := &fakeNotifier{}
	svc := NewRequestService(context.Background(), testLogger(t), requestRepo, providerRepo, notifier).(*RequestService)
	return requestRepo, providerRepo, notifier, svc
}

func pendingRequest(id string) model.Request {
	return model.Request{
		ID:         id,
		UserID:     "user-1",
		ProviderID: "prov-1",
		Latitude:   51.1,
		Longitude:  71.4,
		IssueType:  "flat_tire",
		Status:     model.StatusPending,
	}
}

func TestCreateRequest(t *testing.T) {
	requestRepo, _, notifier, svc := newRequestServiceForTest(t)

	resp, err := svc.CreateRequest(helpRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestId)
	assert.Regexp(t, `^REQ_\d{8}_[0-9A-F]{8}$`, resp.RequestNumber)
	assert.Equal(t, model.StatusPending, resp.Status)
	assert.Equal(t, "prov-1", resp.ProviderId)

	stored, err := requestRepo.FindByID(context.Background(), resp.RequestId)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, "rear left tire", stored.Description)

	events := notifier.sent()
	require.Len(t, events, 1)
	assert.Equal(t, "provider", events[0].kind)
	assert.Equal(t, "prov-1", events[0].id)
	assert.Equal(t, websocketdto.EventNewRequest, events[0].event)
}

func TestCreateRequestValidation(t *testing.T) {
	_, _, notifier, svc := newRequestServiceForTest(t)

	cases := map[string]func(*dto.HelpRequestDto){
		"missing user":       func(r *dto.HelpRequestDto) { r.UserId = nil },
		"missing provider":   func(r *dto.HelpRequestDto) { r.ProviderId = nil },
		"missing latitude":   func(r *dto.HelpRequestDto) { r.Latitude = nil },
		"latitude too big":   func(r *dto.HelpRequestDto) { r.Latitude = floatPtr(90.5) },
		"longitude too big":  func(r *dto.HelpRequestDto) { r.Longitude = floatPtr(-180.5) },
		"missing issue type": func(r *dto.HelpRequestDto) { r.IssueType = strPtr("") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := helpRequest()
			mutate(&req)

			_, err := svc.CreateRequest(req)
			var validationErr *myerrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	assert.Empty(t, notifier.sent(), "nothing is announced for rejected input")
}

func TestCreateRequestUnknownProvider(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t)

	req := helpRequest()
	req.ProviderId = strPtr("prov-ghost")

	_, err := svc.CreateRequest(req)
	var notFoundErr *myerrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestAccept(t *testing.T) {
	requestRepo, _, notifier, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	resp, err := svc.Accept("req-1", "prov-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, resp.Status)

	stored, _ := requestRepo.FindByID(context.Background(), "req-1")
	assert.Equal(t, model.StatusAccepted, stored.Status)
	assert.NotNil(t, stored.AssignedAt)

	events := notifier.sent()
	require.Len(t, events, 1)
	assert.Equal(t, "user", events[0].kind)
	assert.Equal(t, "user-1", events[0].id)
	assert.Equal(t, websocketdto.EventRequestAccepted, events[0].event)
}

func TestAcceptTwiceConflicts(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Accept("req-1", "prov-1")
	require.NoError(t, err)

	_, err = svc.Accept("req-1", "prov-1")
	var conflictErr *myerrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, model.StatusAccepted, conflictErr.CurrentStatus)
	assert.Contains(t, err.Error(), "accepted")
}

func TestAcceptWrongProvider(t *testing.T) {
	requestRepo, _, notifier, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Accept("req-1", "prov-other")
	var authErr *myerrors.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	stored, _ := requestRepo.FindByID(context.Background(), "req-1")
	assert.Equal(t, model.StatusPending, stored.Status, "a rejected actor changes nothing")
	assert.Empty(t, notifier.sent())
}

func TestAcceptUnknownRequest(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t)

	_, err := svc.Accept("req-ghost", "prov-1")
	var notFoundErr *myerrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDeclineWithReason(t *testing.T) {
	requestRepo, _, notifier, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	resp, err := svc.Decline("req-1", "prov-1", dto.DeclineRequestDto{Reason: strPtr("  too far away  ")})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeclined, resp.Status)

	stored, _ := requestRepo.FindByID(context.Background(), "req-1")
	assert.Equal(t, "too far away", stored.Reason)
	assert.NotNil(t, stored.DeclinedAt)

	events := notifier.sent()
	require.Len(t, events, 1)
	assert.Equal(t, websocketdto.EventRequestDeclined, events[0].event)
	assert.Equal(t, "too far away", events[0].payload.Reason)
}

func TestDeclineDefaultsReason(t *testing.T) {
	requestRepo, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Decline("req-1", "prov-1", dto.DeclineRequestDto{})
	require.NoError(t, err)

	stored, _ := requestRepo.FindByID(context.Background(), "req-1")
	assert.Equal(t, model.DefaultDeclineReason, stored.Reason)
}

func TestDeclineAcceptedRequestConflicts(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Accept("req-1", "prov-1")
	require.NoError(t, err)

	_, err = svc.Decline("req-1", "prov-1", dto.DeclineRequestDto{})
	var conflictErr *myerrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, model.StatusAccepted, conflictErr.CurrentStatus)
}

func TestCompleteFromPending(t *testing.T) {
	requestRepo, _, notifier, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	resp, err := svc.Complete("req-1", "prov-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, resp.Status)

	stored, _ := requestRepo.FindByID(context.Background(), "req-1")
	assert.NotNil(t, stored.CompletedAt)

	events := notifier.sent()
	require.Len(t, events, 1)
	assert.Equal(t, websocketdto.EventRequestCompleted, events[0].event)
}

func TestCompleteFromAccepted(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Accept("req-1", "prov-1")
	require.NoError(t, err)

	resp, err := svc.Complete("req-1", "prov-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, resp.Status)
}

func TestCancel(t *testing.T) {
	_, _, notifier, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	resp, err := svc.Cancel("req-1", "user-1", dto.CancelRequestDto{Reason: strPtr("found help nearby")})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, resp.Status)

	events := notifier.sent()
	require.Len(t, events, 1)
	assert.Equal(t, "provider", events[0].kind)
	assert.Equal(t, websocketdto.EventRequestCancelled, events[0].event)
	assert.Equal(t, "found help nearby", events[0].payload.Reason)
}

func TestCancelWrongUser(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	_, err := svc.Cancel("req-1", "user-other", dto.CancelRequestDto{})
	var authErr *myerrors.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestTerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []string{model.StatusCompleted, model.StatusDeclined, model.StatusCancelled} {
		t.Run(terminal, func(t *testing.T) {
			done := pendingRequest("req-1")
			done.Status = terminal
			_, _, notifier, svc := newRequestServiceForTest(t, done)

			var conflictErr *myerrors.ConflictError

			_, err := svc.Accept("req-1", "prov-1")
			require.ErrorAs(t, err, &conflictErr)
			assert.Equal(t, terminal, conflictErr.CurrentStatus)

			_, err = svc.Complete("req-1", "prov-1")
			require.ErrorAs(t, err, &conflictErr)

			_, err = svc.Cancel("req-1", "user-1", dto.CancelRequestDto{})
			require.ErrorAs(t, err, &conflictErr)

			assert.Empty(t, notifier.sent())
		})
	}
}

// Two actors race on the same pending request. Exactly one transition
// may win and the loser has to see the winner's status in its conflict.
func TestConcurrentAcceptAndDecline(t *testing.T) {
	_, _, _, svc := newRequestServiceForTest(t, pendingRequest("req-1"))

	var wg sync.WaitGroup
	var acceptErr, declineErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, acceptErr = svc.Accept("req-1", "prov-1")
	}()
	go func() {
		defer wg.Done()
		_, declineErr = svc.Decline("req-1", "prov-1", dto.DeclineRequestDto{})
	}()
	wg.Wait()

	wins := 0
	var conflictErr *myerrors.ConflictError
	if acceptErr == nil {
		wins++
		require.ErrorAs(t, declineErr, &conflictErr)
		assert.Equal(t, model.StatusAccepted, conflictErr.CurrentStatus)
	}
	if declineErr == nil {
		wins++
		require.ErrorAs(t, acceptErr, &conflictErr)
		assert.Equal(t, model.StatusDeclined, conflictErr.CurrentStatus)
	}
	assert.Equal(t, 1, wins, "exactly one transition wins the race")
}

func TestUserHistory(t *testing.T) {
	first := pendingRequest("req-1")
	second := pendingRequest("req-2")
	second.Status = model.StatusCompleted
	other := pendingRequest("req-3")
	other.UserID = "user-other"

	_, _, _, svc := newRequestServiceForTest(t, first, second, other)

	res, err := svc.UserHistory("user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	for _, r := range res.Requests {
		assert.Equal(t, "user-1", r.UserId)
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 50, normalizeLimit(0))
	assert.Equal(t, 50, normalizeLimit(-3))
	assert.Equal(t, 50, normalizeLimit(500))
	assert.Equal(t, 25, normalizeLimit(25))
}
