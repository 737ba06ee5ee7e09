package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"road-assist/internal/assist-service/core/domain/model"
	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"
	"road-assist/internal/assist-service/core/myerrors"
	"road-assist/internal/mylogger"

	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) mylogger.Logger {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)
	return log
}

type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]model.Provider
	findErr   error
}

func newFakeProviderRepo(providers ...model.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{providers: make(map[string]model.Provider)}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	return r
}

func (r *fakeProviderRepo) FindMatchable(ctx context.Context) ([]model.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]model.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProviderRepo) FindByID(ctx context.Context, providerID string) (model.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return model.Provider{}, myerrors.NotFound("provider", providerID)
	}
	return p, nil
}

func (r *fakeProviderRepo) FindByUserID(ctx context.Context, userID string) (model.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.UserID == userID {
			return p, nil
		}
	}
	return model.Provider{}, myerrors.NotFound("provider for user", userID)
}

func (r *fakeProviderRepo) SetAvailability(ctx context.Context, providerID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return myerrors.NotFound("provider", providerID)
	}
	p.IsAvailable = available
	r.providers[providerID] = p
	return nil
}

func (r *fakeProviderRepo) UpdateLocation(ctx context.Context, providerID string, lat, lon float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return myerrors.NotFound("provider", providerID)
	}
	now := time.Now()
	p.Latitude, p.Longitude, p.LastLocationAt = &lat, &lon, &now
	r.providers[providerID] = p
	return nil
}

func (r *fakeProviderRepo) Stats(ctx context.Context, providerID string) (model.ProviderStats, error) {
	return model.ProviderStats{}, nil
}

// fakeRequestRepo mimics the conditional-update semantics of the real
// repository: the transition applies atomically only when the current
// status is one of `from`, otherwise myerrors.ErrNoRowsUpdated.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]model.Request
	nextID   int
}

func newFakeRequestRepo(requests ...model.Request) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[string]model.Request)}
	for _, m := range requests {
		r.requests[m.ID] = m
	}
	return r
}

func (r *fakeRequestRepo) Create(ctx context.Context, m model.Request) (model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = fmt.Sprintf("req-%d", r.nextID)
	m.CreatedAt = time.Now()
	r.requests[m.ID] = m
	return m, nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, requestID string) (model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.requests[requestID]
	if !ok {
		return model.Request{}, myerrors.NotFound("request", requestID)
	}
	return m, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, requestID string, from []string, to, reason string) (model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.requests[requestID]
	if !ok {
		return model.Request{}, myerrors.ErrNoRowsUpdated
	}
	eligible := false
	for _, s := range from {
		if m.Status == s {
			eligible = true
			break
		}
	}
	if !eligible {
		return model.Request{}, myerrors.ErrNoRowsUpdated
	}

	m.Status = to
	if reason != "" {
		m.Reason = reason
	}
	now := time.Now()
	switch to {
	case model.StatusAccepted:
		m.AssignedAt = &now
	case model.StatusDeclined:
		m.DeclinedAt = &now
	case model.StatusCompleted:
		m.CompletedAt = &now
	case model.StatusCancelled:
		m.CancelledAt = &now
	}
	r.requests[requestID] = m
	return m, nil
}

func (r *fakeRequestRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Request, 0)
	for _, m := range r.requests {
		if m.UserID == userID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByProvider(ctx context.Context, providerID, status string, limit int) ([]model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Request, 0)
	for _, m := range r.requests {
		if m.ProviderID != providerID || len(out) >= limit {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type notifiedEvent struct {
	kind    string
	id      string
	event   string
	payload websocketdto.RequestEventDto
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
}

func (n *fakeNotifier) NotifyUser(userID, event string, payload websocketdto.RequestEventDto) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{kind: "user", id: userID, event: event, payload: payload})
}

func (n *fakeNotifier) NotifyProvider(providerID, event string, payload websocketdto.RequestEventDto) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{kind: "provider", id: providerID, event: event, payload: payload})
}

func (n *fakeNotifier) sent() []notifiedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notifiedEvent, len(n.events))
	copy(out, n.events)
	return out
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return raw, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = val
}
