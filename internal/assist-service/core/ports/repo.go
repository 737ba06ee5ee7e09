package ports

import (
	"context"

	"road-assist/internal/assist-service/core/domain/model"
)

type IProviderRepo interface {
	// FindMatchable returns providers that are approved, available and
	// have a known location.
	FindMatchable(ctx context.Context) ([]model.Provider, error)
	FindByID(ctx context.Context, providerID string) (model.Provider, error)
	FindByUserID(ctx context.Context, userID string) (model.Provider, error)
	SetAvailability(ctx context.Context, providerID string, available bool) error
	UpdateLocation(ctx context.Context, providerID string, lat, lon float64) error
	Stats(ctx context.Context, providerID string) (model.ProviderStats, error)
}

type IRequestRepo interface {
	Create(ctx context.Context, m model.Request) (model.Request, error)
	FindByID(ctx context.Context, requestID string) (model.Request, error)

	// UpdateStatus applies a transition as a single conditional update:
	// the row moves to `to` (stamping the matching timestamp column and
	// storing reason when given) only if its status is one of `from`.
	// When no row matches it returns myerrors.ErrNoRowsUpdated and the
	// caller re-reads for the authoritative status.
	UpdateStatus(ctx context.Context, requestID string, from []string, to, reason string) (model.Request, error)

	ListByUser(ctx context.Context, userID string, limit int) ([]model.Request, error)
	ListByProvider(ctx context.Context, providerID, status string, limit int) ([]model.Request, error)
}
