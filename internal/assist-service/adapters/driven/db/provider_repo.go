package db

import (
	"context"
	"errors"
	"fmt"

	"road-assist/internal/assist-service/core/domain/model"
	"road-assist/internal/assist-service/core/myerrors"
	"road-assist/internal/assist-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type ProviderRepo struct {
	db *DB
}

func NewProviderRepo(db *DB) ports.IProviderRepo {
	return &ProviderRepo{
		db: db,
	}
}

const providerColumns = `
	sp.provider_id,
	sp.user_id,
	u.name,
	sp.latitude,
	sp.longitude,
	sp.is_available,
	sp.approval_status,
	sp.coverage_radius_km,
	sp.service_types,
	sp.created_at,
	sp.updated_at,
	sp.last_location_at`

func (pr *ProviderRepo) FindMatchable(ctx context.Context) ([]model.Provider, error) {
	q := `
	SELECT ` + providerColumns + `
	FROM service_providers sp
	JOIN users u ON u.user_id = sp.user_id
	WHERE sp.approval_status = 'approved'
	  AND sp.is_available = TRUE
	  AND sp.latitude IS NOT NULL
	  AND sp.longitude IS NOT NULL`

	rows, err := pr.db.conn.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (pr *ProviderRepo) FindByID(ctx context.Context, providerID string) (model.Provider, error) {
	q := `
	SELECT ` + providerColumns + `
	FROM service_providers sp
	JOIN users u ON u.user_id = sp.user_id
	WHERE sp.provider_id = $1`

	rows, err := pr.db.conn.Query(ctx, q, providerID)
	if err != nil {
		return model.Provider{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Provider{}, err
		}
		return model.Provider{}, myerrors.NotFound("provider", providerID)
	}
	return scanProvider(rows)
}

func (pr *ProviderRepo) FindByUserID(ctx context.Context, userID string) (model.Provider, error) {
	q := `
	SELECT ` + providerColumns + `
	FROM service_providers sp
	JOIN users u ON u.user_id = sp.user_id
	WHERE sp.user_id = $1`

	rows, err := pr.db.conn.Query(ctx, q, userID)
	if err != nil {
		return model.Provider{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Provider{}, err
		}
		return model.Provider{}, myerrors.NotFound("provider for user", userID)
	}
	return scanProvider(rows)
}

func (pr *ProviderRepo) SetAvailability(ctx context.Context, providerID string, available bool) error {
	q := `UPDATE service_providers SET is_available = $1, updated_at = NOW() WHERE provider_id = $2`

	tag, err := pr.db.conn.Exec(ctx, q, available, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.NotFound("provider", providerID)
	}
	return nil
}

func (pr *ProviderRepo) UpdateLocation(ctx context.Context, providerID string, lat, lon float64) error {
	q := `
	UPDATE service_providers
	SET latitude = $1, longitude = $2, last_location_at = NOW(), updated_at = NOW()
	WHERE provider_id = $3`

	tag, err := pr.db.conn.Exec(ctx, q, lat, lon, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.NotFound("provider", providerID)
	}
	return nil
}

func (pr *ProviderRepo) Stats(ctx context.Context, providerID string) (model.ProviderStats, error) {
	q := `
	SELECT
		COUNT(CASE WHEN status = 'completed' THEN 1 END) AS total_completed,
		COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_requests,
		COUNT(CASE WHEN status = 'accepted' THEN 1 END) AS active_requests
	FROM service_requests
	WHERE provider_id = $1`

	stats := model.ProviderStats{}
	row := pr.db.conn.QueryRow(ctx, q, providerID)
	if err := row.Scan(&stats.TotalCompleted, &stats.PendingRequests, &stats.ActiveRequests); err != nil {
		return model.ProviderStats{}, err
	}
	return stats, nil
}

// scanProvider decodes one provider row. service_types crosses the
// storage boundary here and nowhere else.
func scanProvider(rows pgx.Rows) (model.Provider, error) {
	var (
		p        model.Provider
		rawTypes *string
	)
	err := rows.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Latitude,
		&p.Longitude,
		&p.IsAvailable,
		&p.ApprovalStatus,
		&p.CoverageRadiusKm,
		&rawTypes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.LastLocationAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Provider{}, err
		}
		return model.Provider{}, fmt.Errorf("scan provider: %w", err)
	}

	raw := ""
	if rawTypes != nil {
		raw = *rawTypes
	}
	p.ServiceTypes, err = model.DecodeServiceTypes(raw)
	if err != nil {
		return model.Provider{}, fmt.Errorf("decode service_types for provider %s: %w", p.ID, err)
	}
	return p, nil
}
