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

type RequestRepo struct {
	db *DB
}

func NewRequestRepo(db *DB) ports.IRequestRepo {
	return &RequestRepo{
		db: db,
	}
}

const requestColumns = `
	request_id,
	request_number,
	user_id,
	provider_id,
	latitude,
	longitude,
	issue_type,
	description,
	status,
	reason,
	created_at,
	assigned_at,
	completed_at,
	cancelled_at,
	declined_at`

func (rr *RequestRepo) Create(ctx context.Context, m model.Request) (model.Request, error) {
	q := `
	INSERT INTO service_requests (
		request_number,
		user_id,
		provider_id,
		latitude,
		longitude,
		issue_type,
		description,
		status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + requestColumns

	rows, err := rr.db.conn.Query(ctx, q,
		m.RequestNumber,
		m.UserID,
		m.ProviderID,
		m.Latitude,
		m.Longitude,
		m.IssueType,
		m.Description,
		m.Status,
	)
	if err != nil {
		return model.Request{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Request{}, err
		}
		return model.Request{}, fmt.Errorf("insert returned no row")
	}
	return scanRequest(rows)
}

func (rr *RequestRepo) FindByID(ctx context.Context, requestID string) (model.Request, error) {
	q := `SELECT ` + requestColumns + ` FROM service_requests WHERE request_id = $1`

	rows, err := rr.db.conn.Query(ctx, q, requestID)
	if err != nil {
		return model.Request{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Request{}, err
		}
		return model.Request{}, myerrors.NotFound("request", requestID)
	}
	return scanRequest(rows)
}

// UpdateStatus is the single write path for transitions. The expected
// statuses ride in the WHERE clause so a lost race updates zero rows
// instead of overwriting a concurrent transition.
func (rr *RequestRepo) UpdateStatus(ctx context.Context, requestID string, from []string, to, reason string) (model.Request, error) {
	stampCol, err := stampColumn(to)
	if err != nil {
		return model.Request{}, err
	}

	q := fmt.Sprintf(`
	UPDATE service_requests
	SET status = $1,
	    %s = NOW(),
	    reason = CASE WHEN $2 <> '' THEN $2 ELSE reason END
	WHERE request_id = $3 AND status = ANY($4)
	RETURNING `+requestColumns, stampCol)

	rows, err := rr.db.conn.Query(ctx, q, to, reason, requestID, from)
	if err != nil {
		return model.Request{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Request{}, err
		}
		return model.Request{}, myerrors.ErrNoRowsUpdated
	}
	return scanRequest(rows)
}

func (rr *RequestRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Request, error) {
	q := `
	SELECT ` + requestColumns + `
	FROM service_requests
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2`

	return rr.list(ctx, q, userID, limit)
}

func (rr *RequestRepo) ListByProvider(ctx context.Context, providerID, status string, limit int) ([]model.Request, error) {
	if status != "" {
		q := `
		SELECT ` + requestColumns + `
		FROM service_requests
		WHERE provider_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3`
		return rr.list(ctx, q, providerID, status, limit)
	}

	q := `
	SELECT ` + requestColumns + `
	FROM service_requests
	WHERE provider_id = $1
	ORDER BY created_at DESC
	LIMIT $2`
	return rr.list(ctx, q, providerID, limit)
}

func (rr *RequestRepo) list(ctx context.Context, q string, args ...any) ([]model.Request, error) {
	rows, err := rr.db.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, m)
	}
	return requests, rows.Err()
}

func stampColumn(to string) (string, error) {
	switch to {
	case model.StatusAccepted:
		return "assigned_at", nil
	case model.StatusDeclined:
		return "declined_at", nil
	case model.StatusCompleted:
		return "completed_at", nil
	case model.StatusCancelled:
		return "cancelled_at", nil
	}
	return "", fmt.Errorf("no timestamp column for status %q", to)
}

func scanRequest(rows pgx.Rows) (model.Request, error) {
	var m model.Request
	err := rows.Scan(
		&m.ID,
		&m.RequestNumber,
		&m.UserID,
		&m.ProviderID,
		&m.Latitude,
		&m.Longitude,
		&m.IssueType,
		&m.Description,
		&m.Status,
		&m.Reason,
		&m.CreatedAt,
		&m.AssignedAt,
		&m.CompletedAt,
		&m.CancelledAt,
		&m.DeclinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Request{}, err
		}
		return model.Request{}, fmt.Errorf("scan request: %w", err)
	}
	return m, nil
}
