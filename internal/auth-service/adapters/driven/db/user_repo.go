package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"road-assist/internal/auth-service/core/domain/models"
	"road-assist/internal/auth-service/core/myerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepo struct {
	ctx context.Context
	db  *DB
}

func NewUserRepo(ctx context.Context, db *DB) *UserRepo {
	return &UserRepo{
		ctx: ctx,
		db:  db,
	}
}

func (ur *UserRepo) Create(ctx context.Context, user models.User, profile *models.ProviderProfile) (string, error) {
	tx, err := ur.db.conn.Begin(ctx)
	if err != nil {
		if err := ur.db.IsAlive(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	q := `INSERT INTO users (
	name, email, phone, password, role
	) VALUES ($1, $2, $3, $4, $5) RETURNING user_id;`
	id := ""
	row := tx.QueryRow(ctx, q, user.Name, user.Email, user.Phone, user.Password, user.Role)
	if err = row.Scan(&id); err != nil {
		// Postgres unique violation means the email is taken
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return "", myerrors.ErrEmailRegistered
			}
		}
		return "", fmt.Errorf("failed to insert user: %v", err)
	}

	if profile != nil {
		types := profile.ServiceTypes
		if types == nil {
			types = []string{}
		}
		var encoded []byte
		encoded, err = json.Marshal(types)
		if err != nil {
			return "", fmt.Errorf("failed to encode service types: %v", err)
		}

		q = `INSERT INTO service_providers (
		user_id, approval_status, is_available, coverage_radius_km, service_types
		) VALUES ($1, 'pending', FALSE, $2, $3);`
		if _, err = tx.Exec(ctx, q, id, profile.CoverageRadiusKm, string(encoded)); err != nil {
			return "", fmt.Errorf("failed to insert provider profile: %v", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %v", err)
	}

	return id, nil
}

func (ur *UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ur.db.IsAlive(); err != nil {
		return models.User{}, err
	}

	q := `
		SELECT
			u.user_id,
			u.name,
			u.email,
			u.phone,
			u.password,
			u.role,
			u.created_at
		FROM
			users u
		WHERE
			u.email = $1
	`

	var u models.User
	err := ur.db.conn.QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Password,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUnknownEmail
		}
		return models.User{}, err
	}

	return u, nil
}
