// AngelaMos | 2026
// repository.go

package reset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, t *ResetToken) error
	FindByToken(ctx context.Context, token string) (*ResetToken, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *ResetToken) error {
	query := `
		INSERT INTO reset_tokens (id, user_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Token, t.CreatedAt, t.ExpiresAt,
	); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

func (r *repository) FindByToken(ctx context.Context, token string) (*ResetToken, error) {
	var t ResetToken
	query := `
		SELECT rt.id, rt.user_id, rt.token, rt.created_at, rt.expires_at,
		       u.email AS user_email, u.firstname AS user_firstname
		FROM reset_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1`

	if err := r.db.GetContext(ctx, &t, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return &t, nil
}

// DeleteByToken reports how many rows went away so callers can tell a
// consumed token from one that was already gone.
func (r *repository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE token = $1`, token)
	if err != nil {
		return 0, fmt.Errorf("delete reset token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete reset token: %w", err)
	}
	return rows, nil
}

func (r *repository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return rows, nil
}
