// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

type Repository interface {
	CreateWithOwner(ctx context.Context, p *Project, ownerID string) error
	GetByID(ctx context.Context, id string) (*Project, error)
	GetWithRoster(ctx context.Context, id string) (*Project, []Membership, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]ProjectWithRole, error)
	UpsertMember(ctx context.Context, projectID, userID string, role Role) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

// repository holds the concrete pool rather than core.DBTX because
// CreateWithOwner opens its own transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithOwner inserts the project and its OWNER grant atomically, so a
// project can never exist without an owner.
func (r *repository) CreateWithOwner(ctx context.Context, p *Project, ownerID string) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO projects (id, name, description)
			VALUES ($1, $2, $3)
			RETURNING created_at`
		if err := tx.QueryRowxContext(ctx, query, p.ID, p.Name, p.Description).
			Scan(&p.CreatedAt); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}

		grant := `
			INSERT INTO user_project_roles (id, user_id, project_id, role)
			VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, grant,
			uuid.New().String(), ownerID, p.ID, RoleOwner,
		); err != nil {
			return fmt.Errorf("insert owner grant: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	query := `SELECT * FROM projects WHERE id = $1`

	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get project %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

func (r *repository) GetWithRoster(ctx context.Context, id string) (*Project, []Membership, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	roster := []Membership{}
	query := `SELECT * FROM user_project_roles WHERE project_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &roster, query, id); err != nil {
		return nil, nil, fmt.Errorf("get roster %s: %w", id, err)
	}
	return p, roster, nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	query := `UPDATE projects SET name = $2, description = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update project %s: %w", p.ID, core.ErrNotFound)
	}
	return nil
}

// Delete removes the project; role rows follow through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete project %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]ProjectWithRole, error) {
	projects := []ProjectWithRole{}
	query := `
		SELECT p.id, p.name, p.description, p.created_at, upr.role
		FROM projects p
		JOIN user_project_roles upr ON upr.project_id = p.id
		WHERE upr.user_id = $1
		ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("list projects for user: %w", err)
	}
	return projects, nil
}

func (r *repository) UpsertMember(ctx context.Context, projectID, userID string, role Role) error {
	query := `
		INSERT INTO user_project_roles (id, user_id, project_id, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, project_id) DO UPDATE SET role = EXCLUDED.role`

	if _, err := r.db.ExecContext(ctx, query,
		uuid.New().String(), userID, projectID, role,
	); err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func (r *repository) RemoveMember(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM user_project_roles WHERE project_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("remove member: %w", core.ErrNotFound)
	}
	return nil
}
