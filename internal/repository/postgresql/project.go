package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, organization_id, name, address, start_date, end_date, status, is_default, created_at, updated_at`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.Name, &p.Address, &p.StartDate, &p.EndDate,
		&p.Status, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *projectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO projects (id, organization_id, name, address, start_date, end_date, status, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	created, err := scanProject(q.QueryRow(ctx, query,
		p.ID, p.OrganizationID, p.Name, p.Address, p.StartDate, p.EndDate, p.Status, p.IsDefault,
	))
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string, organizationID string) (project.Project, error) {
	q := database.QuerierFromContext(ctx, r.db)

	p, err := scanProject(q.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) GetDefault(ctx context.Context, organizationID string) (project.Project, error) {
	q := database.QuerierFromContext(ctx, r.db)

	p, err := scanProject(q.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE organization_id = $1 AND is_default = TRUE LIMIT 1`,
		organizationID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get default project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) GetByOrganizationID(ctx context.Context, organizationID string) ([]project.Project, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE organization_id = $1 ORDER BY is_default DESC, name`,
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p project.Project) (project.Project, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE projects SET
			name = $3, address = $4, start_date = $5, end_date = $6,
			status = $7, is_default = $8, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING ` + projectColumns

	updated, err := scanProject(q.QueryRow(ctx, query,
		p.ID, p.OrganizationID, p.Name, p.Address, p.StartDate, p.EndDate, p.Status, p.IsDefault,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}
