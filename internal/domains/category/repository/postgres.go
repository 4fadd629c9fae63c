package repository

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, slug, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created := &category.Category{}
	err := row.Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "categories_slug_key" {
			logger.Error("category create: duplicate slug", err)
			return nil, category.ErrDuplicateSlug
		}
		logger.Error("category create: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		WHERE slug = $1
	`

	c := &category.Category{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		UPDATE categories
		SET name = $2, slug = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, name, slug, created_at, updated_at
	`

	updated := &category.Category{}
	err := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.UpdatedAt,
	).Scan(&updated.ID, &updated.Name, &updated.Slug, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	const query = `
		SELECT slug FROM categories
		WHERE (slug = $1 OR slug LIKE $1 || '-%') AND id <> $2
	`

	rows, err := r.pool.Query(ctx, query, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to query slugs: %w", err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", fmt.Errorf("failed to scan slug: %w", err)
		}
		taken = append(taken, s)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return utils.ResolveSlugCollision(base, taken), nil
}
