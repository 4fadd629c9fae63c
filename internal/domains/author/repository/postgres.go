package repository

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog-backend/internal/domains/author"
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

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entity *author.Author) (*author.Author, error) {
	const query = `
		INSERT INTO authors (id, name, avatar, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, avatar, slug, created_at, updated_at
	`

	created := &author.Author{}
	err := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Avatar,
		entity.Slug,
		entity.CreatedAt,
		entity.UpdatedAt,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Avatar,
		&created.Slug,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "authors_slug_key" {
			logger.Error("author create: duplicate slug", err)
			return nil, author.ErrDuplicateSlug
		}
		logger.Error("author create: database error", err)
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	const query = `
		SELECT id, name, avatar, slug, created_at, updated_at
		FROM authors
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var out []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Avatar, &a.Slug, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*author.Author, error) {
	const query = `
		SELECT id, name, avatar, slug, created_at, updated_at
		FROM authors
		WHERE slug = $1
	`

	a := &author.Author{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(&a.ID, &a.Name, &a.Avatar, &a.Slug, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by slug: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *author.Author) (*author.Author, error) {
	const query = `
		UPDATE authors
		SET name = $2, avatar = $3, slug = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, name, avatar, slug, created_at, updated_at
	`

	updated := &author.Author{}
	err := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Avatar,
		entity.Slug,
		entity.UpdatedAt,
	).Scan(&updated.ID, &updated.Name, &updated.Avatar, &updated.Slug, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	const query = `
		SELECT slug FROM authors
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
