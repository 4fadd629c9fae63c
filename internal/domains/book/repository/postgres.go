package repository

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/database"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, name, categories, authors, images, release, description, slug, created_at, updated_at"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (*book.Book, error) {
	b := &book.Book{}
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Categories,
		&b.Authors,
		&b.Images,
		&b.Release,
		&b.Description,
		&b.Slug,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// validateRefs đếm số id tồn tại trong bảng tham chiếu, so với số id
// request gửi lên. Chạy trong cùng transaction với write nên không có
// race "validate xong bị xóa trước khi save".
func validateRefs(ctx context.Context, tx pgx.Tx, entity *book.Book) error {
	if len(entity.Categories) > 0 {
		var count int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM categories WHERE id = ANY($1::uuid[])`,
			entity.Categories,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to validate categories: %w", err)
		}
		if count != len(entity.Categories) {
			return book.ErrCategoryRefMissing
		}
	}

	if len(entity.Authors) > 0 {
		var count int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM authors WHERE id = ANY($1::uuid[])`,
			entity.Authors,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to validate authors: %w", err)
		}
		if count != len(entity.Authors) {
			return book.ErrAuthorRefMissing
		}
	}

	return nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *book.Book) (*book.Book, error) {
	const query = `
		INSERT INTO books (id, name, categories, authors, images, release, description, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + bookColumns

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*book.Book, error) {
		if err := validateRefs(ctx, tx, entity); err != nil {
			return nil, err
		}

		created, err := scanBook(tx.QueryRow(ctx, query,
			entity.ID,
			entity.Name,
			entity.Categories,
			entity.Authors,
			entity.Images,
			entity.Release,
			entity.Description,
			entity.Slug,
			entity.CreatedAt,
			entity.UpdatedAt,
		))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "books_slug_key" {
				logger.Error("book create: duplicate slug", err)
				return nil, book.ErrDuplicateSlug
			}
			logger.Error("book create: database error", err)
			return nil, fmt.Errorf("failed to create book: %w", err)
		}

		return created, nil
	})
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var out []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		out = append(out, *b)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*book.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE slug = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by slug: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *book.Book) (*book.Book, error) {
	const query = `
		UPDATE books
		SET name = $2, categories = $3, authors = $4, images = $5,
		    release = $6, description = $7, slug = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + bookColumns

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*book.Book, error) {
		if err := validateRefs(ctx, tx, entity); err != nil {
			return nil, err
		}

		updated, err := scanBook(tx.QueryRow(ctx, query,
			entity.ID,
			entity.Name,
			entity.Categories,
			entity.Authors,
			entity.Images,
			entity.Release,
			entity.Description,
			entity.Slug,
			entity.UpdatedAt,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, book.ErrBookNotFound
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "books_slug_key" {
				return nil, book.ErrDuplicateSlug
			}
			logger.Error("book update: database error", err)
			return nil, fmt.Errorf("failed to update book: %w", err)
		}

		return updated, nil
	})
}

func (r *postgresRepository) DeleteBySlug(ctx context.Context, slug string) (*book.Book, error) {
	const query = `DELETE FROM books WHERE slug = $1 RETURNING ` + bookColumns

	deleted, err := scanBook(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	return deleted, nil
}

func (r *postgresRepository) CategoryRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]book.CategoryRef, error) {
	refs := make(map[uuid.UUID]book.CategoryRef)
	if len(ids) == 0 {
		return refs, nil
	}

	const query = `SELECT id, name FROM categories WHERE id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load category refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref book.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category ref: %w", err)
		}
		refs[ref.ID] = ref
	}

	return refs, rows.Err()
}

func (r *postgresRepository) AuthorRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]book.AuthorRef, error) {
	refs := make(map[uuid.UUID]book.AuthorRef)
	if len(ids) == 0 {
		return refs, nil
	}

	const query = `SELECT id, name, avatar FROM authors WHERE id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load author refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref book.AuthorRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan author ref: %w", err)
		}
		refs[ref.ID] = ref
	}

	return refs, rows.Err()
}

func (r *postgresRepository) NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	const query = `
		SELECT slug FROM books
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
