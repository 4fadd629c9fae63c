package book

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRef là projection {id, name} dùng để populate.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// AuthorRef thêm avatar cho book detail.
type AuthorRef struct {
	ID     uuid.UUID
	Name   string
	Avatar string
}

type Repository interface {
	// Create chạy trong một transaction: đếm refs tồn tại rồi mới
	// insert, trả về ErrCategoryRefMissing / ErrAuthorRefMissing khi
	// thiếu. Check và write atomic nên không có race với delete.
	Create(ctx context.Context, entity *Book) (*Book, error)

	GetAll(ctx context.Context) ([]Book, error)

	// GetBySlug trả về ErrBookNotFound khi không có row nào khớp
	GetBySlug(ctx context.Context, slug string) (*Book, error)

	// Update validate refs trong cùng transaction với write,
	// giống Create
	Update(ctx context.Context, entity *Book) (*Book, error)

	// DeleteBySlug xóa và trả về document vừa xóa (caller cần ID
	// để dọn media blobs)
	DeleteBySlug(ctx context.Context, slug string) (*Book, error)

	// CategoryRefs trả về map id -> ref cho các id tồn tại;
	// id không tồn tại vắng mặt trong map (weak ref, không lỗi)
	CategoryRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]CategoryRef, error)

	AuthorRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]AuthorRef, error)

	// NextAvailableSlug trả về base nếu còn trống, ngược lại append
	// counter nhỏ nhất còn trống: base-2, base-3, ...
	NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error)
}
