package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entity *Category) (*Category, error)

	GetAll(ctx context.Context) ([]Category, error)

	// GetBySlug trả về ErrCategoryNotFound khi không có row nào khớp
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	Update(ctx context.Context, entity *Category) (*Category, error)

	// NextAvailableSlug trả về base nếu còn trống, ngược lại append
	// counter nhỏ nhất còn trống: base-2, base-3, ...
	// excludeID bỏ qua chính entity đang update (giữ nguyên slug cũ
	// không bị tính là collision).
	NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error)
}
