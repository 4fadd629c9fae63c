package author

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entity *Author) (*Author, error)

	GetAll(ctx context.Context) ([]Author, error)

	// GetBySlug trả về ErrAuthorNotFound khi không có row nào khớp
	GetBySlug(ctx context.Context, slug string) (*Author, error)

	Update(ctx context.Context, entity *Author) (*Author, error)

	// NextAvailableSlug trả về base nếu còn trống, ngược lại append
	// counter nhỏ nhất còn trống: base-2, base-3, ...
	NextAvailableSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error)
}
