package category

import "context"

type Service interface {
	// Create tạo category mới với slug sinh từ name
	Create(ctx context.Context, req *CreateCategoryReq) (*CategoryResp, error)

	// List trả về toàn bộ categories, không filter, không paginate
	List(ctx context.Context) ([]CategoryResp, error)

	// GetBySlug trả về ErrCategoryNotFound nếu slug không khớp
	GetBySlug(ctx context.Context, slug string) (*CategoryResp, error)

	// UpdateBySlug là partial merge; name đổi thì slug sinh lại
	UpdateBySlug(ctx context.Context, slug string, req *UpdateCategoryReq) (*CategoryResp, error)
}
