package author

import "context"

type Service interface {
	// Create tạo author mới; avatar (nếu có) upload lên media store
	// trước, URL trả về gán vào entity rồi mới persist
	Create(ctx context.Context, req *CreateAuthorReq) (*AuthorResp, error)

	List(ctx context.Context) ([]AuthorResp, error)

	GetBySlug(ctx context.Context, slug string) (*AuthorResp, error)

	// UpdateBySlug là partial merge; name đổi thì slug sinh lại,
	// avatar mới (nếu có) ghi đè avatar cũ
	UpdateBySlug(ctx context.Context, slug string, req *UpdateAuthorReq) (*AuthorResp, error)
}
