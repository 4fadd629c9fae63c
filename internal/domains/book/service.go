package book

import "context"

type Service interface {
	// Create validate refs rồi mới persist; files upload theo thứ tự
	// gửi lên thành mảng images
	Create(ctx context.Context, req *CreateBookReq) (*BookResp, error)

	// List trả về mọi book với categories/authors populate {id, name}
	List(ctx context.Context) ([]BookListItemResp, error)

	// GetBySlug populate thêm avatar cho authors
	GetBySlug(ctx context.Context, slug string) (*BookDetailResp, error)

	// UpdateBySlug là partial merge + image replace protocol
	// (xem ApplyImageReplacements)
	UpdateBySlug(ctx context.Context, slug string, req *UpdateBookReq) (*BookResp, error)

	// DeleteBySlug xóa document; media blobs được dọn best-effort,
	// lỗi dọn chỉ log chứ không fail request
	DeleteBySlug(ctx context.Context, slug string) error
}
