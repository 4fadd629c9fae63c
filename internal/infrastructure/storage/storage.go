package storage

import "context"

// Store là contract của media host: nhận blob, trả về durable URL.
// Services phụ thuộc interface này để test được với fake in-memory.
type Store interface {
	// Upload đẩy blob lên media host, trả về public URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete xóa một object theo key
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix xóa mọi object có prefix (vd: books/<id>/)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
