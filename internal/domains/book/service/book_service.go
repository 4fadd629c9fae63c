package service

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

type bookService struct {
	repo      book.Repository
	store     storage.Store
	validator *storage.ImageValidator
}

func NewBookService(repo book.Repository, store storage.Store) book.Service {
	return &bookService{
		repo:      repo,
		store:     store,
		validator: storage.NewImageValidator(),
	}
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookReq) (*book.BookResp, error) {
	if err := req.Validate(); err != nil {
		return nil, book.ErrMissingName
	}

	var release time.Time
	if req.Release != nil {
		release = *req.Release
	}
	entity := book.NewBook(req.Name, req.Description, release)

	if req.Categories != nil {
		entity.Categories = req.Categories
	}
	if req.Authors != nil {
		entity.Authors = req.Authors
	}

	// upload theo thứ tự gửi lên, thứ tự quyết định vị trí
	// trong mảng images
	urls, err := s.uploadImages(ctx, entity.ID, req.Images)
	if err != nil {
		return nil, err
	}
	entity.Images = urls

	slug, err := s.repo.NextAvailableSlug(ctx, utils.GenerateSlug(req.Name), uuid.Nil)
	if err != nil {
		return nil, err
	}
	entity.Slug = slug

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		// refs fail sau khi đã upload: dọn blobs mồ côi, best-effort
		if len(urls) > 0 {
			s.cleanupMedia(entity.ID)
		}
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"id":     created.ID.String(),
		"slug":   created.Slug,
		"images": len(created.Images),
	})

	return book.ToResp(created), nil
}

func (s *bookService) List(ctx context.Context) ([]book.BookListItemResp, error) {
	books, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var catIDs, authIDs []uuid.UUID
	for i := range books {
		catIDs = append(catIDs, books[i].Categories...)
		authIDs = append(authIDs, books[i].Authors...)
	}

	catRefs, err := s.repo.CategoryRefs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	authRefs, err := s.repo.AuthorRefs(ctx, authIDs)
	if err != nil {
		return nil, err
	}

	out := make([]book.BookListItemResp, 0, len(books))
	for i := range books {
		out = append(out, *toListItem(&books[i], catRefs, authRefs))
	}
	return out, nil
}

func (s *bookService) GetBySlug(ctx context.Context, slug string) (*book.BookDetailResp, error) {
	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	catRefs, err := s.repo.CategoryRefs(ctx, b.Categories)
	if err != nil {
		return nil, err
	}
	authRefs, err := s.repo.AuthorRefs(ctx, b.Authors)
	if err != nil {
		return nil, err
	}

	return toDetail(b, catRefs, authRefs), nil
}

func (s *bookService) UpdateBySlug(ctx context.Context, slug string, req *book.UpdateBookReq) (*book.BookResp, error) {
	if err := req.Validate(); err != nil {
		return nil, book.ErrInvalidInput
	}

	current, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// partial merge: chỉ field có mặt trong request mới được đổi
	nameChanged := false
	if req.Name != nil && *req.Name != current.Name {
		current.Name = *req.Name
		nameChanged = true
	}
	if req.Release != nil {
		current.Release = *req.Release
	}
	if req.Description != nil {
		current.Description = *req.Description
	}

	// slug explicit thắng slug sinh lại từ name
	switch {
	case req.Slug != nil:
		current.Slug = *req.Slug
	case nameChanged:
		newSlug, err := s.repo.NextAvailableSlug(ctx, utils.GenerateSlug(current.Name), current.ID)
		if err != nil {
			return nil, err
		}
		current.Slug = newSlug
	}

	// refs replace nguyên mảng, không merge
	if req.Categories != nil {
		current.Categories = *req.Categories
	}
	if req.Authors != nil {
		current.Authors = *req.Authors
	}

	// image replace protocol chỉ chạy khi có cả replaceIndexes
	// lẫn files mới
	if len(req.ReplaceIndexes) > 0 && len(req.Images) > 0 {
		newURLs, err := s.uploadImages(ctx, current.ID, req.Images)
		if err != nil {
			return nil, err
		}
		current.Images = book.ApplyImageReplacements(current.Images, req.ReplaceIndexes, newURLs)
	}

	current.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	return book.ToResp(updated), nil
}

func (s *bookService) DeleteBySlug(ctx context.Context, slug string) error {
	deleted, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}

	// dọn media blobs best-effort: lỗi chỉ log, document đã xóa xong
	s.cleanupMedia(deleted.ID)

	logger.Info("book deleted", map[string]interface{}{
		"id":   deleted.ID.String(),
		"slug": deleted.Slug,
	})

	return nil
}

func (s *bookService) uploadImages(ctx context.Context, bookID uuid.UUID, files []*shared.UploadFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		format, err := s.validator.Validate(f.Data)
		if err != nil {
			logger.Error("book image rejected", err)
			return nil, book.ErrInvalidImage
		}

		key := fmt.Sprintf("books/%s/%s.%s", bookID, uuid.NewString(), format)
		url, err := s.store.Upload(ctx, key, f.Data, "image/"+format)
		if err != nil {
			logger.Error("book image upload failed", err)
			return nil, book.ErrUploadFailed
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// cleanupMedia dùng context riêng: request có thể đã cancel nhưng
// blobs vẫn cần dọn.
func (s *bookService) cleanupMedia(bookID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prefix := fmt.Sprintf("books/%s/", bookID)
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		logger.Error("book media cleanup failed, blobs may be orphaned", err)
	}
}

func toListItem(b *book.Book, catRefs map[uuid.UUID]book.CategoryRef, authRefs map[uuid.UUID]book.AuthorRef) *book.BookListItemResp {
	item := &book.BookListItemResp{
		ID:          b.ID,
		Name:        b.Name,
		Categories:  make([]book.RefResp, 0, len(b.Categories)),
		Images:      b.Images,
		Release:     b.Release,
		Authors:     make([]book.RefResp, 0, len(b.Authors)),
		Description: b.Description,
		Slug:        b.Slug,
	}

	// weak ref: id không resolve được thì bỏ qua, giống populate
	for _, id := range b.Categories {
		if ref, ok := catRefs[id]; ok {
			item.Categories = append(item.Categories, book.RefResp{ID: ref.ID, Name: ref.Name})
		}
	}
	for _, id := range b.Authors {
		if ref, ok := authRefs[id]; ok {
			item.Authors = append(item.Authors, book.RefResp{ID: ref.ID, Name: ref.Name})
		}
	}

	return item
}

func toDetail(b *book.Book, catRefs map[uuid.UUID]book.CategoryRef, authRefs map[uuid.UUID]book.AuthorRef) *book.BookDetailResp {
	detail := &book.BookDetailResp{
		ID:          b.ID,
		Name:        b.Name,
		Categories:  make([]book.RefResp, 0, len(b.Categories)),
		Images:      b.Images,
		Release:     b.Release,
		Authors:     make([]book.AuthorRefResp, 0, len(b.Authors)),
		Description: b.Description,
		Slug:        b.Slug,
	}

	for _, id := range b.Categories {
		if ref, ok := catRefs[id]; ok {
			detail.Categories = append(detail.Categories, book.RefResp{ID: ref.ID, Name: ref.Name})
		}
	}
	for _, id := range b.Authors {
		if ref, ok := authRefs[id]; ok {
			detail.Authors = append(detail.Authors, book.AuthorRefResp{ID: ref.ID, Name: ref.Name, Avatar: ref.Avatar})
		}
	}

	return detail
}
