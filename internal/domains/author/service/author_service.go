package service

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

type authorService struct {
	repo      author.Repository
	store     storage.Store
	validator *storage.ImageValidator
}

func NewAuthorService(repo author.Repository, store storage.Store) author.Service {
	return &authorService{
		repo:      repo,
		store:     store,
		validator: storage.NewImageValidator(),
	}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorReq) (*author.AuthorResp, error) {
	if err := req.Validate(); err != nil {
		return nil, author.ErrInvalidName
	}

	entity := author.NewAuthor(req.Name, "")

	// upload avatar trước, entity chỉ persist khi upload xong
	if req.Avatar != nil {
		url, err := s.uploadAvatar(ctx, entity.ID, req.Avatar)
		if err != nil {
			return nil, err
		}
		entity.Avatar = url
	}

	slug, err := s.repo.NextAvailableSlug(ctx, utils.GenerateSlug(req.Name), uuid.Nil)
	if err != nil {
		return nil, err
	}
	entity.Slug = slug

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("author created", map[string]interface{}{
		"id":   created.ID.String(),
		"slug": created.Slug,
	})

	return author.ToResp(created), nil
}

func (s *authorService) List(ctx context.Context) ([]author.AuthorResp, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return author.ToRespList(all), nil
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*author.AuthorResp, error) {
	found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return author.ToResp(found), nil
}

func (s *authorService) UpdateBySlug(ctx context.Context, slug string, req *author.UpdateAuthorReq) (*author.AuthorResp, error) {
	if err := req.Validate(); err != nil {
		return nil, author.ErrInvalidName
	}

	current, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// partial merge: chỉ đổi field có mặt trong request
	if req.Name != nil && *req.Name != current.Name {
		current.Name = *req.Name

		newSlug, err := s.repo.NextAvailableSlug(ctx, utils.GenerateSlug(current.Name), current.ID)
		if err != nil {
			return nil, err
		}
		current.Slug = newSlug
	}

	if req.Avatar != nil {
		url, err := s.uploadAvatar(ctx, current.ID, req.Avatar)
		if err != nil {
			return nil, err
		}
		current.Avatar = url
	}
	current.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	return author.ToResp(updated), nil
}

func (s *authorService) uploadAvatar(ctx context.Context, authorID uuid.UUID, file *shared.UploadFile) (string, error) {
	format, err := s.validator.Validate(file.Data)
	if err != nil {
		logger.Error("author avatar rejected", err)
		return "", author.ErrInvalidImage
	}

	key := fmt.Sprintf("authors/%s/avatar.%s", authorID, format)
	url, err := s.store.Upload(ctx, key, file.Data, "image/"+format)
	if err != nil {
		logger.Error("author avatar upload failed", err)
		return "", author.ErrUploadFailed
	}

	return url, nil
}
