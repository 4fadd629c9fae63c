package service

import (
	"context"
	"time"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.CategoryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, category.ErrInvalidName
	}

	entity := category.NewCategory(req.Name)

	slug, err := s.repo.NextAvailableSlug(ctx, utils.GenerateSlug(req.Name), uuid.Nil)
	if err != nil {
		return nil, err
	}
	entity.Slug = slug

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"id":   created.ID.String(),
		"slug": created.Slug,
	})

	return category.ToResp(created), nil
}

func (s *categoryService) List(ctx context.Context) ([]category.CategoryResp, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return category.ToRespList(all), nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.CategoryResp, error) {
	found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return category.ToResp(found), nil
}

func (s *categoryService) UpdateBySlug(ctx context.Context, slug string, req *category.UpdateCategoryReq) (*category.CategoryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, category.ErrInvalidName
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
	current.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	return category.ToResp(updated), nil
}
