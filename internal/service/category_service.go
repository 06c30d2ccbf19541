package service

import (
	"context"
	"strings"

	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
	"news-events-api/internal/repository"
	"news-events-api/internal/util"
)

// CreateCategoryInput carries the fields for category creation. An empty Slug
// is derived from Name.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
	Status      string
}

// UpdateCategoryInput carries optional fields; nil keeps the stored value.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	Status      *string
}

// CategoryService handles the category taxonomy.
type CategoryService interface {
	Create(ctx context.Context, in CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id int64, in UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
	// Get returns one category; with activeOnly set, inactive categories are
	// reported as not found.
	Get(ctx context.Context, id int64, activeOnly bool) (*model.Category, error)
	List(ctx context.Context, activeOnly bool) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, in CreateCategoryInput) (*model.Category, error) {
	slug, err := resolveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.StatusActive
	}
	if !model.IsValidStatus(status) {
		return nil, errs.E(errs.KindValidation, "Status must be either active or inactive")
	}

	category := &model.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Status:      status,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in UpdateCategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil {
		slug, err := resolveSlug(*in.Slug, category.Name)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Status != nil {
		if !model.IsValidStatus(*in.Status) {
			return nil, errs.E(errs.KindValidation, "Status must be either active or inactive")
		}
		category.Status = *in.Status
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) Get(ctx context.Context, id int64, activeOnly bool) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && category.Status != model.StatusActive {
		return nil, errs.E(errs.KindNotFound, "Category not found")
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	status := ""
	if activeOnly {
		status = model.StatusActive
	}
	return s.categoryRepo.FindAll(ctx, status)
}

// resolveSlug validates a submitted slug, or derives one from name when the
// submission is empty.
func resolveSlug(slug, name string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		derived := util.Slugify(name)
		if derived == "" {
			return "", errs.E(errs.KindValidation, "Unable to derive a slug from the category name")
		}
		return derived, nil
	}
	if !util.IsValidSlug(slug) {
		return "", errs.E(errs.KindValidation, "Invalid slug format. Use lowercase letters, numbers and hyphens")
	}
	return slug, nil
}
