package services

import (
	"context"

	"freelancebook/internal/domain"
	"freelancebook/internal/repository/sqlite"
	"freelancebook/internal/validation"
)

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(repo sqlite.Repository) CategoryService {
	return &categoryServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidator(),
	}
}

// EnsureSeeded installs the built-in category set, skipping any id that
// already exists. Safe to run on every startup.
func (s *categoryServiceImpl) EnsureSeeded(ctx context.Context) error {
	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]struct{}, len(existing))
	for _, dbCategory := range existing {
		present[dbCategory.ID] = struct{}{}
	}

	for _, seed := range domain.SeedCategories() {
		if _, ok := present[seed.ID]; ok {
			continue
		}
		dbCategory := s.mapper.Category.ToDatabase(seed)
		if err := s.repo.CreateCategory(ctx, &dbCategory); err != nil {
			return err
		}
	}
	return nil
}

// Add stores a new category. The ID doubles as the short name used on
// the command line, so both ID and display name are required.
func (s *categoryServiceImpl) Add(ctx context.Context, category domain.Category) (*domain.Category, error) {
	ve := validation.NewValidationError()
	if !s.validator.IsNonEmptyString(category.ID) {
		ve.AddRequiredError("id")
	}
	if !s.validator.IsNonEmptyString(category.Name) {
		ve.AddRequiredError("name")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	dbCategory := s.mapper.Category.ToDatabase(category)
	if err := s.repo.CreateCategory(ctx, &dbCategory); err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories
func (s *categoryServiceImpl) List(ctx context.Context) ([]domain.Category, error) {
	dbCategories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dbCategories))
	for _, dbCategory := range dbCategories {
		categories = append(categories, s.mapper.Category.FromDatabase(*dbCategory))
	}
	return categories, nil
}
