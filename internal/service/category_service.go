package service

import (
	"errors"
	"fmt"
	"lexi_backend/internal/model"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.Repo.List()
}

// Create derives the slug from the name. A clash on either column is ErrCategoryExists.
func (s *CategoryService) Create(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	slug := util.ToSlug(name)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name must contain letters or digits", util.ErrInvalidInput)
	}

	exists, err := s.Repo.ExistsByNameOrSlug(name, slug, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCategoryExists
	}

	category := &model.Category{Name: name, Slug: slug}
	if err := s.Repo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(id uint, name string) (*model.Category, error) {
	category, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	name = strings.TrimSpace(name)
	slug := util.ToSlug(name)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name must contain letters or digits", util.ErrInvalidInput)
	}

	exists, err := s.Repo.ExistsByNameOrSlug(name, slug, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCategoryExists
	}

	category.Name = name
	category.Slug = slug
	if err := s.Repo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

// Delete leaves materials and quizzes of the category uncategorized.
func (s *CategoryService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	return nil
}

// resolveCategory checks that an optional category id refers to an existing row.
func resolveCategory(repo *repository.CategoryRepository, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := repo.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d does not exist", util.ErrInvalidInput, *id)
		}
		return err
	}
	return nil
}
