package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"lexi_backend/internal/model"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type MaterialService struct {
	Repo         *repository.MaterialRepository
	CategoryRepo *repository.CategoryRepository
}

func NewMaterialService(repo *repository.MaterialRepository, categoryRepo *repository.CategoryRepository) *MaterialService {
	return &MaterialService{
		Repo:         repo,
		CategoryRepo: categoryRepo,
	}
}

type MaterialInput struct {
	Title      string
	Slug       string
	ContentMD  string
	CategoryID *uint
	Published  *bool
}

// OptionalID distinguishes an absent JSON field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type MaterialPatch struct {
	Title      *string
	Slug       *string
	ContentMD  *string
	CategoryID OptionalID
	Published  *bool
}

func (s *MaterialService) List() ([]model.Material, error) {
	return s.Repo.List(false, "")
}

func (s *MaterialService) ListPublished(categorySlug string) ([]model.Material, error) {
	return s.Repo.List(true, categorySlug)
}

func (s *MaterialService) Get(id uint) (*model.Material, error) {
	material, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) GetPublishedBySlug(slug string) (*model.Material, error) {
	material, err := s.Repo.FindPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return material, nil
}

// Create falls back to a slug derived from the title.
func (s *MaterialService) Create(authorID uint, in MaterialInput) (*model.Material, error) {
	title := strings.TrimSpace(in.Title)
	slug := util.ToSlug(in.Slug)
	if slug == "" {
		slug = util.ToSlug(title)
	}
	if title == "" || slug == "" {
		return nil, fmt.Errorf("%w: title must contain letters or digits", util.ErrInvalidInput)
	}
	if err := resolveCategory(s.CategoryRepo, in.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.Repo.SlugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrMaterialExists
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	material := &model.Material{
		Title:      title,
		Slug:       slug,
		ContentMD:  in.ContentMD,
		Published:  published,
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
	}
	if err := s.Repo.Create(material); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrMaterialExists
		}
		return nil, err
	}
	return material, nil
}

// Update applies only the fields present in the patch.
func (s *MaterialService) Update(id uint, patch MaterialPatch) (*model.Material, error) {
	material, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", util.ErrInvalidInput)
		}
		material.Title = title
	}
	if patch.Slug != nil {
		slug := util.ToSlug(*patch.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug must contain letters or digits", util.ErrInvalidInput)
		}
		taken, err := s.Repo.SlugTaken(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrMaterialExists
		}
		material.Slug = slug
	}
	if patch.ContentMD != nil {
		material.ContentMD = *patch.ContentMD
	}
	if patch.Published != nil {
		material.Published = *patch.Published
	}
	if patch.CategoryID.Set {
		if err := resolveCategory(s.CategoryRepo, patch.CategoryID.Value); err != nil {
			return nil, err
		}
		material.CategoryID = patch.CategoryID.Value
	}
	// the preloaded category would otherwise overwrite CategoryID on save
	material.Category = nil

	if err := s.Repo.Update(material); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrMaterialExists
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	return nil
}
