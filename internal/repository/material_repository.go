package repository

import (
	"lexi_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.Preload("Category").First(&material, id).Error
	return &material, err
}

func (r *MaterialRepository) FindPublishedBySlug(slug string) (*model.Material, error) {
	var material model.Material
	err := r.DB.Preload("Category").
		Where("slug = ? AND published = ?", slug, true).
		First(&material).Error
	return &material, err
}

func (r *MaterialRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Material{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// List returns every material, newest first. categorySlug filters when not empty.
func (r *MaterialRepository) List(publishedOnly bool, categorySlug string) ([]model.Material, error) {
	var materials []model.Material
	query := r.DB.Model(&model.Material{}).Preload("Category")
	if publishedOnly {
		query = query.Where("materials.published = ?", true)
	}
	if categorySlug != "" {
		query = query.Joins("JOIN categories c ON c.id = materials.category_id").
			Where("c.slug = ?", categorySlug)
	}
	err := query.Order("materials.created_at desc, materials.id desc").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Omit("Category", "Author").Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	result := r.DB.Delete(&model.Material{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MaterialRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).Where("published = ?", true).Count(&count).Error
	return count, err
}
