package repository

import (
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
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

func (r *MaterialRepository) FindByID(id string) (*model.Material, error) {
	var m model.Material
	err := r.DB.First(&m, "id = ?", id).Error
	return &m, err
}

func (r *MaterialRepository) List(page, limit int, title string) ([]model.Material, int64, error) {
	var materials []model.Material
	var total int64

	query := r.DB.Model(&model.Material{})
	if title != "" {
		query = query.Where("title ILIKE ?", "%"+title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.DB.Delete(&model.Material{}, "id = ?", id).Error
}

func (r *MaterialRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).Count(&count).Error
	return count, err
}
