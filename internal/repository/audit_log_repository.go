package repository

import (
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

type AuditLogRepository struct {
	DB *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Create(entry *model.AuditLog) error {
	return r.DB.Create(entry).Error
}

func (r *AuditLogRepository) List(page, limit int, entityType string) ([]model.AuditLog, int64, error) {
	var entries []model.AuditLog
	var total int64

	query := r.DB.Model(&model.AuditLog{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
