package repository

import (
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

type LoginHistoryRepository struct {
	DB *gorm.DB
}

func NewLoginHistoryRepository(db *gorm.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{DB: db}
}

func (r *LoginHistoryRepository) Create(entry *model.LoginHistory) error {
	return r.DB.Create(entry).Error
}

func (r *LoginHistoryRepository) ListByUser(userID string, page, limit int) ([]model.LoginHistory, int64, error) {
	var entries []model.LoginHistory
	var total int64

	query := r.DB.Model(&model.LoginHistory{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("login_at desc").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
