package repository

import (
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *AttemptRepository) FindByUserAndExam(userID, examID string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).First(&attempt).Error
	return &attempt, err
}

func (r *AttemptRepository) ListByExam(examID string) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Where("exam_id = ?", examID).Order("submitted_at asc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(userID string) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at desc").Find(&attempts).Error
	return attempts, err
}

// Delete removes an attempt and its Score in one transaction (retake flow).
func (r *AttemptRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ?", id).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ExamAttempt{}, "id = ?", id).Error
	})
}

// UpdateLegacyScore mirrors the rounded percentage into the attempt row for
// consumers that still read exam_attempts.score.
func (r *AttemptRepository) UpdateLegacyScore(attemptID string, score int) error {
	return r.DB.Model(&model.ExamAttempt{}).Where("id = ?", attemptID).Update("score", score).Error
}

func (r *AttemptRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).Count(&count).Error
	return count, err
}
