package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// Upsert inserts or replaces the Score for its attempt_id. Re-grading the
// same attempt overwrites rather than duplicates.
func (r *ScoreRepository) Upsert(score *model.Score) (*model.Score, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"exam_id", "user_id", "total_score", "max_score", "percentage",
			"is_passed", "grading_type", "graded_at", "breakdown", "updated_at",
		}),
	}).Create(score).Error
	if err != nil {
		return nil, err
	}

	var saved model.Score
	if err := r.DB.Where("attempt_id = ?", score.AttemptID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ScoreRepository) FindByAttemptID(attemptID string) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("attempt_id = ?", attemptID).First(&score).Error
	return &score, err
}

func (r *ScoreRepository) ListByExam(examID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("exam_id = ?", examID).Order("graded_at desc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) ListByExamAndUser(examID, userID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("exam_id = ? AND user_id = ?", examID, userID).Order("graded_at desc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) ListByUser(userID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("user_id = ?", userID).Order("graded_at asc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) ListAll() ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).Count(&count).Error
	return count, err
}
