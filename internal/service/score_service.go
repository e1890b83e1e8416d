package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

// ScoreService is the read side of grading results; writes go through
// GradingService only.
type ScoreService struct {
	scores *repository.ScoreRepository
}

func NewScoreService(scores *repository.ScoreRepository) *ScoreService {
	return &ScoreService{scores: scores}
}

func (s *ScoreService) GetByAttemptID(attemptID string) (*model.Score, error) {
	score, err := s.scores.FindByAttemptID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return score, nil
}

// ListByExam returns every score for the exam, optionally narrowed to one
// student.
func (s *ScoreService) ListByExam(examID, userID string) ([]model.Score, error) {
	if userID != "" {
		return s.scores.ListByExamAndUser(examID, userID)
	}
	return s.scores.ListByExam(examID)
}

func (s *ScoreService) ListByUser(userID string) ([]model.Score, error) {
	return s.scores.ListByUser(userID)
}
