package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
)

type AttemptService struct {
	attempts *repository.AttemptRepository
	exams    *repository.ExamRepository
	scores   *repository.ScoreRepository
	grading  *GradingService
}

func NewAttemptService(attempts *repository.AttemptRepository, exams *repository.ExamRepository, scores *repository.ScoreRepository, grading *GradingService) *AttemptService {
	return &AttemptService{
		attempts: attempts,
		exams:    exams,
		scores:   scores,
		grading:  grading,
	}
}

type SubmitAttemptRequest struct {
	ExamID  string            `json:"examId" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
	Retake  bool              `json:"retake"`
}

type SubmitAttemptResponse struct {
	Attempt *model.ExamAttempt `json:"attempt"`
	Score   *model.Score       `json:"score,omitempty"`
}

// Submit stores the student's answers and grades them immediately. A second
// submission for the same exam is rejected unless retake is set, in which
// case the previous attempt and its score are discarded first.
func (s *AttemptService) Submit(userID string, req *SubmitAttemptRequest) (*SubmitAttemptResponse, error) {
	if _, err := s.exams.FindByID(req.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	existing, err := s.attempts.FindByUserAndExam(userID, req.ExamID)
	switch {
	case err == nil:
		if !req.Retake {
			return nil, util.ErrAlreadyAttempted
		}
		if err := s.attempts.Delete(existing.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first attempt
	default:
		return nil, err
	}

	attempt := &model.ExamAttempt{
		UserID:      userID,
		ExamID:      req.ExamID,
		Answers:     req.Answers,
		SubmittedAt: time.Now(),
	}
	if err := s.attempts.Create(attempt); err != nil {
		return nil, err
	}

	score, err := s.grading.GradeAttempt(attempt.ID)
	if err != nil {
		// the attempt stands, a bulk re-grade can pick it up later
		logger.Log.Warn("auto grading after submit failed",
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
		return &SubmitAttemptResponse{Attempt: attempt}, nil
	}

	attempt.Score = intPtr(int(score.Percentage + 0.5))
	return &SubmitAttemptResponse{Attempt: attempt, Score: score}, nil
}

func (s *AttemptService) GetByID(id string) (*model.ExamAttempt, error) {
	attempt, err := s.attempts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

// GetOwn returns the caller's attempt for an exam with its score attached,
// or ErrAttemptNotFound when the exam has not been taken yet.
func (s *AttemptService) GetOwn(userID, examID string) (*SubmitAttemptResponse, error) {
	attempt, err := s.attempts.FindByUserAndExam(userID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	score, err := s.scores.FindByAttemptID(attempt.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// submitted but never graded
		score = nil
	}
	return &SubmitAttemptResponse{Attempt: attempt, Score: score}, nil
}

func (s *AttemptService) ListByExam(examID string) ([]model.ExamAttempt, error) {
	return s.attempts.ListByExam(examID)
}

func (s *AttemptService) ListByUser(userID string) ([]model.ExamAttempt, error) {
	return s.attempts.ListByUser(userID)
}

// Delete removes an attempt and its score so the student can retake.
func (s *AttemptService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.attempts.Delete(id)
}

func intPtr(v int) *int {
	return &v
}
