package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/grading"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/monitoring"
)

// Storage ports for grading. The repositories satisfy these; tests inject
// stubs.
type AttemptStore interface {
	FindByID(id string) (*model.ExamAttempt, error)
	ListByExam(examID string) ([]model.ExamAttempt, error)
	UpdateLegacyScore(attemptID string, score int) error
}

type QuestionStore interface {
	ListQuestionsWithChoices(examID string) ([]model.Question, error)
}

type ScoreStore interface {
	Upsert(score *model.Score) (*model.Score, error)
}

type GradingService struct {
	Attempts  AttemptStore
	Questions QuestionStore
	Scores    ScoreStore
}

func NewGradingService(attempts AttemptStore, questions QuestionStore, scores ScoreStore) *GradingService {
	return &GradingService{
		Attempts:  attempts,
		Questions: questions,
		Scores:    scores,
	}
}

// BulkGradingResult is the compact per-attempt record returned by GradeExam.
type BulkGradingResult struct {
	AttemptID  string  `json:"attemptId"`
	UserID     string  `json:"userId"`
	Percentage float64 `json:"percentage"`
	IsPassed   bool    `json:"isPassed"`
}

type BulkGradingSummary struct {
	Total  int `json:"total"`
	Graded int `json:"graded"`
	Failed int `json:"failed"`
}

type BulkGradingOutcome struct {
	Summary BulkGradingSummary  `json:"summary"`
	Results []BulkGradingResult `json:"results"`
}

// GradeAttempt grades one attempt and persists the result. Repeated calls
// overwrite the prior Score (upsert on attempt_id), so re-grading after exam
// edits is safe.
func (s *GradingService) GradeAttempt(attemptID string) (*model.Score, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	questions, err := s.Questions.ListQuestionsWithChoices(attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrQuestionFetch, err)
	}

	result := grading.Score(attempt.Answers, normalizeQuestions(questions))

	score := &model.Score{
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		UserID:      attempt.UserID,
		TotalScore:  result.TotalScore,
		MaxScore:    result.MaxScore,
		Percentage:  result.Percentage,
		IsPassed:    result.IsPassed,
		GradingType: model.GradingAuto,
		GradedAt:    time.Now(),
		Breakdown:   result.Breakdown,
	}

	saved, err := s.Scores.Upsert(score)
	if err != nil {
		monitoring.GradedAttempts.WithLabelValues("single", "failed").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrScorePersist, err)
	}

	if err := s.Attempts.UpdateLegacyScore(attempt.ID, int(math.Round(result.Percentage))); err != nil {
		monitoring.GradedAttempts.WithLabelValues("single", "failed").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrScorePersist, err)
	}

	monitoring.GradedAttempts.WithLabelValues("single", "graded").Inc()
	return saved, nil
}

// GradeExam grades every attempt for an exam. Individual persistence
// failures are counted and skipped; only the upstream fetches abort the
// batch. Attempts are processed sequentially — each grade-and-persist is its
// own unit, so a cancelled batch leaves already-written Scores valid.
func (s *GradingService) GradeExam(examID string) (*BulkGradingOutcome, error) {
	attempts, err := s.Attempts.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, util.ErrNoAttempts
	}

	questions, err := s.Questions.ListQuestionsWithChoices(examID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrQuestionFetch, err)
	}
	normalized := normalizeQuestions(questions)

	outcome := &BulkGradingOutcome{
		Summary: BulkGradingSummary{Total: len(attempts)},
		Results: make([]BulkGradingResult, 0, len(attempts)),
	}

	for _, attempt := range attempts {
		result := grading.Score(attempt.Answers, normalized)

		score := &model.Score{
			AttemptID:   attempt.ID,
			ExamID:      examID,
			UserID:      attempt.UserID,
			TotalScore:  result.TotalScore,
			MaxScore:    result.MaxScore,
			Percentage:  result.Percentage,
			IsPassed:    result.IsPassed,
			GradingType: model.GradingAuto,
			GradedAt:    time.Now(),
			Breakdown:   result.Breakdown,
		}

		if _, err := s.Scores.Upsert(score); err != nil {
			logger.Log.Warn("bulk grading: score upsert failed",
				zap.String("attemptId", attempt.ID), zap.Error(err))
			outcome.Summary.Failed++
			monitoring.GradedAttempts.WithLabelValues("bulk", "failed").Inc()
			continue
		}

		if err := s.Attempts.UpdateLegacyScore(attempt.ID, int(math.Round(result.Percentage))); err != nil {
			logger.Log.Warn("bulk grading: legacy score update failed",
				zap.String("attemptId", attempt.ID), zap.Error(err))
			outcome.Summary.Failed++
			monitoring.GradedAttempts.WithLabelValues("bulk", "failed").Inc()
			continue
		}

		outcome.Summary.Graded++
		monitoring.GradedAttempts.WithLabelValues("bulk", "graded").Inc()
		outcome.Results = append(outcome.Results, BulkGradingResult{
			AttemptID:  attempt.ID,
			UserID:     attempt.UserID,
			Percentage: result.Percentage,
			IsPassed:   result.IsPassed,
		})
	}

	return outcome, nil
}

// normalizeQuestions applies storage defaults once, at ingestion: zero
// weight means 1.0 and a missing question type means MCQ. The engine never
// sees unnormalized rows.
func normalizeQuestions(questions []model.Question) []model.Question {
	normalized := make([]model.Question, len(questions))
	for i, q := range questions {
		if q.Weight == 0 {
			q.Weight = 1.0
		}
		if q.QuestionType == "" {
			q.QuestionType = model.QuestionTypeMCQ
		}
		normalized[i] = q
	}
	return normalized
}
