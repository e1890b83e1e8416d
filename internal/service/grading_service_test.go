package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type mockAttemptStore struct {
	findByIDFunc          func(id string) (*model.ExamAttempt, error)
	listByExamFunc        func(examID string) ([]model.ExamAttempt, error)
	updateLegacyScoreFunc func(attemptID string, score int) error
}

func (m *mockAttemptStore) FindByID(id string) (*model.ExamAttempt, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAttemptStore) ListByExam(examID string) ([]model.ExamAttempt, error) {
	if m.listByExamFunc != nil {
		return m.listByExamFunc(examID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAttemptStore) UpdateLegacyScore(attemptID string, score int) error {
	if m.updateLegacyScoreFunc != nil {
		return m.updateLegacyScoreFunc(attemptID, score)
	}
	return nil
}

type mockQuestionStore struct {
	listFunc func(examID string) ([]model.Question, error)
}

func (m *mockQuestionStore) ListQuestionsWithChoices(examID string) ([]model.Question, error) {
	if m.listFunc != nil {
		return m.listFunc(examID)
	}
	return nil, errors.New("not implemented")
}

type mockScoreStore struct {
	upsertFunc func(score *model.Score) (*model.Score, error)
}

func (m *mockScoreStore) Upsert(score *model.Score) (*model.Score, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(score)
	}
	return score, nil
}

func testAttempt(id, examID, userID string, answers map[string]string) *model.ExamAttempt {
	a := &model.ExamAttempt{UserID: userID, ExamID: examID, Answers: answers}
	a.ID = id
	return a
}

func testQuestion(id, text string, weight float64, qType model.QuestionType, choices ...model.Choice) model.Question {
	q := model.Question{QuestionText: text, Weight: weight, QuestionType: qType, Choices: choices}
	q.ID = id
	return q
}

func testChoice(id, text string, correct bool) model.Choice {
	c := model.Choice{ChoiceText: text, IsCorrect: correct}
	c.ID = id
	return c
}

func twoQuestionSet() []model.Question {
	return []model.Question{
		testQuestion("q1", "first", 1, model.QuestionTypeMCQ,
			testChoice("c1", "right", true),
			testChoice("c2", "wrong", false),
		),
		testQuestion("q2", "second", 2, model.QuestionTypeMCQ,
			testChoice("c3", "wrong", false),
			testChoice("c4", "right", true),
		),
	}
}

func TestGradeAttempt_Success(t *testing.T) {
	var upserted *model.Score
	var legacyScore int

	attempts := &mockAttemptStore{
		findByIDFunc: func(id string) (*model.ExamAttempt, error) {
			return testAttempt(id, "exam-1", "user-1", map[string]string{"q1": "c1", "q2": "c3"}), nil
		},
		updateLegacyScoreFunc: func(attemptID string, score int) error {
			legacyScore = score
			return nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return twoQuestionSet(), nil
		},
	}
	scores := &mockScoreStore{
		upsertFunc: func(score *model.Score) (*model.Score, error) {
			upserted = score
			return score, nil
		},
	}

	svc := NewGradingService(attempts, questions, scores)
	saved, err := svc.GradeAttempt("attempt-1")

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "attempt-1", saved.AttemptID)
	assert.Equal(t, "exam-1", saved.ExamID)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, 1.0, saved.TotalScore)
	assert.Equal(t, 3.0, saved.MaxScore)
	assert.Equal(t, 33.33, saved.Percentage)
	assert.True(t, saved.IsPassed)
	assert.Equal(t, model.GradingAuto, saved.GradingType)
	assert.False(t, saved.GradedAt.IsZero())
	assert.Len(t, saved.Breakdown, 2)
	// legacy mirror gets the rounded percentage
	assert.Equal(t, 33, legacyScore)
}

func TestGradeAttempt_NotFound(t *testing.T) {
	attempts := &mockAttemptStore{
		findByIDFunc: func(id string) (*model.ExamAttempt, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewGradingService(attempts, &mockQuestionStore{}, &mockScoreStore{})
	_, err := svc.GradeAttempt("missing")

	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestGradeAttempt_QuestionFetchFailure(t *testing.T) {
	attempts := &mockAttemptStore{
		findByIDFunc: func(id string) (*model.ExamAttempt, error) {
			return testAttempt(id, "exam-1", "user-1", nil), nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewGradingService(attempts, questions, &mockScoreStore{})
	_, err := svc.GradeAttempt("attempt-1")

	assert.ErrorIs(t, err, util.ErrQuestionFetch)
}

func TestGradeAttempt_PersistFailure(t *testing.T) {
	attempts := &mockAttemptStore{
		findByIDFunc: func(id string) (*model.ExamAttempt, error) {
			return testAttempt(id, "exam-1", "user-1", nil), nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return twoQuestionSet(), nil
		},
	}

	t.Run("upsert fails", func(t *testing.T) {
		scores := &mockScoreStore{
			upsertFunc: func(score *model.Score) (*model.Score, error) {
				return nil, errors.New("disk full")
			},
		}
		svc := NewGradingService(attempts, questions, scores)
		_, err := svc.GradeAttempt("attempt-1")
		assert.ErrorIs(t, err, util.ErrScorePersist)
	})

	t.Run("legacy mirror fails", func(t *testing.T) {
		failing := &mockAttemptStore{
			findByIDFunc: attempts.findByIDFunc,
			updateLegacyScoreFunc: func(attemptID string, score int) error {
				return errors.New("deadlock")
			},
		}
		svc := NewGradingService(failing, questions, &mockScoreStore{})
		_, err := svc.GradeAttempt("attempt-1")
		assert.ErrorIs(t, err, util.ErrScorePersist)
	})
}

func TestGradeAttempt_NormalizesStoredRows(t *testing.T) {
	attempts := &mockAttemptStore{
		findByIDFunc: func(id string) (*model.ExamAttempt, error) {
			// nil answer map means "no answer" for every question
			return testAttempt(id, "exam-1", "user-1", nil), nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			// weight and type unset in storage
			return []model.Question{
				testQuestion("q1", "untyped", 0, "",
					testChoice("c1", "right", true),
				),
			}, nil
		},
	}

	svc := NewGradingService(attempts, questions, &mockScoreStore{})
	saved, err := svc.GradeAttempt("attempt-1")

	require.NoError(t, err)
	require.Len(t, saved.Breakdown, 1)
	assert.Equal(t, 1.0, saved.Breakdown[0].Weight)
	assert.Equal(t, 1.0, saved.MaxScore)
	assert.Equal(t, 0.0, saved.Percentage)
	assert.Nil(t, saved.Breakdown[0].SelectedChoiceText)
}

func TestGradeExam_NoAttempts(t *testing.T) {
	attempts := &mockAttemptStore{
		listByExamFunc: func(examID string) ([]model.ExamAttempt, error) {
			return nil, nil
		},
	}

	svc := NewGradingService(attempts, &mockQuestionStore{}, &mockScoreStore{})
	_, err := svc.GradeExam("exam-1")

	assert.ErrorIs(t, err, util.ErrNoAttempts)
}

func TestGradeExam_QuestionFetchFailure(t *testing.T) {
	attempts := &mockAttemptStore{
		listByExamFunc: func(examID string) ([]model.ExamAttempt, error) {
			return []model.ExamAttempt{*testAttempt("a1", examID, "u1", nil)}, nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return nil, errors.New("timeout")
		},
	}

	svc := NewGradingService(attempts, questions, &mockScoreStore{})
	_, err := svc.GradeExam("exam-1")

	assert.ErrorIs(t, err, util.ErrQuestionFetch)
}

func TestGradeExam_PartialFailure(t *testing.T) {
	all := make([]model.ExamAttempt, 0, 5)
	for _, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		all = append(all, *testAttempt(id, "exam-1", "user-"+id, map[string]string{"q1": "c1"}))
	}

	attempts := &mockAttemptStore{
		listByExamFunc: func(examID string) ([]model.ExamAttempt, error) {
			return all, nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return twoQuestionSet(), nil
		},
	}
	scores := &mockScoreStore{
		upsertFunc: func(score *model.Score) (*model.Score, error) {
			if score.AttemptID == "a3" {
				return nil, errors.New("constraint violation")
			}
			return score, nil
		},
	}

	svc := NewGradingService(attempts, questions, scores)
	outcome, err := svc.GradeExam("exam-1")

	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Summary.Total)
	assert.Equal(t, 4, outcome.Summary.Graded)
	assert.Equal(t, 1, outcome.Summary.Failed)
	assert.Equal(t, outcome.Summary.Total, outcome.Summary.Graded+outcome.Summary.Failed)

	require.Len(t, outcome.Results, 4)
	for _, r := range outcome.Results {
		assert.NotEqual(t, "a3", r.AttemptID)
		assert.Equal(t, 33.33, r.Percentage)
		assert.True(t, r.IsPassed)
	}
}

func TestGradeExam_LegacyMirrorFailureCounted(t *testing.T) {
	attempts := &mockAttemptStore{
		listByExamFunc: func(examID string) ([]model.ExamAttempt, error) {
			return []model.ExamAttempt{
				*testAttempt("a1", examID, "u1", nil),
				*testAttempt("a2", examID, "u2", nil),
			}, nil
		},
		updateLegacyScoreFunc: func(attemptID string, score int) error {
			if attemptID == "a2" {
				return errors.New("row lock")
			}
			return nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return twoQuestionSet(), nil
		},
	}

	svc := NewGradingService(attempts, questions, &mockScoreStore{})
	outcome, err := svc.GradeExam("exam-1")

	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Summary.Total)
	assert.Equal(t, 1, outcome.Summary.Graded)
	assert.Equal(t, 1, outcome.Summary.Failed)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "a1", outcome.Results[0].AttemptID)
}

func TestGradeExam_UpsertKeyedByAttempt(t *testing.T) {
	seen := make(map[string]int)

	attempts := &mockAttemptStore{
		listByExamFunc: func(examID string) ([]model.ExamAttempt, error) {
			return []model.ExamAttempt{
				*testAttempt("a1", examID, "u1", map[string]string{"q1": "c1"}),
				*testAttempt("a2", examID, "u2", map[string]string{"q2": "c4"}),
			}, nil
		},
	}
	questions := &mockQuestionStore{
		listFunc: func(examID string) ([]model.Question, error) {
			return twoQuestionSet(), nil
		},
	}
	scores := &mockScoreStore{
		upsertFunc: func(score *model.Score) (*model.Score, error) {
			seen[score.AttemptID]++
			return score, nil
		},
	}

	svc := NewGradingService(attempts, questions, scores)

	// grading twice writes each attempt key twice, never a duplicate key set
	_, err := svc.GradeExam("exam-1")
	require.NoError(t, err)
	_, err = svc.GradeExam("exam-1")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a1": 2, "a2": 2}, seen)
}
