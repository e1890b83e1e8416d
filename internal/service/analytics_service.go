package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type AnalyticsService struct {
	users     *repository.UserRepository
	materials *repository.MaterialRepository
	exams     *repository.ExamRepository
	attempts  *repository.AttemptRepository
	scores    *repository.ScoreRepository
}

func NewAnalyticsService(
	users *repository.UserRepository,
	materials *repository.MaterialRepository,
	exams *repository.ExamRepository,
	attempts *repository.AttemptRepository,
	scores *repository.ScoreRepository,
) *AnalyticsService {
	return &AnalyticsService{
		users:     users,
		materials: materials,
		exams:     exams,
		attempts:  attempts,
		scores:    scores,
	}
}

type PlatformOverview struct {
	TotalStudents     int64   `json:"totalStudents"`
	TotalMaterials    int64   `json:"totalMaterials"`
	TotalExams        int64   `json:"totalExams"`
	TotalAttempts     int64   `json:"totalAttempts"`
	TotalGraded       int64   `json:"totalGraded"`
	AveragePercentage float64 `json:"averagePercentage"`
	PassRate          float64 `json:"passRate"`
}

// ScoreBand is one bucket of the 10-band score distribution (0-9, 10-19,
// ..., 90-100).
type ScoreBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ExamStatistics struct {
	ExamID            string         `json:"examId"`
	Title             string         `json:"title"`
	AttemptCount      int            `json:"attemptCount"`
	GradedCount       int            `json:"gradedCount"`
	AveragePercentage float64        `json:"averagePercentage"`
	HighestPercentage float64        `json:"highestPercentage"`
	LowestPercentage  float64        `json:"lowestPercentage"`
	PassRate          float64        `json:"passRate"`
	Distribution      []ScoreBand    `json:"distribution"`
	Results           []StudentScore `json:"results"`
}

// StudentScore joins one score row with the student's identity.
type StudentScore struct {
	UserID      string  `json:"userId"`
	StudentName string  `json:"studentName"`
	AttemptID   string  `json:"attemptId"`
	Percentage  float64 `json:"percentage"`
	TotalScore  float64 `json:"totalScore"`
	MaxScore    float64 `json:"maxScore"`
	IsPassed    bool    `json:"isPassed"`
}

type StudentPerformance struct {
	UserID            string        `json:"userId"`
	StudentName       string        `json:"studentName"`
	ExamsTaken        int           `json:"examsTaken"`
	AveragePercentage float64       `json:"averagePercentage"`
	BestPercentage    float64       `json:"bestPercentage"`
	History           []model.Score `json:"history"`
}

type QuestionDifficulty struct {
	QuestionID   string  `json:"questionId"`
	QuestionText string  `json:"questionText"`
	Answered     int     `json:"answered"`
	Correct      int     `json:"correct"`
	CorrectRate  float64 `json:"correctRate"`
}

func (s *AnalyticsService) Overview() (*PlatformOverview, error) {
	students, err := s.users.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}
	materials, err := s.materials.Count()
	if err != nil {
		return nil, err
	}
	exams, err := s.exams.Count("")
	if err != nil {
		return nil, err
	}
	attempts, err := s.attempts.Count()
	if err != nil {
		return nil, err
	}

	all, err := s.scores.ListAll()
	if err != nil {
		return nil, err
	}

	overview := &PlatformOverview{
		TotalStudents:  students,
		TotalMaterials: materials,
		TotalExams:     exams,
		TotalAttempts:  attempts,
		TotalGraded:    int64(len(all)),
	}

	if len(all) > 0 {
		var sum float64
		var passed int
		for _, sc := range all {
			sum += sc.Percentage
			if sc.IsPassed {
				passed++
			}
		}
		overview.AveragePercentage = round2(sum / float64(len(all)))
		overview.PassRate = round2(float64(passed) / float64(len(all)) * 100)
	}

	return overview, nil
}

func (s *AnalyticsService) ExamStatistics(examID string) (*ExamStatistics, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	attempts, err := s.attempts.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	stats := &ExamStatistics{
		ExamID:       exam.ID,
		Title:        exam.Title,
		AttemptCount: len(attempts),
		GradedCount:  len(scores),
		Distribution: bandDistribution(scores),
	}

	if len(scores) > 0 {
		var sum float64
		var passed int
		stats.LowestPercentage = scores[0].Percentage
		for _, sc := range scores {
			sum += sc.Percentage
			if sc.Percentage > stats.HighestPercentage {
				stats.HighestPercentage = sc.Percentage
			}
			if sc.Percentage < stats.LowestPercentage {
				stats.LowestPercentage = sc.Percentage
			}
			if sc.IsPassed {
				passed++
			}
		}
		stats.AveragePercentage = round2(sum / float64(len(scores)))
		stats.PassRate = round2(float64(passed) / float64(len(scores)) * 100)
	}

	results, err := s.joinStudents(scores)
	if err != nil {
		return nil, err
	}
	stats.Results = results

	return stats, nil
}

func (s *AnalyticsService) StudentPerformance(userID string) (*StudentPerformance, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	history, err := s.scores.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	perf := &StudentPerformance{
		UserID:      user.ID,
		StudentName: user.Name,
		ExamsTaken:  len(history),
		History:     history,
	}

	if len(history) > 0 {
		var sum float64
		for _, sc := range history {
			sum += sc.Percentage
			if sc.Percentage > perf.BestPercentage {
				perf.BestPercentage = sc.Percentage
			}
		}
		perf.AveragePercentage = round2(sum / float64(len(history)))
	}

	return perf, nil
}

// TopStudents ranks students by average percentage across all their graded
// attempts, limited to the given count.
func (s *AnalyticsService) TopStudents(limit int) ([]StudentPerformance, error) {
	if limit <= 0 {
		limit = 10
	}

	all, err := s.scores.ListAll()
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]model.Score)
	for _, sc := range all {
		byUser[sc.UserID] = append(byUser[sc.UserID], sc)
	}

	ids := make([]string, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}
	users, err := s.users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	ranked := make([]StudentPerformance, 0, len(byUser))
	for id, scores := range byUser {
		var sum, best float64
		for _, sc := range scores {
			sum += sc.Percentage
			if sc.Percentage > best {
				best = sc.Percentage
			}
		}
		ranked = append(ranked, StudentPerformance{
			UserID:            id,
			StudentName:       names[id],
			ExamsTaken:        len(scores),
			AveragePercentage: round2(sum / float64(len(scores))),
			BestPercentage:    best,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AveragePercentage != ranked[j].AveragePercentage {
			return ranked[i].AveragePercentage > ranked[j].AveragePercentage
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// QuestionDifficulty aggregates per-question correctness over every stored
// breakdown for the exam. Unanswered questions count as answered, not
// correct, so the rate reflects actual exam conditions.
func (s *AnalyticsService) QuestionDifficulty(examID string) ([]QuestionDifficulty, error) {
	if _, err := s.exams.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	scores, err := s.scores.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	type tally struct {
		text     string
		answered int
		correct  int
		order    int
	}
	tallies := make(map[string]*tally)
	next := 0

	for _, sc := range scores {
		for _, item := range sc.Breakdown {
			t, ok := tallies[item.QuestionID]
			if !ok {
				t = &tally{text: item.QuestionText, order: next}
				tallies[item.QuestionID] = t
				next++
			}
			t.answered++
			if item.IsCorrect {
				t.correct++
			}
		}
	}

	out := make([]QuestionDifficulty, 0, len(tallies))
	for id, t := range tallies {
		rate := 0.0
		if t.answered > 0 {
			rate = round2(float64(t.correct) / float64(t.answered) * 100)
		}
		out = append(out, QuestionDifficulty{
			QuestionID:   id,
			QuestionText: t.text,
			Answered:     t.answered,
			Correct:      t.correct,
			CorrectRate:  rate,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return tallies[out[i].QuestionID].order < tallies[out[j].QuestionID].order
	})
	return out, nil
}

func (s *AnalyticsService) joinStudents(scores []model.Score) ([]StudentScore, error) {
	if len(scores) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(scores))
	seen := make(map[string]bool)
	for _, sc := range scores {
		if !seen[sc.UserID] {
			seen[sc.UserID] = true
			ids = append(ids, sc.UserID)
		}
	}

	users, err := s.users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]StudentScore, 0, len(scores))
	for _, sc := range scores {
		out = append(out, StudentScore{
			UserID:      sc.UserID,
			StudentName: names[sc.UserID],
			AttemptID:   sc.AttemptID,
			Percentage:  sc.Percentage,
			TotalScore:  sc.TotalScore,
			MaxScore:    sc.MaxScore,
			IsPassed:    sc.IsPassed,
		})
	}
	return out, nil
}

// bandDistribution buckets percentages into ten ranges; 100 lands in the
// last band.
func bandDistribution(scores []model.Score) []ScoreBand {
	bands := make([]ScoreBand, 10)
	for i := range bands {
		hi := i*10 + 9
		if i == 9 {
			hi = 100
		}
		bands[i].Label = fmt.Sprintf("%d-%d", i*10, hi)
	}

	for _, sc := range scores {
		idx := int(sc.Percentage) / 10
		if idx > 9 {
			idx = 9
		}
		if idx < 0 {
			idx = 0
		}
		bands[idx].Count++
	}
	return bands
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
