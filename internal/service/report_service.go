package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type ReportService struct {
	exams  *repository.ExamRepository
	scores *repository.ScoreRepository
	users  *repository.UserRepository
}

func NewReportService(exams *repository.ExamRepository, scores *repository.ScoreRepository, users *repository.UserRepository) *ReportService {
	return &ReportService{exams: exams, scores: scores, users: users}
}

// ExamResultsCSV renders every graded result for the exam as a CSV document
// and suggests a download file name.
func (s *ReportService) ExamResultsCSV(examID string) ([]byte, string, error) {
	exam, err := s.exams.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrExamNotFound
		}
		return nil, "", err
	}

	scores, err := s.scores.ListByExam(examID)
	if err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(scores))
	seen := make(map[string]bool)
	for _, sc := range scores {
		if !seen[sc.UserID] {
			seen[sc.UserID] = true
			ids = append(ids, sc.UserID)
		}
	}

	users := make(map[string]model.User)
	if len(ids) > 0 {
		list, err := s.users.FindByIDs(ids)
		if err != nil {
			return nil, "", err
		}
		for _, u := range list {
			users[u.ID] = u
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Name", "Email", "Total Score", "Max Score", "Percentage", "Passed", "Graded At"}); err != nil {
		return nil, "", err
	}

	for _, sc := range scores {
		u := users[sc.UserID]
		passed := "no"
		if sc.IsPassed {
			passed = "yes"
		}
		record := []string{
			u.Name,
			u.Email,
			strconv.FormatFloat(sc.TotalScore, 'f', 2, 64),
			strconv.FormatFloat(sc.MaxScore, 'f', 2, 64),
			strconv.FormatFloat(sc.Percentage, 'f', 2, 64),
			passed,
			sc.GradedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("exam-results-%s-%s.csv", exam.ID, time.Now().Format("20060102"))
	return buf.Bytes(), fileName, nil
}

// StudentHistoryCSV renders one student's full score history, one row per
// graded exam, joined with exam titles.
func (s *ReportService) StudentHistoryCSV(userID string) ([]byte, string, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrUserNotFound
		}
		return nil, "", err
	}

	scores, err := s.scores.ListByUser(userID)
	if err != nil {
		return nil, "", err
	}

	titles := make(map[string]string)
	for _, sc := range scores {
		if _, ok := titles[sc.ExamID]; ok {
			continue
		}
		exam, err := s.exams.FindByID(sc.ExamID)
		if err != nil {
			// exam deleted after grading, keep the row with a blank title
			titles[sc.ExamID] = ""
			continue
		}
		titles[sc.ExamID] = exam.Title
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Exam", "Total Score", "Max Score", "Percentage", "Passed", "Graded At"}); err != nil {
		return nil, "", err
	}

	for _, sc := range scores {
		passed := "no"
		if sc.IsPassed {
			passed = "yes"
		}
		record := []string{
			titles[sc.ExamID],
			strconv.FormatFloat(sc.TotalScore, 'f', 2, 64),
			strconv.FormatFloat(sc.MaxScore, 'f', 2, 64),
			strconv.FormatFloat(sc.Percentage, 'f', 2, 64),
			passed,
			sc.GradedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("student-history-%s-%s.csv", user.ID, time.Now().Format("20060102"))
	return buf.Bytes(), fileName, nil
}
