package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type ExamService struct {
	exams   *repository.ExamRepository
	storage StorageProvider
}

func NewExamService(exams *repository.ExamRepository, storage StorageProvider) *ExamService {
	return &ExamService{exams: exams, storage: storage}
}

type ChoiceInput struct {
	ID         string `json:"id"`
	ChoiceText string `json:"choiceText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionInput struct {
	ID           string             `json:"id"`
	QuestionText string             `json:"questionText" binding:"required"`
	OrderNumber  int                `json:"orderNumber"`
	Weight       float64            `json:"weight"`
	QuestionType model.QuestionType `json:"questionType"`
	Choices      []ChoiceInput      `json:"choices"`
}

type CreateExamRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1"`
}

type UpdateExamRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description"`
	// when present, the full question set is reconciled against it
	Questions []QuestionInput `json:"questions"`
}

func (s *ExamService) Create(req *CreateExamRequest, createdBy string) (*model.Exam, error) {
	exam := &model.Exam{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.ExamTypeQuestions,
		CreatedBy:   createdBy,
	}
	for i, q := range req.Questions {
		exam.Questions = append(exam.Questions, buildQuestion(q, i))
	}

	if err := s.exams.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// CreatePDF registers a PDF-based exam whose questions live in the uploaded
// document rather than in the questions table.
func (s *ExamService) CreatePDF(ctx context.Context, title, description, fileName string, file io.Reader, size int64, contentType, createdBy string) (*model.Exam, error) {
	objectName := ObjectName("exams", fileName)
	pdfURL, err := s.storage.Upload(ctx, objectName, file, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload exam pdf: %w", err)
	}

	exam := &model.Exam{
		Title:       title,
		Description: description,
		Type:        model.ExamTypePDF,
		PDFURL:      pdfURL,
		CreatedBy:   createdBy,
	}
	if err := s.exams.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) GetByID(id string) (*model.Exam, error) {
	exam, err := s.exams.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

// GetForStudent returns the exam with answer keys removed so the payload is
// safe to hand to a test taker.
func (s *ExamService) GetForStudent(id string) (*model.Exam, error) {
	exam, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	for qi := range exam.Questions {
		for ci := range exam.Questions[qi].Choices {
			exam.Questions[qi].Choices[ci].IsCorrect = false
		}
	}
	return exam, nil
}

func (s *ExamService) List(page, limit int, examType model.ExamType) ([]model.Exam, int64, error) {
	return s.exams.List(page, limit, examType)
}

// Update changes exam metadata and, when the request carries a question
// set, reconciles it: questions with a known ID are replaced, ones without
// an ID are created, and stored questions absent from the request are
// deleted.
func (s *ExamService) Update(id string, req *UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.exams.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Description != "" {
		exam.Description = req.Description
	}

	// the Save path must not touch associations, reconcile handles them
	meta := *exam
	meta.Questions = nil
	if err := s.exams.Update(&meta); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		if err := s.reconcileQuestions(exam, req.Questions); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

func (s *ExamService) reconcileQuestions(exam *model.Exam, inputs []QuestionInput) error {
	keep := make(map[string]bool, len(inputs))

	for i, input := range inputs {
		q := buildQuestion(input, i)
		q.ExamID = exam.ID

		if input.ID == "" {
			if err := s.exams.CreateQuestion(&q); err != nil {
				return err
			}
		} else {
			for ci := range q.Choices {
				q.Choices[ci].QuestionID = input.ID
			}
			if err := s.exams.UpdateQuestion(&q); err != nil {
				return err
			}
		}
		keep[q.ID] = true
	}

	for _, old := range exam.Questions {
		if !keep[old.ID] {
			if err := s.exams.DeleteQuestion(old.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	exam, err := s.exams.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}

	if err := s.exams.Delete(id); err != nil {
		return err
	}

	if exam.Type == model.ExamTypePDF && exam.PDFURL != "" {
		// best effort, the record is already gone
		s.storage.Delete(ctx, ObjectNameFromURL(exam.PDFURL))
	}
	return nil
}

func (s *ExamService) AddQuestion(examID string, input *QuestionInput) (*model.Question, error) {
	if _, err := s.exams.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	count, err := s.exams.CountQuestions(examID)
	if err != nil {
		return nil, err
	}

	question := buildQuestion(*input, int(count))
	question.ExamID = examID
	if err := s.exams.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion replaces the question text, weight, type and its full choice
// set. Choices carrying a known ID keep it; the rest are recreated.
func (s *ExamService) UpdateQuestion(examID, questionID string, input *QuestionInput) (*model.Question, error) {
	question := buildQuestion(*input, input.OrderNumber)
	question.ID = questionID
	question.ExamID = examID
	for i := range question.Choices {
		question.Choices[i].QuestionID = questionID
	}

	if err := s.exams.UpdateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *ExamService) DeleteQuestion(questionID string) error {
	return s.exams.DeleteQuestion(questionID)
}

func buildQuestion(input QuestionInput, defaultOrder int) model.Question {
	qType := input.QuestionType
	if qType == "" {
		qType = model.QuestionTypeMCQ
	}
	weight := input.Weight
	if weight == 0 {
		weight = 1
	}
	order := input.OrderNumber
	if order == 0 {
		order = defaultOrder
	}

	q := model.Question{
		QuestionText: input.QuestionText,
		OrderNumber:  order,
		Weight:       weight,
		QuestionType: qType,
	}
	q.ID = input.ID
	for _, c := range input.Choices {
		choice := model.Choice{
			ChoiceText: c.ChoiceText,
			IsCorrect:  c.IsCorrect,
		}
		choice.ID = c.ID
		q.Choices = append(q.Choices, choice)
	}
	return q
}
