package repository

import (
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, "id = ?", id).Error
	return &exam, err
}

// FindByIDWithQuestions loads the exam together with its ordered questions
// and their choices.
func (r *ExamRepository) FindByIDWithQuestions(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number asc")
		}).
		Preload("Questions.Choices").
		First(&exam, "id = ?", id).Error
	return &exam, err
}

func (r *ExamRepository) List(page, limit int, examType model.ExamType) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.DB.Model(&model.Exam{})
	if examType != "" {
		query = query.Where("type = ?", examType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.Question{}).Select("id").Where("exam_id = ?", id),
		).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, "id = ?", id).Error
	})
}

func (r *ExamRepository) Count(examType model.ExamType) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Exam{})
	if examType != "" {
		query = query.Where("type = ?", examType)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *ExamRepository) CountQuestions(examID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

// ListQuestionsWithChoices returns the exam's questions in authoring order,
// each with its choices. This is the read the grading service depends on.
func (r *ExamRepository) ListQuestionsWithChoices(examID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Preload("Choices").
		Where("exam_id = ?", examID).
		Order("order_number asc").
		Find(&questions).Error
	return questions, err
}

func (r *ExamRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *ExamRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error
	})
}

func (r *ExamRepository) DeleteQuestion(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}
