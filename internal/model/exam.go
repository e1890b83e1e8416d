package model

type ExamType string

const (
	ExamTypePDF       ExamType = "pdf"
	ExamTypeQuestions ExamType = "questions"
)

type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "mcq"
	QuestionTypeEssay QuestionType = "essay"
)

// swagger:model Exam
type Exam struct {
	UUIDBase
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Type        ExamType   `gorm:"size:20;not null;default:'questions'" json:"type"`
	PDFURL      string     `gorm:"size:500" json:"pdfUrl,omitempty"`
	CreatedBy   string     `gorm:"index;type:varchar(36)" json:"createdBy"`
	Questions   []Question `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// swagger:model Question
type Question struct {
	UUIDBase
	ExamID       string       `gorm:"index;type:varchar(36);not null" json:"examId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	OrderNumber  int          `gorm:"not null;default:0" json:"orderNumber"`
	Weight       float64      `gorm:"default:1" json:"weight"`
	QuestionType QuestionType `gorm:"size:20;default:'mcq'" json:"questionType"`
	Choices      []Choice     `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Choice
type Choice struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	ChoiceText string `gorm:"type:text;not null" json:"choiceText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}
