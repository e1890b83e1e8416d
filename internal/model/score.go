package model

import "time"

type GradingType string

const (
	GradingAuto   GradingType = "auto"
	GradingManual GradingType = "manual"
	GradingMixed  GradingType = "mixed"
)

// Score is the authoritative grading result for one attempt. It is written
// only by the grading service; re-grading overwrites via upsert on attempt_id.
// swagger:model Score
type Score struct {
	UUIDBase
	AttemptID   string               `gorm:"type:varchar(36);not null;uniqueIndex" json:"attemptId"`
	ExamID      string               `gorm:"index;type:varchar(36);not null" json:"examId"`
	UserID      string               `gorm:"index;type:varchar(36);not null" json:"userId"`
	TotalScore  float64              `json:"totalScore"`
	MaxScore    float64              `json:"maxScore"`
	Percentage  float64              `json:"percentage"`
	IsPassed    bool                 `json:"isPassed"`
	GradingType GradingType          `gorm:"size:20;default:'auto'" json:"gradingType"`
	GradedAt    time.Time            `json:"gradedAt"`
	Breakdown   []ScoreBreakdownItem `gorm:"serializer:json" json:"breakdown"`
}

func (Score) TableName() string {
	return "scores"
}

// ScoreBreakdownItem is the per-question grading detail embedded in a Score.
// swagger:model ScoreBreakdownItem
type ScoreBreakdownItem struct {
	QuestionID         string  `json:"question_id"`
	QuestionText       string  `json:"question_text"`
	Weight             float64 `json:"weight"`
	IsCorrect          bool    `json:"is_correct"`
	SelectedChoiceID   *string `json:"selected_choice_id"`
	CorrectChoiceID    string  `json:"correct_choice_id"`
	SelectedChoiceText *string `json:"selected_choice_text"`
	CorrectChoiceText  string  `json:"correct_choice_text"`
}
