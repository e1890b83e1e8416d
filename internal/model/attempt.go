package model

import "time"

// ExamAttempt is one student's submission for one exam. A student holds at
// most one attempt per exam; retaking deletes the attempt (and its Score)
// before resubmitting.
// swagger:model ExamAttempt
type ExamAttempt struct {
	UUIDBase
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_exam" json:"userId"`
	ExamID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_exam;index" json:"examId"`
	// question_id -> chosen choice_id; keys need not cover every question
	Answers map[string]string `gorm:"serializer:json" json:"answers"`
	// legacy rounded percentage kept in sync for older consumers
	Score       *int      `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}
