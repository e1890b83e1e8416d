package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")

	ErrMaterialNotFound = errors.New("material not found")
	ErrExamNotFound     = errors.New("exam not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAlreadyAttempted = errors.New("exam already attempted")
	ErrNoAttempts       = errors.New("no attempts found for this exam")

	// grading collaborator failures
	ErrQuestionFetch = errors.New("failed to fetch questions")
	ErrScorePersist  = errors.New("failed to save score")
)
