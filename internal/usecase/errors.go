package usecase

import "errors"

// Errors surfaced to callers. Unlike AI-boundary failures these indicate
// caller misuse and are returned as explicit rejections.
var (
	ErrSessionNotFound   = errors.New("interview session not found")
	ErrInvalidTransition = errors.New("operation not allowed in current session state")
	ErrAlreadyCompleted  = errors.New("interview session already completed")
	ErrNotReady          = errors.New("report not ready: session not completed")
	ErrNoQuestions       = errors.New("no questions available for session")
)
