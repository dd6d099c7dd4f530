package service

import "errors"

// Errors raised at the AI boundary. They are recovered into fallback results
// by the evaluator and analyzer and never propagate to the session flow.
var (
	// ErrServiceUnavailable means the completion service was unreachable or
	// timed out.
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrServiceRejected means the provider refused the request
	// (authentication, payment or quota).
	ErrServiceRejected = errors.New("completion service rejected request")

	// ErrDecodeFailed means a reply arrived but no strategy could extract
	// the expected structured data from it.
	ErrDecodeFailed = errors.New("failed to decode completion output")
)
