package service

import "context"

// Completer is the single narrow contract every external AI call goes
// through. Implementations return the raw textual reply; callers must not
// assume it is valid structured data.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
