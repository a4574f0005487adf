package interfaces

import "context"

// SummaryClient turns numeric aggregates into prose. The core has no
// dependency on the collaborator's contract beyond this.
type SummaryClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close() error
}
