// Package fetch provides the batch-fetch collaborator: given a subject and a
// limit, return recent posts mentioning the subject.
package fetch

import (
	"context"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// PostFetcher fetches recent posts about a subject. Implementations may
// return fewer posts than requested; callers must tolerate short batches.
type PostFetcher interface {
	FetchRecent(ctx context.Context, subject string, limit int) ([]domain.RawPost, error)
}
