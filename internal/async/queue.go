// Package async runs document extraction jobs on a bounded worker pool.
package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one document submitted for background extraction.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// Runner executes one job's document batch.
type Runner interface {
	RunDocument(ctx context.Context, path string) error
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
