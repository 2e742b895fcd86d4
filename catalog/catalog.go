package catalog

import (
	"context"
	"errors"

	"prepmate/models"
)

// ErrNotFound covers a missing interview and an out-of-range question or
// sample-answer index. Callers treat both as "not found", never as a failure.
var ErrNotFound = errors.New("interview not found in catalog")

// Reader is the read-only view the feedback engine has of the catalog.
type Reader interface {
	GetInterview(ctx context.Context, interviewID string) (*models.Interview, error)
	GetQuestions(ctx context.Context, interviewID string) ([]string, error)
	GetSampleAnswer(ctx context.Context, interviewID string, index int) (string, error)
}

// Store adds the write side used when interviews are generated upstream.
type Store interface {
	Reader
	InsertInterview(ctx context.Context, interview *models.Interview) error
	ListByUser(ctx context.Context, userID string) ([]models.InterviewSummary, error)
}
