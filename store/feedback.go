package store

import (
	"context"
	"errors"

	"prepmate/models"
)

var (
	// ErrNotFound means no feedback record exists for the key.
	ErrNotFound = errors.New("feedback record not found")
	// ErrAlreadyExists means a create raced an existing record; callers
	// should fall back to appending an attempt.
	ErrAlreadyExists = errors.New("feedback record already exists")
	// ErrNoActiveAttempt means the record exists but holds zero attempts.
	ErrNoActiveAttempt = errors.New("feedback record has no attempts")
)

// Key identifies one user's feedback record for one interview.
type Key struct {
	InterviewID string
	UserID      string
}

// FeedbackStore owns all feedback records. Every mutation is read-modify-write
// atomic per key; mutations on distinct keys never contend with each other.
type FeedbackStore interface {
	Get(ctx context.Context, key Key) (*models.Feedback, error)

	// CreateWithFirstAttempt creates the record with attempt 1. Returns
	// ErrAlreadyExists when a record is already present.
	CreateWithFirstAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error)

	// AppendAttempt appends a fresh attempt numbered one past the current
	// count. Returns ErrNotFound when no record exists.
	AppendAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error)

	// AppendQuestionFeedback appends qf to the record's last attempt. The
	// returned bool is false when that attempt already holds an entry for
	// qf.QuestionIndex, in which case nothing was written.
	AppendQuestionFeedback(ctx context.Context, key Key, qf models.QuestionFeedback) (bool, error)
}
