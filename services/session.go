package services

import (
	"context"
	"errors"
	"log"

	"prepmate/models"
	"prepmate/store"
)

// ErrNoActiveSession means feedback was submitted before any attempt was
// started for the key. Surfaced to the user so they start a session first.
var ErrNoActiveSession = errors.New("no active interview session; start a session first")

// SessionService drives the attempt lifecycle of a feedback record. Attempt
// numbers are monotonic and gapless; abandoned attempts keep their number.
type SessionService struct {
	store store.FeedbackStore
}

func NewSessionService(feedbackStore store.FeedbackStore) *SessionService {
	return &SessionService{store: feedbackStore}
}

// StartOrResumeAttempt opens a fresh attempt for the key and returns its
// number. Deliberately not idempotent: every call produces a new attempt.
func (s *SessionService) StartOrResumeAttempt(ctx context.Context, key store.Key) (int, error) {
	for {
		_, err := s.store.Get(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			attempt, err := s.store.CreateWithFirstAttempt(ctx, key)
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost the create race to a concurrent start; append instead.
				continue
			}
			if err != nil {
				return 0, err
			}
			return attempt.AttemptNumber, nil
		case err != nil:
			return 0, err
		}

		attempt, err := s.store.AppendAttempt(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return attempt.AttemptNumber, nil
	}
}

// SubmitQuestionFeedback appends qf to the key's current attempt. A retry of
// an already-recorded question index is absorbed silently.
func (s *SessionService) SubmitQuestionFeedback(ctx context.Context, key store.Key, qf models.QuestionFeedback) error {
	appended, err := s.store.AppendQuestionFeedback(ctx, key, qf)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrNoActiveAttempt) {
		return ErrNoActiveSession
	}
	if err != nil {
		return err
	}
	if !appended {
		log.Printf("Dropping duplicate feedback for question %d (interview %s, user %s)",
			qf.QuestionIndex, key.InterviewID, key.UserID)
	}
	return nil
}
