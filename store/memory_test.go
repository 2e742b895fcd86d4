package store

import (
	"context"
	"sync"
	"testing"

	"prepmate/models"
)

func TestGetMissingRecord(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), Key{InterviewID: "ivw1", UserID: "u1"})
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing record, got %v", err)
	}
}

func TestCreateThenAppendAttempts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	attempt, err := s.CreateWithFirstAttempt(ctx, key)
	if err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}
	if attempt.AttemptNumber != 1 {
		t.Errorf("Expected first attempt number 1, got %d", attempt.AttemptNumber)
	}

	if _, err := s.CreateWithFirstAttempt(ctx, key); err != ErrAlreadyExists {
		t.Errorf("Expected ErrAlreadyExists on second create, got %v", err)
	}

	for want := 2; want <= 4; want++ {
		attempt, err := s.AppendAttempt(ctx, key)
		if err != nil {
			t.Fatalf("Failed to append attempt: %v", err)
		}
		if attempt.AttemptNumber != want {
			t.Errorf("Expected attempt number %d, got %d", want, attempt.AttemptNumber)
		}
	}
}

func TestAppendAttemptMissingRecord(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.AppendAttempt(context.Background(), Key{InterviewID: "ivw1", UserID: "u1"})
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAppendQuestionFeedbackDuplicateSuppressed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	if _, err := s.CreateWithFirstAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	first := models.QuestionFeedback{QuestionIndex: 0, UserAnswerText: "first"}
	appended, err := s.AppendQuestionFeedback(ctx, key, first)
	if err != nil {
		t.Fatalf("Failed to append question feedback: %v", err)
	}
	if !appended {
		t.Errorf("Expected first submission to be appended")
	}

	retry := models.QuestionFeedback{QuestionIndex: 0, UserAnswerText: "retry"}
	appended, err = s.AppendQuestionFeedback(ctx, key, retry)
	if err != nil {
		t.Fatalf("Duplicate submission returned error: %v", err)
	}
	if appended {
		t.Errorf("Expected duplicate submission to be suppressed")
	}

	record, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Failed to read record back: %v", err)
	}
	questions := record.Attempts[0].QuestionsFeedback
	if len(questions) != 1 {
		t.Fatalf("Expected exactly one entry for question 0, got %d", len(questions))
	}
	if questions[0].UserAnswerText != "first" {
		t.Errorf("Expected original entry to survive, got %q", questions[0].UserAnswerText)
	}
}

func TestAppendQuestionFeedbackTargetsLastAttempt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	if _, err := s.CreateWithFirstAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}
	if _, err := s.AppendQuestionFeedback(ctx, key, models.QuestionFeedback{QuestionIndex: 0}); err != nil {
		t.Fatalf("Failed to append to attempt 1: %v", err)
	}
	if _, err := s.AppendAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to append attempt 2: %v", err)
	}

	// Question 0 already exists on attempt 1; a new attempt starts clean.
	appended, err := s.AppendQuestionFeedback(ctx, key, models.QuestionFeedback{QuestionIndex: 0})
	if err != nil {
		t.Fatalf("Failed to append to attempt 2: %v", err)
	}
	if !appended {
		t.Errorf("Expected append to the new attempt to succeed")
	}

	record, _ := s.Get(ctx, key)
	if len(record.Attempts[0].QuestionsFeedback) != 1 {
		t.Errorf("Attempt 1 should be untouched, got %d entries", len(record.Attempts[0].QuestionsFeedback))
	}
	if len(record.Attempts[1].QuestionsFeedback) != 1 {
		t.Errorf("Attempt 2 should hold the new entry, got %d entries", len(record.Attempts[1].QuestionsFeedback))
	}
}

func TestAppendQuestionFeedbackWithoutAttempt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	_, err := s.AppendQuestionFeedback(ctx, key, models.QuestionFeedback{QuestionIndex: 0})
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound before record exists, got %v", err)
	}
}

func TestConcurrentAppendsStayGapless(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	if _, err := s.CreateWithFirstAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AppendAttempt(ctx, key); err != nil {
				t.Errorf("Concurrent append failed: %v", err)
			}
		}()
	}
	wg.Wait()

	record, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Failed to read record back: %v", err)
	}
	if len(record.Attempts) != n+1 {
		t.Fatalf("Expected %d attempts, got %d", n+1, len(record.Attempts))
	}
	for i, attempt := range record.Attempts {
		if attempt.AttemptNumber != i+1 {
			t.Errorf("Expected attempt %d at position %d, got %d", i+1, i, attempt.AttemptNumber)
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := Key{InterviewID: "ivw1", UserID: "u1"}

	if _, err := s.CreateWithFirstAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	record, _ := s.Get(ctx, key)
	record.Attempts[0].QuestionsFeedback = append(record.Attempts[0].QuestionsFeedback, models.QuestionFeedback{QuestionIndex: 9})

	fresh, _ := s.Get(ctx, key)
	if len(fresh.Attempts[0].QuestionsFeedback) != 0 {
		t.Errorf("Mutating a returned record leaked into the store")
	}
}
