package services

import (
	"context"
	"sort"
	"sync"
	"testing"

	"prepmate/models"
	"prepmate/store"
)

func TestStartOrResumeAttemptNumbering(t *testing.T) {
	sessions := NewSessionService(store.NewMemoryStore())
	ctx := context.Background()
	key := store.Key{InterviewID: "ivw1", UserID: "u1"}

	for want := 1; want <= 3; want++ {
		got, err := sessions.StartOrResumeAttempt(ctx, key)
		if err != nil {
			t.Fatalf("Failed to start attempt: %v", err)
		}
		if got != want {
			t.Errorf("Expected attempt number %d, got %d", want, got)
		}
	}
}

func TestStartOrResumeAttemptIsPerKey(t *testing.T) {
	sessions := NewSessionService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := sessions.StartOrResumeAttempt(ctx, store.Key{InterviewID: "ivw1", UserID: "u1"}); err != nil {
		t.Fatalf("Failed to start attempt: %v", err)
	}

	got, err := sessions.StartOrResumeAttempt(ctx, store.Key{InterviewID: "ivw1", UserID: "u2"})
	if err != nil {
		t.Fatalf("Failed to start attempt for second user: %v", err)
	}
	if got != 1 {
		t.Errorf("Expected a fresh key to start at attempt 1, got %d", got)
	}
}

func TestSubmitBeforeStartFails(t *testing.T) {
	memStore := store.NewMemoryStore()
	sessions := NewSessionService(memStore)
	ctx := context.Background()
	key := store.Key{InterviewID: "ivw1", UserID: "u1"}

	err := sessions.SubmitQuestionFeedback(ctx, key, models.QuestionFeedback{QuestionIndex: 0})
	if err != ErrNoActiveSession {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}

	if _, err := memStore.Get(ctx, key); err != store.ErrNotFound {
		t.Errorf("Expected nothing persisted, got %v", err)
	}
}

func TestDuplicateSubmissionIsSilentlyAbsorbed(t *testing.T) {
	memStore := store.NewMemoryStore()
	sessions := NewSessionService(memStore)
	ctx := context.Background()
	key := store.Key{InterviewID: "ivw1", UserID: "u1"}

	if _, err := sessions.StartOrResumeAttempt(ctx, key); err != nil {
		t.Fatalf("Failed to start attempt: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := sessions.SubmitQuestionFeedback(ctx, key, models.QuestionFeedback{QuestionIndex: 0}); err != nil {
			t.Fatalf("Submission %d returned error: %v", i+1, err)
		}
	}

	record, err := memStore.Get(ctx, key)
	if err != nil {
		t.Fatalf("Failed to read record back: %v", err)
	}
	if got := len(record.Attempts[0].QuestionsFeedback); got != 1 {
		t.Errorf("Expected exactly one entry after a duplicate submission, got %d", got)
	}
}

func TestConcurrentStartsYieldGaplessNumbers(t *testing.T) {
	sessions := NewSessionService(store.NewMemoryStore())
	ctx := context.Background()
	key := store.Key{InterviewID: "ivw1", UserID: "u1"}

	const n = 32
	numbers := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			number, err := sessions.StartOrResumeAttempt(ctx, key)
			if err != nil {
				t.Errorf("Concurrent start failed: %v", err)
				return
			}
			numbers[slot] = number
		}(i)
	}
	wg.Wait()

	sort.Ints(numbers)
	for i, number := range numbers {
		if number != i+1 {
			t.Fatalf("Expected attempt numbers 1..%d with no duplicates or gaps, got %v", n, numbers)
		}
	}
}
