package store

import (
	"context"
	"sync"

	"prepmate/models"
)

// MemoryStore keeps feedback records in process memory under a per-key mutex.
// It backs the test suite and local runs without a MongoDB instance.
type MemoryStore struct {
	mu      sync.Mutex
	records map[Key]*models.Feedback
	locks   map[Key]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[Key]*models.Feedback),
		locks:   make(map[Key]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing mutations for one key. The map-level
// mutex is held only long enough to fetch it, so distinct keys do not contend.
func (s *MemoryStore) keyLock(key Key) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (*models.Feedback, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	record, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(record), nil
}

func (s *MemoryStore) CreateWithFirstAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if _, ok := s.records[key]; ok {
		return models.AttemptFeedback{}, ErrAlreadyExists
	}

	attempt := models.AttemptFeedback{
		AttemptNumber:     1,
		QuestionsFeedback: []models.QuestionFeedback{},
	}
	s.records[key] = &models.Feedback{
		InterviewID: key.InterviewID,
		UserID:      key.UserID,
		Attempts:    []models.AttemptFeedback{attempt},
	}
	return attempt, nil
}

func (s *MemoryStore) AppendAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	record, ok := s.records[key]
	if !ok {
		return models.AttemptFeedback{}, ErrNotFound
	}

	attempt := models.AttemptFeedback{
		AttemptNumber:     len(record.Attempts) + 1,
		QuestionsFeedback: []models.QuestionFeedback{},
	}
	record.Attempts = append(record.Attempts, attempt)
	return attempt, nil
}

func (s *MemoryStore) AppendQuestionFeedback(ctx context.Context, key Key, qf models.QuestionFeedback) (bool, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	record, ok := s.records[key]
	if !ok {
		return false, ErrNotFound
	}
	if len(record.Attempts) == 0 {
		return false, ErrNoActiveAttempt
	}

	last := &record.Attempts[len(record.Attempts)-1]
	for _, existing := range last.QuestionsFeedback {
		if existing.QuestionIndex == qf.QuestionIndex {
			return false, nil
		}
	}
	last.QuestionsFeedback = append(last.QuestionsFeedback, qf)
	return true, nil
}

// copyRecord deep-copies a record so callers cannot mutate stored state.
func copyRecord(record *models.Feedback) *models.Feedback {
	out := &models.Feedback{
		InterviewID: record.InterviewID,
		UserID:      record.UserID,
		Attempts:    make([]models.AttemptFeedback, len(record.Attempts)),
	}
	for i, attempt := range record.Attempts {
		questions := make([]models.QuestionFeedback, len(attempt.QuestionsFeedback))
		copy(questions, attempt.QuestionsFeedback)
		out.Attempts[i] = models.AttemptFeedback{
			AttemptNumber:     attempt.AttemptNumber,
			QuestionsFeedback: questions,
		}
	}
	return out
}
