package catalog

import (
	"context"
	"sync"

	"prepmate/models"
)

// MemoryCatalog is an in-process catalog for tests and Mongo-less runs.
type MemoryCatalog struct {
	mu         sync.RWMutex
	interviews map[string]*models.Interview
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{interviews: make(map[string]*models.Interview)}
}

func (c *MemoryCatalog) GetInterview(ctx context.Context, interviewID string) (*models.Interview, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	interview, ok := c.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *interview
	return &clone, nil
}

func (c *MemoryCatalog) GetQuestions(ctx context.Context, interviewID string) ([]string, error) {
	interview, err := c.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return interview.Questions, nil
}

func (c *MemoryCatalog) GetSampleAnswer(ctx context.Context, interviewID string, index int) (string, error) {
	interview, err := c.GetInterview(ctx, interviewID)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(interview.SampleAnswers) {
		return "", ErrNotFound
	}
	return interview.SampleAnswers[index], nil
}

func (c *MemoryCatalog) InsertInterview(ctx context.Context, interview *models.Interview) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *interview
	c.interviews[interview.InterviewID] = &clone
	return nil
}

func (c *MemoryCatalog) ListByUser(ctx context.Context, userID string) ([]models.InterviewSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var summaries []models.InterviewSummary
	for _, interview := range c.interviews {
		if interview.UserID != userID {
			continue
		}
		summaries = append(summaries, models.InterviewSummary{
			InterviewID:     interview.InterviewID,
			Position:        interview.Position,
			InterviewType:   interview.InterviewType,
			DifficultyLevel: interview.DifficultyLevel,
			CreatedAt:       interview.CreatedAt,
		})
	}
	return summaries, nil
}
