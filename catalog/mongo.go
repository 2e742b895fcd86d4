package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prepmate/models"
)

// MongoCatalog reads and writes interview documents in the interviews collection.
type MongoCatalog struct {
	coll *mongo.Collection
}

func NewMongoCatalog(coll *mongo.Collection) *MongoCatalog {
	return &MongoCatalog{coll: coll}
}

func (c *MongoCatalog) GetInterview(ctx context.Context, interviewID string) (*models.Interview, error) {
	var interview models.Interview
	err := c.coll.FindOne(ctx, bson.M{"interview_id": interviewID}).Decode(&interview)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	return &interview, nil
}

func (c *MongoCatalog) GetQuestions(ctx context.Context, interviewID string) ([]string, error) {
	interview, err := c.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return interview.Questions, nil
}

func (c *MongoCatalog) GetSampleAnswer(ctx context.Context, interviewID string, index int) (string, error) {
	interview, err := c.GetInterview(ctx, interviewID)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(interview.SampleAnswers) {
		return "", ErrNotFound
	}
	return interview.SampleAnswers[index], nil
}

func (c *MongoCatalog) InsertInterview(ctx context.Context, interview *models.Interview) error {
	if _, err := c.coll.InsertOne(ctx, interview); err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

func (c *MongoCatalog) ListByUser(ctx context.Context, userID string) ([]models.InterviewSummary, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.InterviewSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode interviews: %w", err)
	}
	return summaries, nil
}
