package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prepmate/models"
)

// maxUpdateRetries bounds the optimistic-concurrency loops. Contention on a
// single (interview, user) record is a handful of browser tabs at worst.
const maxUpdateRetries = 16

// MongoStore persists feedback records in a MongoDB collection, one document
// per (interview_id, user_id). Appends are conditional on the current length
// of the attempts array, so concurrent writers retry instead of losing updates.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes creates the unique (interview_id, user_id) index that backs
// CreateWithFirstAttempt's existence check.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "interview_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create feedback index: %w", err)
	}
	return nil
}

func keyFilter(key Key) bson.M {
	return bson.M{"interview_id": key.InterviewID, "user_id": key.UserID}
}

func (s *MongoStore) Get(ctx context.Context, key Key) (*models.Feedback, error) {
	var record models.Feedback
	err := s.coll.FindOne(ctx, keyFilter(key)).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback record: %w", err)
	}
	return &record, nil
}

func (s *MongoStore) CreateWithFirstAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error) {
	attempt := models.AttemptFeedback{
		AttemptNumber:     1,
		QuestionsFeedback: []models.QuestionFeedback{},
	}
	record := models.Feedback{
		InterviewID: key.InterviewID,
		UserID:      key.UserID,
		Attempts:    []models.AttemptFeedback{attempt},
	}

	_, err := s.coll.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return models.AttemptFeedback{}, ErrAlreadyExists
	}
	if err != nil {
		return models.AttemptFeedback{}, fmt.Errorf("failed to create feedback record: %w", err)
	}
	return attempt, nil
}

func (s *MongoStore) AppendAttempt(ctx context.Context, key Key) (models.AttemptFeedback, error) {
	for i := 0; i < maxUpdateRetries; i++ {
		record, err := s.Get(ctx, key)
		if err != nil {
			return models.AttemptFeedback{}, err
		}

		count := len(record.Attempts)
		attempt := models.AttemptFeedback{
			AttemptNumber:     count + 1,
			QuestionsFeedback: []models.QuestionFeedback{},
		}

		// Conditional on the attempt count observed above; a concurrent
		// append changes the size and forces a re-read.
		filter := keyFilter(key)
		filter["attempts"] = bson.M{"$size": count}

		res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"attempts": attempt}})
		if err != nil {
			return models.AttemptFeedback{}, fmt.Errorf("failed to append attempt: %w", err)
		}
		if res.ModifiedCount == 1 {
			return attempt, nil
		}
	}
	return models.AttemptFeedback{}, fmt.Errorf("failed to append attempt: too much contention on %s/%s", key.InterviewID, key.UserID)
}

func (s *MongoStore) AppendQuestionFeedback(ctx context.Context, key Key, qf models.QuestionFeedback) (bool, error) {
	for i := 0; i < maxUpdateRetries; i++ {
		record, err := s.Get(ctx, key)
		if err != nil {
			return false, err
		}

		count := len(record.Attempts)
		if count == 0 {
			return false, ErrNoActiveAttempt
		}

		last := record.Attempts[count-1]
		for _, existing := range last.QuestionsFeedback {
			if existing.QuestionIndex == qf.QuestionIndex {
				return false, nil
			}
		}

		// The filter re-checks both the attempt count and the absence of the
		// question index, so the duplicate suppression itself is atomic.
		questionPath := fmt.Sprintf("attempts.%d.questions_feedback", count-1)
		filter := keyFilter(key)
		filter["attempts"] = bson.M{"$size": count}
		filter[questionPath+".question_index"] = bson.M{"$ne": qf.QuestionIndex}

		res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{questionPath: qf}})
		if err != nil {
			return false, fmt.Errorf("failed to append question feedback: %w", err)
		}
		if res.ModifiedCount == 1 {
			return true, nil
		}
	}
	return false, fmt.Errorf("failed to append question feedback: too much contention on %s/%s", key.InterviewID, key.UserID)
}
