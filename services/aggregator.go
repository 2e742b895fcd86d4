package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"prepmate/catalog"
	"prepmate/models"
	"prepmate/store"
)

const (
	sampleAnswerFallback = "Sample answer not found."
	questionTextFallback = "Question not found"
)

// AnswerSubmission is one question's answer as received from the client.
// Audio and Transcript are optional; a typed-only answer is analyzed as text.
type AnswerSubmission struct {
	InterviewID     string
	UserID          string
	QuestionIndex   int
	AnswerText      string
	DurationSeconds float64
	Audio           []byte
	Transcript      string
}

// FeedbackService orchestrates the analysis adapters for one submission and
// merges their outputs into a durable question-feedback entry.
type FeedbackService struct {
	sessions        *SessionService
	store           store.FeedbackStore
	catalog         catalog.Reader
	audio           AudioAnalyzer
	text            TextAnalyzer
	review          ReviewGenerator
	analysisTimeout time.Duration
}

func NewFeedbackService(
	sessions *SessionService,
	feedbackStore store.FeedbackStore,
	catalogReader catalog.Reader,
	audio AudioAnalyzer,
	text TextAnalyzer,
	review ReviewGenerator,
	analysisTimeout time.Duration,
) *FeedbackService {
	return &FeedbackService{
		sessions:        sessions,
		store:           feedbackStore,
		catalog:         catalogReader,
		audio:           audio,
		text:            text,
		review:          review,
		analysisTimeout: analysisTimeout,
	}
}

// SubmitAnswerFeedback runs the full pipeline for one answer: sample-answer
// lookup, audio + text analysis in parallel, narrative review, then an
// idempotent append to the current attempt. Analysis failures degrade to
// defaults; only a missing session or a store failure aborts the submission.
func (s *FeedbackService) SubmitAnswerFeedback(ctx context.Context, sub AnswerSubmission) error {
	transcript := sub.Transcript
	if transcript == "" {
		transcript = sub.AnswerText
	}

	sampleAnswer, err := s.catalog.GetSampleAnswer(ctx, sub.InterviewID, sub.QuestionIndex)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			log.Printf("Catalog lookup degraded for interview %s: %v", sub.InterviewID, err)
		}
		sampleAnswer = sampleAnswerFallback
	}

	var audioResult models.AudioAnalysis
	var textResult models.TextAnalysis
	var wg sync.WaitGroup

	if len(sub.Audio) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			audioCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
			defer cancel()
			result, err := s.audio.ExtractFeatures(audioCtx, sub.Audio, transcript)
			if err != nil {
				// Zero-valued audio fields are persisted instead.
				log.Printf("Audio analysis degraded for interview %s question %d: %v",
					sub.InterviewID, sub.QuestionIndex, err)
				return
			}
			audioResult = result
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		textCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
		defer cancel()
		result, err := s.text.Analyze(textCtx, transcript, sub.AnswerText, sampleAnswer)
		if err != nil {
			log.Printf("Text analysis degraded for interview %s question %d: %v",
				sub.InterviewID, sub.QuestionIndex, err)
			textResult = neutralTextAnalysis()
			return
		}
		textResult = result
	}()

	wg.Wait()

	reviewCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
	defer cancel()
	narrative := s.review.Generate(reviewCtx, transcript, audioResult, textResult)

	qf := models.QuestionFeedback{
		QuestionIndex:         sub.QuestionIndex,
		UserAnswerText:        sub.AnswerText,
		Timestamp:             time.Now().UTC(),
		AnswerDurationSeconds: sub.DurationSeconds,
		Feedback: models.FeedbackPayload{
			Audio: audioResult,
			Text:  textResult,
		},
		OverallComments: narrative,
		SampleAnswer:    sampleAnswer,
	}

	key := store.Key{InterviewID: sub.InterviewID, UserID: sub.UserID}
	return s.sessions.SubmitQuestionFeedback(ctx, key, qf)
}

// GetDisplayFeedback joins the stored record with catalog question text.
// Indexes the catalog no longer covers render the fallback text; a missing
// catalog never fails the read.
func (s *FeedbackService) GetDisplayFeedback(ctx context.Context, key store.Key) ([]models.AttemptView, error) {
	record, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	questions, err := s.catalog.GetQuestions(ctx, key.InterviewID)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		questions = nil
	}

	views := make([]models.AttemptView, 0, len(record.Attempts))
	for _, attempt := range record.Attempts {
		view := models.AttemptView{
			AttemptNumber:     attempt.AttemptNumber,
			QuestionsFeedback: make([]models.QuestionFeedbackView, 0, len(attempt.QuestionsFeedback)),
		}
		for _, qf := range attempt.QuestionsFeedback {
			questionText := questionTextFallback
			if qf.QuestionIndex >= 0 && qf.QuestionIndex < len(questions) {
				questionText = questions[qf.QuestionIndex]
			}
			view.QuestionsFeedback = append(view.QuestionsFeedback, models.QuestionFeedbackView{
				QuestionIndex:         qf.QuestionIndex,
				QuestionText:          questionText,
				UserAnswerText:        qf.UserAnswerText,
				Timestamp:             qf.Timestamp,
				AnswerDurationSeconds: qf.AnswerDurationSeconds,
				OverallComments:       qf.OverallComments,
				SampleAnswer:          qf.SampleAnswer,
				Feedback:              qf.Feedback,
			})
		}
		views = append(views, view)
	}
	return views, nil
}
