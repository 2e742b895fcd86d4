package models

import "time"

// AudioAnalysis holds the speech-signal scores derived for one answer.
// A zero value stands for "no usable audio" and is a valid, persisted state.
type AudioAnalysis struct {
	ClarityScore      float64 `json:"clarity_score" bson:"clarity_score"`
	SpeechSpeedWPM    int     `json:"speech_speed_wpm" bson:"speech_speed_wpm"`
	PauseCount        int     `json:"pause_count" bson:"pause_count"`
	HesitationSeconds float64 `json:"hesitation_duration_seconds" bson:"hesitation_duration_seconds"`
	PitchVariability  float64 `json:"pitch_variability" bson:"pitch_variability"`
	ToneStability     float64 `json:"tone_stability" bson:"tone_stability"`
	DominantEmotion   string  `json:"dominant_emotion" bson:"dominant_emotion"`
	Comments          string  `json:"comments" bson:"comments"`
}

// TextAnalysis holds the text-quality scores for one answer. Scores are 0-1.
type TextAnalysis struct {
	GrammarScore        float64  `json:"grammar_score" bson:"grammar_score"`
	RelevanceScore      float64  `json:"relevance_score" bson:"relevance_score"`
	TechnicalDepthScore float64  `json:"technical_depth_score" bson:"technical_depth_score"`
	GrammarComments     []string `json:"grammar_comments" bson:"grammar_comments"`
}

// FeedbackPayload is the fixed-shape composition of the analysis blocks.
// New analysis kinds add a named field here rather than an untyped map entry.
type FeedbackPayload struct {
	Audio AudioAnalysis `json:"speech_analysis" bson:"speech_analysis"`
	Text  TextAnalysis  `json:"text_analysis" bson:"text_analysis"`
}

// QuestionFeedback is one answered question inside an attempt. The sample
// answer is snapshotted from the catalog at write time and never re-resolved.
type QuestionFeedback struct {
	QuestionIndex         int             `json:"question_index" bson:"question_index"`
	UserAnswerText        string          `json:"user_answer_text" bson:"user_answer_text"`
	Timestamp             time.Time       `json:"timestamp" bson:"timestamp"`
	AnswerDurationSeconds float64         `json:"answer_duration_seconds" bson:"answer_duration_seconds"`
	Feedback              FeedbackPayload `json:"feedback" bson:"feedback"`
	OverallComments       string          `json:"overall_comments" bson:"overall_comments"`
	SampleAnswer          string          `json:"sample_answer" bson:"sample_answer"`
}

// AttemptFeedback is one full run-through of an interview. Only the last
// attempt of a record accepts new question feedback.
type AttemptFeedback struct {
	AttemptNumber     int                `json:"attempt_number" bson:"attempt_number"`
	QuestionsFeedback []QuestionFeedback `json:"questions_feedback" bson:"questions_feedback"`
}

// Feedback is the durable per-(interview, user) document aggregating all attempts.
type Feedback struct {
	InterviewID string            `json:"interview_id" bson:"interview_id"`
	UserID      string            `json:"user_id" bson:"user_id"`
	Attempts    []AttemptFeedback `json:"attempts" bson:"attempts"`
}

// QuestionFeedbackView is a stored QuestionFeedback joined with the catalog
// question text for display.
type QuestionFeedbackView struct {
	QuestionIndex         int             `json:"question_index"`
	QuestionText          string          `json:"question_text"`
	UserAnswerText        string          `json:"user_answer_text"`
	Timestamp             time.Time       `json:"timestamp"`
	AnswerDurationSeconds float64         `json:"answer_duration_seconds"`
	OverallComments       string          `json:"overall_comments"`
	SampleAnswer          string          `json:"sample_answer"`
	Feedback              FeedbackPayload `json:"feedback"`
}

type AttemptView struct {
	AttemptNumber     int                    `json:"attempt_number"`
	QuestionsFeedback []QuestionFeedbackView `json:"questions_feedback"`
}
