package models

import "time"

// Interview is the catalog document produced when a resume is turned into an
// interview. Questions and sample answers are parallel slices; the catalog may
// be partially generated, so sample_answers can be shorter than questions.
type Interview struct {
	InterviewID      string    `json:"interview_id" bson:"interview_id"`
	UserID           string    `json:"user_id" bson:"user_id"`
	Position         string    `json:"position" bson:"position"`
	JobDescription   string    `json:"job_description" bson:"job_description"`
	InterviewType    string    `json:"interview_type" bson:"interview_type"`
	DifficultyLevel  string    `json:"difficulty_level" bson:"difficulty_level"`
	ResumeHighlights string    `json:"resume_highlights" bson:"resume_highlights"`
	Questions        []string  `json:"questions" bson:"questions"`
	SampleAnswers    []string  `json:"sample_answers" bson:"sample_answers"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// InterviewSummary is the projection returned when listing a user's interviews.
type InterviewSummary struct {
	InterviewID     string    `json:"interview_id" bson:"interview_id"`
	Position        string    `json:"position" bson:"position"`
	InterviewType   string    `json:"interview_type" bson:"interview_type"`
	DifficultyLevel string    `json:"difficulty_level" bson:"difficulty_level"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}
