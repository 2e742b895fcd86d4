package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepmate/catalog"
	"prepmate/models"
)

const questionCount = 5

var numberedLine = regexp.MustCompile(`^\d+\.`)

// InterviewService turns resume text into a catalog document: extracted
// highlights, generated questions and sample answers.
type InterviewService struct {
	catalog   catalog.Store
	generator TextGenerator
}

func NewInterviewService(catalogStore catalog.Store, generator TextGenerator) *InterviewService {
	return &InterviewService{catalog: catalogStore, generator: generator}
}

// InterviewRequest carries the inputs for catalog generation. ResumeText is
// already-extracted plain text; file parsing happens upstream.
type InterviewRequest struct {
	UserID          string
	Position        string
	JobDescription  string
	InterviewType   string
	DifficultyLevel string
	ResumeText      string
}

func (s *InterviewService) CreateInterview(ctx context.Context, req InterviewRequest) (*models.Interview, error) {
	highlights := s.extractHighlights(ctx, req.ResumeText)

	questions, err := s.generateQuestions(ctx, req, highlights)
	if err != nil {
		return nil, err
	}

	// Sample answers are generated best-effort; a partially generated catalog
	// is a supported state and the feedback engine falls back per question.
	answers := make([]string, 0, len(questions))
	for _, question := range questions {
		answer, err := s.generateSampleAnswer(ctx, req, question)
		if err != nil {
			log.Printf("Sample answer generation stopped at %d of %d: %v", len(answers), len(questions), err)
			break
		}
		answers = append(answers, answer)
	}

	interview := &models.Interview{
		InterviewID:      uuid.NewString(),
		UserID:           req.UserID,
		Position:         req.Position,
		JobDescription:   req.JobDescription,
		InterviewType:    req.InterviewType,
		DifficultyLevel:  req.DifficultyLevel,
		ResumeHighlights: highlights,
		Questions:        questions,
		SampleAnswers:    answers,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.catalog.InsertInterview(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// extractHighlights condenses the resume into the skills and projects worth
// asking about. Falls back to the raw text when the model is unavailable.
func (s *InterviewService) extractHighlights(ctx context.Context, resumeText string) string {
	prompt := fmt.Sprintf(
		`Summarize the following resume into a short plain-text list of the candidate's technical skills, notable projects and relevant experience. No headings, no commentary.

%s`,
		resumeText,
	)

	highlights, err := s.generator.GenerateText(ctx, prompt)
	if err != nil || highlights == "" {
		log.Printf("Resume highlight extraction degraded to raw text: %v", err)
		return truncate(resumeText, 2000)
	}
	return highlights
}

func (s *InterviewService) generateQuestions(ctx context.Context, req InterviewRequest, highlights string) ([]string, error) {
	prompt := fmt.Sprintf(
		`IMPORTANT: FOLLOW THE RULES STRICTLY
RULE 1: Write only the questions
RULE 2: Start each question with a number (e.g., 1., 2.)
RULE 3: Do NOT include any title, heading, extra lines, or explanations
RULE 4: Return ONLY the %d questions, nothing else

Generate %d %s level %s interview questions for a candidate applying for the position "%s".
Job description: %s
Candidate background: %s`,
		questionCount, questionCount, req.DifficultyLevel, req.InterviewType, req.Position, req.JobDescription, highlights,
	)

	response, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions := filterNumberedQuestions(response)
	if len(questions) == 0 {
		return nil, errors.New("model returned no usable questions")
	}
	return questions, nil
}

func (s *InterviewService) generateSampleAnswer(ctx context.Context, req InterviewRequest, question string) (string, error) {
	prompt := fmt.Sprintf(
		`Write a strong sample answer for the following %s interview question, as a %s level candidate for the position "%s" would give it. Return only the answer text.

Question: %s`,
		req.InterviewType, req.DifficultyLevel, req.Position, question,
	)
	return s.generator.GenerateText(ctx, prompt)
}

// filterNumberedQuestions keeps only lines that start with a number, dropping
// any preamble the model added despite the rules.
func filterNumberedQuestions(response string) []string {
	var questions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if numberedLine.MatchString(line) {
			questions = append(questions, line)
		}
	}
	return questions
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
