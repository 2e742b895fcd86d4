package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"prepmate/models"
)

// ReviewGenerator produces the narrative review for one answered question.
// An empty string is a valid result and never blocks persistence.
type ReviewGenerator interface {
	Generate(ctx context.Context, transcript string, audio models.AudioAnalysis, text models.TextAnalysis) string
}

type GeminiReviewGenerator struct {
	generator TextGenerator
}

func NewGeminiReviewGenerator(generator TextGenerator) *GeminiReviewGenerator {
	return &GeminiReviewGenerator{generator: generator}
}

func (g *GeminiReviewGenerator) Generate(ctx context.Context, transcript string, audio models.AudioAnalysis, text models.TextAnalysis) string {
	contextData := map[string]interface{}{
		"transcript":     transcript,
		"audio_analysis": audio,
		"text_analysis":  text,
	}
	encoded, err := json.Marshal(contextData)
	if err != nil {
		log.Printf("Failed to encode review context: %v", err)
		return ""
	}

	prompt := fmt.Sprintf(
		`Context = %s
The above context represents the data of an interviewee. Please write a 500-700 word review neatly for him/her, providing suggestions for areas of improvement based on the above context.
IMPORTANT: PLEASE FOLLOW THE BELOW RULES
RULE 1: Write the review as if you are directly TALKING WITH HIM/HER.
RULE 2: Don't write anything extra, only write the review.
RULE 3: Don't include any main headings such as 'review', use side-headings for explaining.
RULE 4: If emotion analysis data is present then USE that for review also.
RULE 5: This review is for a mock interview taken on a practice website, so write the review based on that, but don't open with greetings or thanks.`,
		string(encoded),
	)

	review, err := g.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("Narrative review degraded to empty: %v", err)
		return ""
	}
	return review
}
