package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"prepmate/models"
)

// neutralScore substitutes for any rating the generative service failed to produce.
const neutralScore = 0.5

// TextAnalyzer scores a typed or transcribed answer against the sample answer.
type TextAnalyzer interface {
	Analyze(ctx context.Context, transcript, userAnswer, sampleAnswer string) (models.TextAnalysis, error)
}

// GrammarClient checks text against a LanguageTool-compatible endpoint.
type GrammarClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGrammarClient(baseURL string, timeout time.Duration) *GrammarClient {
	return &GrammarClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type grammarMatch struct {
	Message string `json:"message"`
}

func (c *GrammarClient) Check(ctx context.Context, text string) ([]grammarMatch, error) {
	form := url.Values{
		"text":     {text},
		"language": {"en-US"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("grammar service returned %d: %s", resp.StatusCode, string(msg))
	}

	var result struct {
		Matches []grammarMatch `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode grammar response: %w", err)
	}
	return result.Matches, nil
}

// TextAnalysisService combines the grammar checker with Gemini-rated relevance
// and technical depth. Analyze always returns a usable value: any sub-score
// its collaborators fail to produce is replaced by a neutral default.
type TextAnalysisService struct {
	grammar   *GrammarClient
	generator TextGenerator
}

func NewTextAnalysisService(grammar *GrammarClient, generator TextGenerator) *TextAnalysisService {
	return &TextAnalysisService{grammar: grammar, generator: generator}
}

func (s *TextAnalysisService) Analyze(ctx context.Context, transcript, userAnswer, sampleAnswer string) (models.TextAnalysis, error) {
	totalWords := len(strings.Fields(transcript))

	grammarScore := neutralScore
	grammarComments := []string{"Grammar check unavailable."}
	matches, err := s.grammar.Check(ctx, transcript)
	if err != nil {
		log.Printf("Grammar check degraded, using neutral score: %v", err)
	} else {
		grammarScore = round2(math.Max(0, 1-float64(len(matches))/float64(totalWords+1)))
		if len(matches) == 0 {
			grammarComments = []string{"No grammar issues detected."}
		} else {
			grammarComments = grammarComments[:0]
			for i, match := range matches {
				if i == 3 {
					break
				}
				grammarComments = append(grammarComments, match.Message)
			}
		}
	}

	relevancePrompt := fmt.Sprintf(
		"On a scale of 0 to 1, how relevant is the following answer to the expected one? Reply with the number only.\nUser Answer: %s\nSample Answer: %s",
		transcript, sampleAnswer,
	)
	depthPrompt := fmt.Sprintf(
		"On a scale of 0 to 1, rate the technical depth of this answer. Reply with the number only.\n%s",
		transcript,
	)

	return models.TextAnalysis{
		GrammarScore:        grammarScore,
		RelevanceScore:      s.rate(ctx, relevancePrompt),
		TechnicalDepthScore: s.rate(ctx, depthPrompt),
		GrammarComments:     grammarComments,
	}, nil
}

func (s *TextAnalysisService) rate(ctx context.Context, prompt string) float64 {
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("Rating request degraded, using neutral score: %v", err)
		return neutralScore
	}
	return parseScale(text)
}

// parseScale reads the leading numeric token of a model reply, clamped to
// [0, 1]. Anything unparseable falls back to the neutral default.
func parseScale(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return neutralScore
	}
	token := strings.Trim(fields[0], ".,")
	value, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(value) {
		return neutralScore
	}
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return round2(value)
}

// neutralTextAnalysis is the last-resort default if the whole text pipeline fails.
func neutralTextAnalysis() models.TextAnalysis {
	return models.TextAnalysis{
		GrammarScore:        neutralScore,
		RelevanceScore:      neutralScore,
		TechnicalDepthScore: neutralScore,
		GrammarComments:     []string{"Text analysis unavailable."},
	}
}
