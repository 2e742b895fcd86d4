package services

import (
	"context"
	"errors"
	"testing"
)

func TestParseScale(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", "0.8", 0.8},
		{"number with prose", "0.7 because the answer covers the key points", 0.7},
		{"trailing period", "0.9.", 0.9},
		{"integer one", "1", 1},
		{"clamped high", "7.5", 1},
		{"clamped low", "-0.3", 0},
		{"empty", "", neutralScore},
		{"junk", "I cannot rate this answer.", neutralScore},
	}

	for _, tc := range cases {
		if got := parseScale(tc.in); got != tc.want {
			t.Errorf("%s: parseScale(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

type fixedGenerator struct {
	text string
	err  error
}

func (g fixedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func TestRateFallsBackToNeutral(t *testing.T) {
	svc := NewTextAnalysisService(nil, fixedGenerator{err: errors.New("quota exceeded")})

	if got := svc.rate(context.Background(), "rate this"); got != neutralScore {
		t.Errorf("Expected neutral score on generator failure, got %v", got)
	}
}

func TestRateParsesGeneratorReply(t *testing.T) {
	svc := NewTextAnalysisService(nil, fixedGenerator{text: "0.65"})

	if got := svc.rate(context.Background(), "rate this"); got != 0.65 {
		t.Errorf("Expected 0.65, got %v", got)
	}
}
