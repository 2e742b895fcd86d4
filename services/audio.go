package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"prepmate/models"
)

// Pauses longer than this count as hesitation.
const pauseThresholdSeconds = 0.5

// AnalysisError marks adapter input that could not be processed at all, as
// opposed to degraded results that substitute defaults.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// AudioAnalyzer turns raw answer audio plus its transcript into scores.
type AudioAnalyzer interface {
	ExtractFeatures(ctx context.Context, audio []byte, transcript string) (models.AudioAnalysis, error)
}

// audioFeatureResponse is the fixed shape returned by the audio feature
// sidecar: raw signal measurements, no scoring.
type audioFeatureResponse struct {
	DurationSeconds float64   `json:"duration_seconds"`
	PauseDurations  []float64 `json:"pause_durations"`
	PitchStd        float64   `json:"pitch_std"`
	PitchDeltaStd   float64   `json:"pitch_delta_std"`
	VoicedFrames    int       `json:"voiced_frames"`
	DominantEmotion string    `json:"dominant_emotion"`
}

// AudioFeatureClient posts recordings to the feature-extraction sidecar and
// derives the persisted scores from its measurements.
type AudioFeatureClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAudioFeatureClient(baseURL string, timeout time.Duration) *AudioFeatureClient {
	return &AudioFeatureClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AudioFeatureClient) ExtractFeatures(ctx context.Context, audio []byte, transcript string) (models.AudioAnalysis, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio", "answer.wav")
	if err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}
	if _, err := part.Write(audio); err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}
	if err := writer.WriteField("transcript", transcript); err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}
	if err := writer.Close(); err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: fmt.Errorf("feature service returned %d: %s", resp.StatusCode, string(msg))}
	}

	var features audioFeatureResponse
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return models.AudioAnalysis{}, &AnalysisError{Stage: "audio", Err: fmt.Errorf("failed to decode feature response: %w", err)}
	}

	return deriveAudioAnalysis(features, transcript), nil
}

// deriveAudioAnalysis converts raw measurements into the persisted scores.
// Degenerate audio (near-zero duration, no detectable pitch) yields neutral
// defaults instead of an error.
func deriveAudioAnalysis(features audioFeatureResponse, transcript string) models.AudioAnalysis {
	totalWords := len(strings.Fields(transcript))
	if features.DurationSeconds <= 0 {
		return models.AudioAnalysis{
			DominantEmotion: "neutral",
			Comments:        "No speech detected in the recording.",
		}
	}

	wpm := int(math.Round(float64(totalWords) / features.DurationSeconds * 60))

	pauseCount := 0
	hesitation := 0.0
	for _, pause := range features.PauseDurations {
		if pause > pauseThresholdSeconds {
			pauseCount++
			hesitation += pause
		}
	}

	clarity := round2(1 - float64(pauseCount)/float64(totalWords+1))

	pitchVariability := 0.0
	toneStability := 1.0
	if features.VoicedFrames > 1 {
		pitchVariability = round2(features.PitchStd)
		toneStability = round2(1 - features.PitchDeltaStd)
	}

	emotion := features.DominantEmotion
	if emotion == "" {
		emotion = "neutral"
	}

	return models.AudioAnalysis{
		ClarityScore:      clarity,
		SpeechSpeedWPM:    wpm,
		PauseCount:        pauseCount,
		HesitationSeconds: round2(hesitation),
		PitchVariability:  pitchVariability,
		ToneStability:     toneStability,
		DominantEmotion:   emotion,
		Comments:          "Focus on reducing unnecessary pauses and maintaining a consistent tone.",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
