package services

import "testing"

func TestDeriveAudioAnalysis(t *testing.T) {
	features := audioFeatureResponse{
		DurationSeconds: 30,
		PauseDurations:  []float64{0.2, 0.8, 1.2, 0.4},
		PitchStd:        24.5,
		PitchDeltaStd:   0.1,
		VoicedFrames:    120,
		DominantEmotion: "hap",
	}
	// 9 words over 30 seconds
	analysis := deriveAudioAnalysis(features, "this answer has exactly nine words in it total")

	if analysis.SpeechSpeedWPM != 18 {
		t.Errorf("Expected 18 wpm, got %d", analysis.SpeechSpeedWPM)
	}
	if analysis.PauseCount != 2 {
		t.Errorf("Expected 2 pauses over the threshold, got %d", analysis.PauseCount)
	}
	if analysis.HesitationSeconds != 2.0 {
		t.Errorf("Expected 2.0s hesitation, got %v", analysis.HesitationSeconds)
	}
	if analysis.ClarityScore != 0.8 {
		t.Errorf("Expected clarity 0.8 (1 - 2/10), got %v", analysis.ClarityScore)
	}
	if analysis.PitchVariability != 24.5 {
		t.Errorf("Expected pitch variability 24.5, got %v", analysis.PitchVariability)
	}
	if analysis.ToneStability != 0.9 {
		t.Errorf("Expected tone stability 0.9, got %v", analysis.ToneStability)
	}
	if analysis.DominantEmotion != "hap" {
		t.Errorf("Expected classifier emotion label, got %q", analysis.DominantEmotion)
	}
}

func TestDeriveAudioAnalysisDegenerateAudio(t *testing.T) {
	analysis := deriveAudioAnalysis(audioFeatureResponse{DurationSeconds: 0}, "some words")

	if analysis.SpeechSpeedWPM != 0 || analysis.PauseCount != 0 || analysis.ClarityScore != 0 {
		t.Errorf("Expected zeroed scores for zero-duration audio, got %+v", analysis)
	}
	if analysis.DominantEmotion != "neutral" {
		t.Errorf("Expected neutral emotion for silent audio, got %q", analysis.DominantEmotion)
	}
}

func TestDeriveAudioAnalysisNoDetectablePitch(t *testing.T) {
	features := audioFeatureResponse{
		DurationSeconds: 10,
		VoicedFrames:    0,
	}
	analysis := deriveAudioAnalysis(features, "short answer")

	if analysis.PitchVariability != 0 {
		t.Errorf("Expected zero pitch variability without voiced frames, got %v", analysis.PitchVariability)
	}
	if analysis.ToneStability != 1.0 {
		t.Errorf("Expected default tone stability without voiced frames, got %v", analysis.ToneStability)
	}
	if analysis.DominantEmotion != "neutral" {
		t.Errorf("Expected neutral emotion default, got %q", analysis.DominantEmotion)
	}
}
