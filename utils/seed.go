package utils

import (
	"context"
	"log"
	"time"

	"prepmate/catalog"
	"prepmate/models"
)

const demoUserID = "demo-user"

// SeedDemoInterview inserts a fixed catalog entry so a fresh deployment has
// something to run a session against.
func SeedDemoInterview(ctx context.Context, catalogStore catalog.Store) {
	existing, err := catalogStore.ListByUser(ctx, demoUserID)
	if err != nil {
		log.Printf("Skipping demo interview seed: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	interview := &models.Interview{
		InterviewID:     "demo-interview",
		UserID:          demoUserID,
		Position:        "Backend Engineer",
		JobDescription:  "Build and operate Go services backed by MongoDB.",
		InterviewType:   "technical",
		DifficultyLevel: "intermediate",
		Questions: []string{
			"1. How would you design an idempotent API endpoint?",
			"2. What trade-offs come with denormalizing a document schema?",
			"3. How do you guard a read-modify-write cycle against lost updates?",
		},
		SampleAnswers: []string{
			"Use a client-supplied key so retries of the same logical request are detected and absorbed instead of applied twice.",
			"Denormalizing speeds up reads and keeps related data in one document, at the cost of larger writes and the risk of stale copies.",
			"Serialize writers per key, or make the update conditional on the state that was read and retry when the condition fails.",
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := catalogStore.InsertInterview(ctx, interview); err != nil {
		log.Printf("Failed to seed demo interview: %v", err)
		return
	}
	log.Println("Seeded demo interview")
}
