package services

import "testing"

func TestFilterNumberedQuestions(t *testing.T) {
	response := `Here are your questions:

1. What is a goroutine?
2. Explain channel buffering.

Some closing remark.
3. How does the garbage collector work?`

	questions := filterNumberedQuestions(response)
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d: %v", len(questions), questions)
	}
	if questions[0] != "1. What is a goroutine?" {
		t.Errorf("Unexpected first question: %q", questions[0])
	}
	if questions[2] != "3. How does the garbage collector work?" {
		t.Errorf("Unexpected third question: %q", questions[2])
	}
}

func TestFilterNumberedQuestionsEmptyResponse(t *testing.T) {
	if got := filterNumberedQuestions("The model refused to answer."); got != nil {
		t.Errorf("Expected no questions from prose, got %v", got)
	}
}
