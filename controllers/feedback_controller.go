package controllers

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"prepmate/services"
	"prepmate/store"
)

type FeedbackController struct {
	Sessions *services.SessionService
	Feedback *services.FeedbackService
}

type startSessionRequest struct {
	InterviewID string `json:"interviewId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// StartInterviewSession opens a new attempt for the (interview, user) pair.
func (fc *FeedbackController) StartInterviewSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	key := store.Key{InterviewID: req.InterviewID, UserID: req.UserID}
	attemptNumber, err := fc.Sessions.StartOrResumeAttempt(c.Request.Context(), key)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to start interview session: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"message":        "Interview session started successfully",
		"attempt_number": attemptNumber,
	})
}

// AnalyzeFeedback accepts one answered question as a multipart form, runs the
// analysis pipeline and persists the result on the current attempt.
func (fc *FeedbackController) AnalyzeFeedback(c *gin.Context) {
	interviewID := c.PostForm("interviewId")
	userID := c.PostForm("userId")
	answerText := c.PostForm("answerText")
	if interviewID == "" || userID == "" || answerText == "" {
		c.JSON(400, gin.H{"error": "interviewId, userId and answerText are required"})
		return
	}

	questionIndex, err := strconv.Atoi(c.PostForm("questionIndex"))
	if err != nil || questionIndex < 0 {
		c.JSON(400, gin.H{"error": "questionIndex must be a non-negative integer"})
		return
	}

	duration, err := strconv.ParseFloat(c.PostForm("duration"), 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "duration must be a number of seconds"})
		return
	}

	var audio []byte
	if file, err := c.FormFile("audio"); err == nil {
		opened, err := file.Open()
		if err != nil {
			c.JSON(400, gin.H{"error": "Failed to read audio upload: " + err.Error()})
			return
		}
		audio, err = io.ReadAll(opened)
		opened.Close()
		if err != nil {
			c.JSON(400, gin.H{"error": "Failed to read audio upload: " + err.Error()})
			return
		}
	}

	submission := services.AnswerSubmission{
		InterviewID:     interviewID,
		UserID:          userID,
		QuestionIndex:   questionIndex,
		AnswerText:      answerText,
		DurationSeconds: duration,
		Audio:           audio,
		Transcript:      c.PostForm("transcriptionText"),
	}

	if err := fc.Feedback.SubmitAnswerFeedback(c.Request.Context(), submission); err != nil {
		if errors.Is(err, services.ErrNoActiveSession) {
			c.JSON(400, gin.H{"error": "No active session found. Start interview session first."})
			return
		}
		log.Printf("Failed to persist feedback for interview %s user %s: %v", interviewID, userID, err)
		c.JSON(500, gin.H{"error": "Feedback processing failed: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "Feedback analysis complete and saved."})
}

// GetFeedback returns every attempt's feedback joined with catalog question text.
func (fc *FeedbackController) GetFeedback(c *gin.Context) {
	interviewID := c.Param("interviewId")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "userId query parameter is required"})
		return
	}

	key := store.Key{InterviewID: interviewID, UserID: userID}
	views, err := fc.Feedback.GetDisplayFeedback(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(404, gin.H{"error": "No feedback found for the given interview and user"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to retrieve feedback: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"feedback": views})
}
