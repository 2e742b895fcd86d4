package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"prepmate/catalog"
	"prepmate/services"
)

type InterviewController struct {
	Interviews *services.InterviewService
	Catalog    catalog.Store
}

type createInterviewRequest struct {
	UserID          string `json:"userId" binding:"required"`
	Position        string `json:"position" binding:"required"`
	JobDescription  string `json:"jobDescription" binding:"required"`
	InterviewType   string `json:"interviewType" binding:"required"`
	DifficultyLevel string `json:"difficultyLevel" binding:"required"`
	ResumeText      string `json:"resumeText" binding:"required"`
}

// CreateInterview generates a catalog document from resume text.
func (ic *InterviewController) CreateInterview(c *gin.Context) {
	var req createInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	interview, err := ic.Interviews.CreateInterview(c.Request.Context(), services.InterviewRequest{
		UserID:          req.UserID,
		Position:        req.Position,
		JobDescription:  req.JobDescription,
		InterviewType:   req.InterviewType,
		DifficultyLevel: req.DifficultyLevel,
		ResumeText:      req.ResumeText,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create interview: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"message":        "Resume processed successfully!",
		"interview_id":   interview.InterviewID,
		"questions":      interview.Questions,
		"sample_answers": interview.SampleAnswers,
	})
}

func (ic *InterviewController) GetInterviewDetails(c *gin.Context) {
	interview, err := ic.Catalog.GetInterview(c.Request.Context(), c.Param("interviewId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Interview not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load interview: " + err.Error()})
		return
	}
	c.JSON(200, interview)
}

func (ic *InterviewController) GetQuestions(c *gin.Context) {
	questions, err := ic.Catalog.GetQuestions(c.Request.Context(), c.Param("interviewId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Interview or questions not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load questions: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"questions": questions})
}

// GetNextQuestion pages through the question list one index at a time.
func (ic *InterviewController) GetNextQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil || index < 0 {
		c.JSON(400, gin.H{"error": "index must be a non-negative integer"})
		return
	}

	questions, err := ic.Catalog.GetQuestions(c.Request.Context(), c.Param("interviewId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Interview or questions not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load questions: " + err.Error()})
		return
	}

	if index >= len(questions) {
		c.JSON(200, gin.H{"message": "No more questions", "is_complete": true})
		return
	}

	c.JSON(200, gin.H{
		"question_number": index + 1,
		"question":        questions[index],
		"is_complete":     false,
	})
}

func (ic *InterviewController) ListUserInterviews(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "userId query parameter is required"})
		return
	}

	summaries, err := ic.Catalog.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list interviews: " + err.Error()})
		return
	}
	if len(summaries) == 0 {
		c.JSON(404, gin.H{"error": "No interviews found for this user"})
		return
	}

	c.JSON(200, gin.H{"interviews": summaries})
}
