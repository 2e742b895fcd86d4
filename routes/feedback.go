package routes

import (
	"github.com/gin-gonic/gin"

	"prepmate/controllers"
)

// SetupFeedbackRoutes wires the session and feedback endpoints
func SetupFeedbackRoutes(router *gin.RouterGroup, fc *controllers.FeedbackController) {
	feedback := router.Group("/feedback")
	{
		feedback.POST("/session/start", fc.StartInterviewSession)
		feedback.POST("/analyze", fc.AnalyzeFeedback)
		feedback.GET("/:interviewId", fc.GetFeedback)
	}
}
