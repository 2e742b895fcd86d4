package routes

import (
	"github.com/gin-gonic/gin"

	"prepmate/controllers"
)

// SetupInterviewRoutes wires the catalog endpoints
func SetupInterviewRoutes(router *gin.RouterGroup, ic *controllers.InterviewController) {
	interview := router.Group("/interview")
	{
		interview.POST("/create", ic.CreateInterview)
		interview.GET("/list", ic.ListUserInterviews)
		interview.GET("/:interviewId", ic.GetInterviewDetails)
		interview.GET("/:interviewId/questions", ic.GetQuestions)
		interview.GET("/:interviewId/question", ic.GetNextQuestion)
	}
}
