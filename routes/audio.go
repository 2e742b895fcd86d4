package routes

import (
	"github.com/gin-gonic/gin"

	"prepmate/controllers"
)

// SetupAudioRoutes wires the transcription endpoint
func SetupAudioRoutes(router *gin.RouterGroup, ac *controllers.AudioController) {
	audio := router.Group("/audio")
	{
		audio.POST("/process", ac.ProcessAudio)
	}
}
