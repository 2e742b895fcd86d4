package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"prepmate/services"
)

type AudioController struct {
	Transcriber *services.TranscriptionClient
}

// ProcessAudio forwards an uploaded recording to the speech-to-text sidecar.
func (ac *AudioController) ProcessAudio(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(400, gin.H{"error": "audio file is required"})
		return
	}

	opened, err := file.Open()
	if err != nil {
		c.JSON(400, gin.H{"error": "Failed to read audio upload: " + err.Error()})
		return
	}
	audio, err := io.ReadAll(opened)
	opened.Close()
	if err != nil {
		c.JSON(400, gin.H{"error": "Failed to read audio upload: " + err.Error()})
		return
	}

	text, err := ac.Transcriber.Transcribe(c.Request.Context(), audio, file.Filename)
	if err != nil {
		c.JSON(502, gin.H{"error": "Transcription failed: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"transcribed_text": text})
}
