package api

import (
	"log"

	"rotationhub/internal/generate"
	"rotationhub/internal/taskqueue"
	"rotationhub/internal/web/middleware"
	webModels "rotationhub/internal/web/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterGenerateRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, aiClient generate.Client) {
	ai := r.Group("/ai")
	ai.Use(middleware.RequireAuth())
	{
		// Synchronous generation, the caller waits for the model.
		ai.POST("", func(c *gin.Context) {
			var req webModels.PromptRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Prompt is required"})
				return
			}

			text, err := aiClient.Generate(c, req.Prompt)
			if err != nil {
				log.Printf("API: Model call failed: %v", err)
				c.JSON(500, gin.H{"error": "Failed to generate valid rotation JSON"})
				return
			}

			cleaned, err := generate.CleanResponse(text)
			if err != nil {
				log.Printf("API: Model returned malformed rotation: %v", err)
				c.JSON(500, gin.H{"error": "Failed to generate valid rotation JSON"})
				return
			}

			c.JSON(200, gin.H{"response": cleaned})
		})

		// Async flow for slow generations: enqueue, then poll.
		ai.POST("/jobs", func(c *gin.Context) {
			userID := c.GetString("user_id")
			var req webModels.PromptRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Prompt is required"})
				return
			}

			jobID := uuid.NewString()
			if err := taskqueue.EnqueueGeneration(c, jobID, userID, req.Prompt); err != nil {
				log.Printf("API: Failed to enqueue generation job: %v", err)
				c.JSON(500, gin.H{"error": "Failed to enqueue generation"})
				return
			}
			c.JSON(202, gin.H{"id": jobID})
		})

		ai.GET("/jobs/:id", func(c *gin.Context) {
			userID := c.GetString("user_id")
			job, err := taskqueue.GetJob(c, c.Param("id"), userID)
			if err != nil {
				c.JSON(404, gin.H{"error": "Job not found"})
				return
			}
			c.JSON(200, job)
		})
	}
}
