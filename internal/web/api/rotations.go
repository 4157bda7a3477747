package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"rotationhub/internal/db"
	"rotationhub/internal/models"
	"rotationhub/internal/rotation"
	"rotationhub/internal/web/middleware"
	webModels "rotationhub/internal/web/models"

	"github.com/gin-gonic/gin"
)

// RotationStore is the persistence surface the rotation routes need.
// Implemented by *db.DB; tests swap in an in-memory store.
type RotationStore interface {
	SaveRotation(ctx context.Context, userID, name string, data json.RawMessage) (*models.Rotation, error)
	GetRotations(ctx context.Context, userID string) ([]models.Rotation, error)
	GetRotationByID(ctx context.Context, userID, id string) (*models.Rotation, error)
	DeleteRotation(ctx context.Context, userID, id string) error
	SetActiveRotation(ctx context.Context, userID, id string) (*models.Rotation, error)
}

// RotationPublisher pushes active rotations to connected game clients.
type RotationPublisher interface {
	PublishActive(rot models.Rotation) error
	ClearActive(userID string) error
}

func RegisterRotationRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, store RotationStore, pub RotationPublisher) {
	rotations := r.Group("/rotations")
	rotations.Use(middleware.RequireAuth())
	{
		rotations.GET("", func(c *gin.Context) {
			userID := c.GetString("user_id")
			list, err := store.GetRotations(c, userID)
			if err != nil {
				log.Printf("API: Failed to fetch rotations for user %s: %v", userID, err)
				c.JSON(500, gin.H{"error": "Failed to fetch rotations"})
				return
			}
			c.JSON(200, list)
		})

		rotations.GET("/:id", func(c *gin.Context) {
			userID := c.GetString("user_id")
			rot, err := store.GetRotationByID(c, userID, c.Param("id"))
			if err != nil {
				c.JSON(404, gin.H{"error": "Rotation not found"})
				return
			}
			editor, err := rotation.LoadIntoEditor(rot.Name, rot.Data)
			if err != nil {
				// Corrupted drafts still open, just empty.
				log.Printf("API: Rotation %s has malformed data, loading empty: %v", rot.ID, err)
			}
			c.JSON(200, editor)
		})

		rotations.POST("", func(c *gin.Context) {
			userID := c.GetString("user_id")
			var req webModels.SaveRotationRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}

			doc, err := rotation.DecodeDocument(req.Data)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			if err := rotation.ValidateDocument(doc); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}

			saved, err := store.SaveRotation(c, userID, req.Name, req.Data)
			if err != nil {
				log.Printf("API: Failed to save rotation %q for user %s: %v", req.Name, userID, err)
				c.JSON(500, gin.H{"error": "Failed to save rotation"})
				return
			}

			// A save of the currently active rotation changes what the
			// game client should be running.
			if saved.IsActive {
				if err := pub.PublishActive(*saved); err != nil {
					log.Printf("API: Failed to publish rotation %s: %v", saved.ID, err)
				}
			}
			c.JSON(200, saved)
		})

		rotations.DELETE("/:id", func(c *gin.Context) {
			userID := c.GetString("user_id")
			rotationID := c.Param("id")

			existing, err := store.GetRotationByID(c, userID, rotationID)
			if err != nil {
				c.JSON(404, gin.H{"error": "Rotation not found"})
				return
			}

			if err := store.DeleteRotation(c, userID, rotationID); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					c.JSON(404, gin.H{"error": "Rotation not found"})
					return
				}
				log.Printf("API: Failed to delete rotation %s: %v", rotationID, err)
				c.JSON(500, gin.H{"error": "Failed to delete rotation"})
				return
			}

			if existing.IsActive {
				if err := pub.ClearActive(userID); err != nil {
					log.Printf("API: Failed to clear active rotation for user %s: %v", userID, err)
				}
			}
			c.JSON(200, gin.H{"status": "Rotation deleted successfully"})
		})

		rotations.POST("/:id/activate", func(c *gin.Context) {
			userID := c.GetString("user_id")
			rotationID := c.Param("id")

			activated, err := store.SetActiveRotation(c, userID, rotationID)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					c.JSON(404, gin.H{"error": "Rotation not found"})
					return
				}
				log.Printf("API: Failed to activate rotation %s: %v", rotationID, err)
				c.JSON(500, gin.H{"error": "Failed to activate rotation"})
				return
			}

			if err := pub.PublishActive(*activated); err != nil {
				log.Printf("API: Failed to publish rotation %s: %v", activated.ID, err)
			}
			c.JSON(200, activated)
		})
	}
}
