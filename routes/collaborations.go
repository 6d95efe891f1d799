package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func setupCollaborationRoutes(router *gin.Engine, d Deps) {
	rg := router.Group("/collaborations", requireUser())

	rg.GET("", func(c *gin.Context) {
		collabs, err := d.Collaborations.Open(c.Request.Context())
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"collaborations": collabs})
	})

	rg.POST("", func(c *gin.Context) {
		var req struct {
			Title       string `json:"title" binding:"required,notblank,max=200"`
			Description string `json:"description" binding:"required,notblank"`
			PaperID     string `json:"paperId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
			return
		}
		collab, err := d.Collaborations.Create(c.Request.Context(), currentUser(c), req.Title, req.Description, req.PaperID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"collaboration": collab})
	})

	rg.POST("/request", func(c *gin.Context) {
		var req struct {
			CollaborationID string `json:"collaborationId" binding:"required"`
			Message         string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Collaboration ID is required"})
			return
		}
		request, err := d.Collaborations.Request(c.Request.Context(), currentUser(c), req.CollaborationID, req.Message)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": request})
	})
}
