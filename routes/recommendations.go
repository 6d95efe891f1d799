package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-swipe/services"
)

func setupRecommendationRoutes(router *gin.Engine, d Deps) {
	router.GET("/recommendations", requireUser(), func(c *gin.Context) {
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}
		recs, err := d.Recommender.Generate(c.Request.Context(), currentUser(c), services.ClampRecommendationLimit(limit))
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recommendations": recs})
	})

	router.GET("/activities", requireUser(), func(c *gin.Context) {
		acts, err := d.Swiper.Activities(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activities": acts})
	})

	router.POST("/activities", requireUser(), func(c *gin.Context) {
		var req struct {
			Type     string          `json:"type" binding:"required,notblank,max=32"`
			PaperID  string          `json:"paperId"`
			Metadata json.RawMessage `json:"metadata"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Activity type is required"})
			return
		}
		if err := d.Swiper.AddActivity(c.Request.Context(), currentUser(c), req.Type, req.PaperID, req.Metadata); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

func setupResearchRoutes(router *gin.Engine, d Deps) {
	rg := router.Group("/research", requireUser())

	rg.POST("/critique", func(c *gin.Context) {
		var req struct {
			Idea    string `json:"idea" binding:"required,notblank"`
			Context string `json:"context"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Research idea is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"critique": services.CritiqueIdea(req.Idea, req.Context)})
	})
}
