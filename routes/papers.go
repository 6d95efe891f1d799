package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
	"paper-swipe/services"
)

func setupPaperRoutes(router *gin.Engine, d Deps) {
	rg := router.Group("/papers", requireUser())

	rg.POST("/import", func(c *gin.Context) {
		var params arxiv.SearchParams
		if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		res, err := d.Importer.Import(c.Request.Context(), params)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		message := "Papers imported successfully"
		if res.Total == 0 {
			message = "No papers found"
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  message,
			"imported": res.Imported,
			"skipped":  res.Skipped,
			"total":    res.Total,
		})
	})

	// Wird aufgerufen, wenn dem Nutzer die Paper zum Swipen ausgehen.
	rg.POST("/fetch-more", func(c *gin.Context) {
		var req struct {
			SearchQuery string `json:"searchQuery"`
			Category    string `json:"category"`
		}
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		papers, err := d.Swiper.FetchMore(c.Request.Context(), currentUser(c), req.SearchQuery, req.Category)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		message := fmt.Sprintf("Fetched %d new papers", len(papers))
		if len(papers) == 0 {
			message = "No new papers found"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "papers": papers, "count": len(papers)})
	})

	rg.GET("/deck", func(c *gin.Context) {
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}
		papers, err := d.Swiper.Deck(c.Request.Context(), currentUser(c), limit)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, papers)
	})

	rg.GET("/collection", func(c *gin.Context) {
		papers, err := d.Swiper.Collection(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, papers)
	})

	rg.GET("/collection/references", func(c *gin.Context) {
		papers, err := d.Swiper.Collection(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"references": services.BuildReferences(papers)})
	})

	rg.POST("/like", func(c *gin.Context) {
		var req struct {
			PaperID string `json:"paperId" binding:"required"`
			Liked   *bool  `json:"liked" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		if err := d.Swiper.Like(c.Request.Context(), currentUser(c), req.PaperID, *req.Liked); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	rg.POST("/save", func(c *gin.Context) {
		var req struct {
			PaperID string `json:"paperId" binding:"required"`
			Saved   *bool  `json:"saved" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		if err := d.Swiper.Save(c.Request.Context(), currentUser(c), req.PaperID, *req.Saved); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	rg.POST("/compare", func(c *gin.Context) {
		var req struct {
			Paper1ID string `json:"paper1Id" binding:"required"`
			Paper2ID string `json:"paper2Id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both paper IDs are required"})
			return
		}

		ctx := c.Request.Context()
		papers := make([]*models.PaperWithLikes, 0, 2)
		for _, id := range []string{req.Paper1ID, req.Paper2ID} {
			p, err := d.Store.GetPaper(ctx, id)
			if errors.Is(err, services.ErrPaperNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "One or both papers not found"})
				return
			}
			if err != nil {
				respondError(c, d.Logger, err)
				return
			}
			papers = append(papers, p)
		}

		comparison := services.ComparePapers(*papers[0], *papers[1], d.Now())
		c.JSON(http.StatusOK, gin.H{"comparison": comparison})
	})
}

// queryInt liest einen optionalen ganzzahligen Query-Parameter (0, wenn nicht gesetzt).
// Bei ungültigem Wert wird 400 gesendet und false zurückgegeben.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s parameter", name)})
		return 0, false
	}
	return n, true
}
