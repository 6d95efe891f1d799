package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupStatusRoutes(router *gin.Engine, d Deps) {
	router.GET("/status", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			d.Logger.Warn("Database ping failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok": false,
				"db": gin.H{"ok": false, "message": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "db": gin.H{"ok": true}})
	})
}

func setupUserRoutes(router *gin.Engine, d Deps) {
	rg := router.Group("/users")

	rg.POST("", func(c *gin.Context) {
		var req struct {
			Name      string   `json:"name"`
			Email     string   `json:"email" binding:"required,email"`
			Interests []string `json:"interests"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		user, err := d.Users.Create(c.Request.Context(), req.Name, req.Email, req.Interests)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	})

	rg.PUT("/:id/interests", requireUser(), func(c *gin.Context) {
		id := c.Param("id")
		if id != currentUser(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user"})
			return
		}
		var req struct {
			Interests []string `json:"interests" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		user, err := d.Users.SetInterests(c.Request.Context(), id, req.Interests)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})
}
