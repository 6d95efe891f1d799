// Package routes enthält die HTTP-Schnittstelle auf Basis von gin.
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
	"paper-swipe/services"
)

const userIDKey = "userID"

// Importer startet einen Importlauf.
type Importer interface {
	Import(ctx context.Context, params arxiv.SearchParams) (services.ImportResult, error)
}

// Recommender berechnet Empfehlungen.
type Recommender interface {
	Generate(ctx context.Context, userID string, limit int) ([]models.RecommendationScore, error)
}

// Swiper verwaltet Swipes, Sammlung und Aktivitäten.
type Swiper interface {
	Like(ctx context.Context, userID, paperID string, liked bool) error
	Save(ctx context.Context, userID, paperID string, saved bool) error
	Deck(ctx context.Context, userID string, limit int) ([]models.Paper, error)
	Collection(ctx context.Context, userID string) ([]models.Paper, error)
	FetchMore(ctx context.Context, userID, query, category string) ([]models.Paper, error)
	Activities(ctx context.Context, userID string) ([]models.Activity, error)
	AddActivity(ctx context.Context, userID, kind, paperID string, metadata json.RawMessage) error
}

// Users verwaltet Nutzerprofile.
type Users interface {
	Create(ctx context.Context, name, email string, interests []string) (*models.User, error)
	SetInterests(ctx context.Context, userID string, interests []string) (*models.User, error)
}

// Collaborations verwaltet Kollaborationen und Teilnahmeanfragen.
type Collaborations interface {
	Create(ctx context.Context, userID, title, description, paperID string) (*models.Collaboration, error)
	Open(ctx context.Context) ([]models.Collaboration, error)
	Request(ctx context.Context, userID, collaborationID, message string) (*models.CollaborationRequest, error)
}

// Store ist der lesende Datenbankzugriff der Handler.
type Store interface {
	Ping(ctx context.Context) error
	GetPaper(ctx context.Context, id string) (*models.PaperWithLikes, error)
}

// Deps bündelt alles, was die Handler benötigen.
type Deps struct {
	Importer       Importer
	Recommender    Recommender
	Swiper         Swiper
	Users          Users
	Collaborations Collaborations
	Store          Store
	APISecretKey   string
	Logger         *zap.Logger
	Now            func() time.Time
}

// Setup registriert Middleware und alle Routen am Router.
func Setup(router *gin.Engine, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	registerValidators()
	router.Use(apiKeyAuthMiddleware(d.APISecretKey))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupStatusRoutes(router, d)
	setupPaperRoutes(router, d)
	setupRecommendationRoutes(router, d)
	setupResearchRoutes(router, d)
	setupUserRoutes(router, d)
	setupCollaborationRoutes(router, d)
}

func apiKeyAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

// requireUser liest den vom vorgeschalteten Proxy gesetzten X-User-ID-Header.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// respondError übersetzt Service-Fehler in HTTP-Statuscodes.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		fetchErr   *arxiv.FetchError
		timeoutErr *arxiv.TimeoutError
		validErr   *arxiv.ValidationError
	)
	switch {
	case errors.As(err, &timeoutErr):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "ArXiv request timed out", "details": err.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch from ArXiv", "details": err.Error()})
	case errors.As(err, &validErr), errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrCollaborationClosed), errors.Is(err, services.ErrOwnCollaboration),
		errors.Is(err, services.ErrAlreadyRequested):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrPaperNotFound),
		errors.Is(err, services.ErrCollaborationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
