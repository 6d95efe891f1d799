package services

import (
	"context"

	"paper-swipe/models"
)

// Fehler, die die Services nach außen melden.
var (
	ErrUserNotFound  = models.ErrUserNotFound
	ErrPaperNotFound = models.ErrPaperNotFound
)

// PaperStore ist der Persistenz-Port der Deduplizierung.
type PaperStore interface {
	FindByExternalIDOrDOI(ctx context.Context, arxivID, doi *string) (*models.Paper, error)
	CreatePaper(ctx context.Context, p *models.Paper) error
}

// RecommendationStore ist der Persistenz-Port des Empfehlungs-Service.
type RecommendationStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	LikedPapers(ctx context.Context, userID string, limit int) ([]models.Paper, error)
	LikedPaperIDs(ctx context.Context, userID string) ([]string, error)
	Candidates(ctx context.Context, excludeIDs []string) ([]models.PaperWithLikes, error)
	ReplaceRecommendations(ctx context.Context, userID string, recs []models.Recommendation) error
}

// SwipeStore ist der Persistenz-Port für Swipes, Sammlung und Aktivitäten.
type SwipeStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetPaper(ctx context.Context, id string) (*models.PaperWithLikes, error)
	SetLike(ctx context.Context, userID, paperID string, liked bool) error
	SetSaved(ctx context.Context, userID, paperID string, saved bool) error
	UnswipedPapers(ctx context.Context, userID string, limit int) ([]models.Paper, error)
	SavedPapers(ctx context.Context, userID string) ([]models.Paper, error)
	RecordActivity(ctx context.Context, a *models.Activity) error
	Activities(ctx context.Context, userID string, limit int) ([]models.Activity, error)
}
