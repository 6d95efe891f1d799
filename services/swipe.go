package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
)

const (
	DefaultDeckSize = 20
	MaxDeckSize     = 100
	fetchMoreSize   = 20
	activityPage    = 50
	maxActivityType = 32
)

// Importer ist der Teil des ImportService, den der SwipeService nutzt.
type Importer interface {
	Import(ctx context.Context, params arxiv.SearchParams) (ImportResult, error)
}

// SwipeService verwaltet Swipes, die Sammlung und das Nachladen neuer Paper.
type SwipeService struct {
	store    SwipeStore
	importer Importer
	logger   *zap.Logger
}

// NewSwipeService erstellt eine neue Instanz des SwipeService.
func NewSwipeService(store SwipeStore, importer Importer, logger *zap.Logger) *SwipeService {
	return &SwipeService{store: store, importer: importer, logger: logger}
}

// Like speichert einen Swipe nach rechts (liked) oder links.
func (s *SwipeService) Like(ctx context.Context, userID, paperID string, liked bool) error {
	if err := s.checkUserAndPaper(ctx, userID, paperID); err != nil {
		return err
	}
	if err := s.store.SetLike(ctx, userID, paperID, liked); err != nil {
		s.logger.Error("Failed to store like", zap.String("user_id", userID), zap.String("paper_id", paperID), zap.Error(err))
		return err
	}
	return nil
}

// Save legt ein Paper in der Sammlung ab oder entfernt es.
func (s *SwipeService) Save(ctx context.Context, userID, paperID string, saved bool) error {
	if err := s.checkUserAndPaper(ctx, userID, paperID); err != nil {
		return err
	}
	if err := s.store.SetSaved(ctx, userID, paperID, saved); err != nil {
		s.logger.Error("Failed to update collection", zap.String("user_id", userID), zap.String("paper_id", paperID), zap.Error(err))
		return err
	}
	return nil
}

func (s *SwipeService) checkUserAndPaper(ctx context.Context, userID, paperID string) error {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}
	_, err := s.store.GetPaper(ctx, paperID)
	return err
}

// Deck liefert die nächsten noch nicht geswipten Paper.
func (s *SwipeService) Deck(ctx context.Context, userID string, limit int) ([]models.Paper, error) {
	if limit <= 0 {
		limit = DefaultDeckSize
	}
	if limit > MaxDeckSize {
		limit = MaxDeckSize
	}
	return s.store.UnswipedPapers(ctx, userID, limit)
}

// Collection liefert die gespeicherten Paper eines Nutzers.
func (s *SwipeService) Collection(ctx context.Context, userID string) ([]models.Paper, error) {
	return s.store.SavedPapers(ctx, userID)
}

// FetchMore importiert die 20 neuesten Paper zu einer Suche. Ohne Suchbegriff wird das
// erste Interesse des Nutzers verwendet. Zurück kommen nur die neu angelegten Paper.
func (s *SwipeService) FetchMore(ctx context.Context, userID, query, category string) ([]models.Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(user.Interests) > 0 {
			query = user.Interests[0]
		}
	}

	res, err := s.importer.Import(ctx, arxiv.SearchParams{
		SearchQuery: query,
		Category:    category,
		MaxResults:  fetchMoreSize,
		SortBy:      arxiv.SortSubmittedDate,
		SortOrder:   arxiv.OrderDescending,
	})
	if err != nil {
		return nil, err
	}

	act := &models.Activity{UserID: userID, Type: models.ActivityImport}
	meta, err := json.Marshal(map[string]any{
		"query":    query,
		"category": category,
		"imported": res.Imported,
		"skipped":  res.Skipped,
	})
	if err != nil {
		s.logger.Warn("Failed to encode import activity metadata", zap.String("user_id", userID), zap.Error(err))
	} else {
		act.Metadata = string(meta)
	}
	if err := s.store.RecordActivity(ctx, act); err != nil {
		s.logger.Warn("Failed to record import activity", zap.String("user_id", userID), zap.Error(err))
	}

	papers := res.Papers
	if papers == nil {
		papers = []models.Paper{}
	}
	return papers, nil
}

// Activities liefert die letzten Einträge des Aktivitäts-Feeds.
func (s *SwipeService) Activities(ctx context.Context, userID string) ([]models.Activity, error) {
	return s.store.Activities(ctx, userID, activityPage)
}

// AddActivity hängt einen vom Client gemeldeten Eintrag an den Feed. paperID ist optional;
// metadata muss gültiges JSON sein und wird unverändert gespeichert.
func (s *SwipeService) AddActivity(ctx context.Context, userID, kind, paperID string, metadata json.RawMessage) error {
	kind = strings.TrimSpace(kind)
	if kind == "" || len(kind) > maxActivityType {
		return fmt.Errorf("%w: activity type must be 1-%d characters", ErrInvalidInput, maxActivityType)
	}
	if len(metadata) > 0 && !json.Valid(metadata) {
		return fmt.Errorf("%w: metadata is not valid JSON", ErrInvalidInput)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}

	act := &models.Activity{UserID: userID, Type: kind}
	if paperID != "" {
		if _, err := s.store.GetPaper(ctx, paperID); err != nil {
			return err
		}
		act.PaperID = &paperID
	}
	if len(metadata) > 0 && string(metadata) != "null" {
		act.Metadata = string(metadata)
	}
	if err := s.store.RecordActivity(ctx, act); err != nil {
		s.logger.Error("Failed to record activity", zap.String("user_id", userID), zap.String("type", kind), zap.Error(err))
		return err
	}
	return nil
}
