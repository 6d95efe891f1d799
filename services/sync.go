package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"paper-swipe/providers/arxiv"
)

// SyncService importiert die neuesten Paper für eine feste Liste von Kategorien.
type SyncService struct {
	importer   Importer
	categories []string
	maxResults int
	logger     *zap.Logger
}

// NewSyncService erstellt eine neue Instanz des SyncService.
func NewSyncService(importer Importer, categories []string, maxResults int, logger *zap.Logger) *SyncService {
	return &SyncService{importer: importer, categories: categories, maxResults: maxResults, logger: logger}
}

// Run importiert die Kategorien nacheinander. Fehler einzelner Kategorien brechen den
// Lauf nicht ab; sie werden gesammelt zurückgegeben.
func (s *SyncService) Run(ctx context.Context) (ImportResult, error) {
	var (
		total ImportResult
		errs  []error
	)
	for _, cat := range s.categories {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := s.importer.Import(ctx, arxiv.SearchParams{
			Category:   cat,
			MaxResults: s.maxResults,
			SortBy:     arxiv.SortSubmittedDate,
			SortOrder:  arxiv.OrderDescending,
		})
		if err != nil {
			s.logger.Error("Category sync failed", zap.String("category", cat), zap.Error(err))
			errs = append(errs, fmt.Errorf("category %s: %w", cat, err))
			continue
		}
		total.Imported += res.Imported
		total.Skipped += res.Skipped
		total.Total += res.Total
	}
	return total, errors.Join(errs...)
}
