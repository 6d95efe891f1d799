package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"paper-swipe/models"
	"paper-swipe/providers"
	"paper-swipe/providers/arxiv"
)

// ImportResult fasst einen Importlauf zusammen. Total ist die Anzahl der geparsten Datensätze.
type ImportResult struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Total    int            `json:"total"`
	Papers   []models.Paper `json:"-"`
}

// ImportService holt Paper von einem Provider, normalisiert sie und speichert nur neue.
type ImportService struct {
	provider providers.Provider
	store    PaperStore
	vocab    Vocabulary
	logger   *zap.Logger
}

// NewImportService erstellt eine neue Instanz des ImportService.
func NewImportService(provider providers.Provider, store PaperStore, vocab Vocabulary, logger *zap.Logger) *ImportService {
	return &ImportService{provider: provider, store: store, vocab: vocab, logger: logger}
}

// Import führt genau eine Suche aus und speichert jedes noch unbekannte Paper.
// Nur ein Fehler der Suche selbst bricht den Lauf ab; Fehler einzelner Paper werden
// geloggt und als übersprungen gezählt.
func (s *ImportService) Import(ctx context.Context, params arxiv.SearchParams) (ImportResult, error) {
	log := s.logger.With(
		zap.String("provider", s.provider.Name()),
		zap.String("search_query", params.SearchQuery),
		zap.String("category", params.Category),
	)

	records, err := s.provider.Search(ctx, params)
	if err != nil {
		log.Error("Provider search failed", zap.Error(err))
		return ImportResult{}, err
	}

	res := ImportResult{Total: len(records)}
	for _, rec := range records {
		paper := s.vocab.NormalizePaper(rec)
		itemLog := log.With(zap.String("arxiv_id", rec.ID))

		existing, err := s.store.FindByExternalIDOrDOI(ctx, paper.ArxivID, paper.DOI)
		if err != nil {
			itemLog.Error("Duplicate lookup failed", zap.Error(err))
			res.Skipped++
			continue
		}
		if existing != nil {
			itemLog.Debug("Paper already exists", zap.String("paper_id", existing.ID))
			res.Skipped++
			continue
		}

		if err := s.store.CreatePaper(ctx, paper); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				itemLog.Info("Paper was inserted concurrently, skipping")
			} else {
				itemLog.Error("Failed to save paper", zap.Error(err))
			}
			res.Skipped++
			continue
		}
		res.Imported++
		res.Papers = append(res.Papers, *paper)
	}

	papersImported.Add(float64(res.Imported))
	papersSkipped.Add(float64(res.Skipped))
	log.Info("Import completed",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Int("total", res.Total),
	)
	return res, nil
}
