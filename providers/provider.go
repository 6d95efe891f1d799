package providers

import (
	"context"

	"go.uber.org/zap"

	"paper-swipe/config"
	"paper-swipe/providers/arxiv"
	"paper-swipe/storage"
)

// Provider ist das Interface, das jeder Such-Provider implementieren muss.
type Provider interface {
	// Search führt eine Suche aus und gibt die geparsten externen Datensätze zurück.
	Search(ctx context.Context, params arxiv.SearchParams) ([]arxiv.Record, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "arxiv").
	Name() string
}

var _ Provider = (*arxiv.Client)(nil)

// NewArxiv baut den ArXiv-Provider aus der Konfiguration, optional mit S3-Archiv
// für die rohen Feeds.
func NewArxiv(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*arxiv.Client, error) {
	opts := arxiv.Options{
		BaseURL:    cfg.ArxivBaseURL,
		Timeout:    cfg.ArxivTimeout,
		MaxResults: cfg.ArxivMaxResults,
	}
	if cfg.ArchiveEnabled() {
		s3Client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts.Archiver = storage.NewFeedArchive(s3Client, cfg.ArchiveS3Bucket, cfg.ArchiveS3URL)
		logger.Info("ArXiv feed archive enabled", zap.String("bucket", cfg.ArchiveS3Bucket))
	}
	return arxiv.NewClient(opts, logger), nil
}
