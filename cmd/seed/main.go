package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paper-swipe/config"
	"paper-swipe/providers"
	"paper-swipe/providers/arxiv"
	"paper-swipe/services"
	"paper-swipe/storage"
)

var (
	categories []string
	maxResults int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the newest ArXiv papers into the database",
		RunE:  runImport,
	}
	rootCmd.PersistentFlags().StringSliceVar(&categories, "category", nil, "ArXiv categories (default: SYNC_CATEGORIES)")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max", 0, "papers per category (default: SYNC_MAX_RESULTS)")

	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	logging, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if len(categories) == 0 {
		categories = cfg.SyncCategories
	}
	if maxResults <= 0 {
		maxResults = cfg.SyncMaxResults
	}
	return cfg, logging, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, logging, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := storage.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	client, err := providers.NewArxiv(ctx, cfg, logging)
	if err != nil {
		return err
	}
	vocab, err := services.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return err
	}

	importer := services.NewImportService(client, storage.NewRepository(db), vocab, logging)
	res, err := services.NewSyncService(importer, categories, maxResults, logging).Run(ctx)
	fmt.Printf("Imported %d, skipped %d, fetched %d papers from %s\n",
		res.Imported, res.Skipped, res.Total, strings.Join(categories, ", "))
	return err
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Query ArXiv and print the results without saving them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logging, err := setup()
			if err != nil {
				return err
			}
			defer logging.Sync()

			client, err := providers.NewArxiv(context.Background(), cfg, zap.NewNop())
			if err != nil {
				return err
			}
			vocab, err := services.LoadVocabulary(cfg.VocabularyFile)
			if err != nil {
				return err
			}

			params := arxiv.SearchParams{
				SearchQuery: strings.Join(args, " "),
				MaxResults:  maxResults,
			}
			if len(categories) > 0 {
				params.Category = categories[0]
			}
			records, err := client.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			for _, rec := range records {
				p := vocab.NormalizePaper(rec)
				fmt.Printf("%-16s %s\n", rec.ID, truncate(p.Title, 80))
				fmt.Printf("%-16s keywords: %s\n", "", strings.Join(p.Keywords, ", "))
			}
			fmt.Printf("%d papers\n", len(records))
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
