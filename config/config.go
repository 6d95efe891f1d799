package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"` // postgres oder sqlite
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"paper_swipe"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"paper-swipe.db"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	ArxivBaseURL    string        `envconfig:"ARXIV_BASE_URL" default:"https://export.arxiv.org/api/query"`
	ArxivTimeout    time.Duration `envconfig:"ARXIV_TIMEOUT" default:"30s"`
	ArxivMaxResults int           `envconfig:"ARXIV_MAX_RESULTS" default:"100"`

	// Leerer Zeitplan deaktiviert den Sync-Job.
	SyncSchedule   string   `envconfig:"SYNC_SCHEDULE"`
	SyncCategories []string `envconfig:"SYNC_CATEGORIES" default:"cs.AI,cs.CV,cs.LG,cs.CL"`
	SyncMaxResults int      `envconfig:"SYNC_MAX_RESULTS" default:"25"`

	RecommendationHistory int    `envconfig:"RECOMMENDATION_HISTORY" default:"50"`
	VocabularyFile        string `envconfig:"VOCABULARY_FILE"`

	// Optionales Archiv für rohe ArXiv-Feeds
	ArchiveS3URL    string `envconfig:"ARCHIVE_S3_URL"`
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION" default:"us-east-1"`
	ArchiveS3Key    string `envconfig:"ARCHIVE_S3_KEY"`
	ArchiveS3Secret string `envconfig:"ARCHIVE_S3_SECRET"`
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// ArchiveEnabled meldet, ob das S3-Feed-Archiv konfiguriert ist.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3Bucket != "" && c.ArchiveS3URL != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return &c, nil
}
