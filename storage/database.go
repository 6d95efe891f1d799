package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paper-swipe/config"
	"paper-swipe/models"
)

// OpenDatabase öffnet die Datenbank gemäß DB_DRIVER.
// Unique-Verletzungen werden als gorm.ErrDuplicatedKey gemeldet.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	return Open(dialector)
}

// Open öffnet eine Verbindung mit der Standard-Konfiguration dieses Projekts.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// AutoMigrate legt alle Tabellen samt Unique-Indizes an.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Paper{},
		&models.PaperLike{},
		&models.SavedPaper{},
		&models.Activity{},
		&models.Recommendation{},
		&models.Collaboration{},
		&models.CollaborationRequest{},
	)
}
