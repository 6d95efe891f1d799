package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
	"paper-swipe/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, storage.AutoMigrate(db))
	return db
}

// fakeProvider liefert feste Datensätze oder einen Fehler.
type fakeProvider struct {
	records []arxiv.Record
	err     error
	calls   []arxiv.SearchParams
}

func (f *fakeProvider) Search(_ context.Context, params arxiv.SearchParams) ([]arxiv.Record, error) {
	f.calls = append(f.calls, params)
	return f.records, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func strPtr(s string) *string { return &s }

func createPaper(t *testing.T, db *gorm.DB, p models.Paper) models.Paper {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createUser(t *testing.T, db *gorm.DB, interests ...string) models.User {
	t.Helper()
	u := models.User{Name: "Test", Email: uuid.NewString() + "@example.org", Interests: interests}
	require.NoError(t, db.Create(&u).Error)
	return u
}
