package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
	"paper-swipe/storage"
)

func record(id, title string) arxiv.Record {
	return arxiv.Record{ID: id, Title: title, Summary: "A paper about " + title, Categories: []string{"cs.LG"}}
}

func countPapers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Paper{}).Count(&n).Error)
	return n
}

func TestImport_SequentialImportsSkipDuplicate(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{records: []arxiv.Record{record("2401.00001v1", "Deep learning")}}
	svc := NewImportService(provider, storage.NewRepository(db), DefaultVocabulary(), zap.NewNop())

	first, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)
	assert.Equal(t, 0, first.Skipped)
	assert.Equal(t, 1, first.Total)
	require.Len(t, first.Papers, 1)
	assert.NotEmpty(t, first.Papers[0].ID)

	second, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 1, second.Total)
	assert.Empty(t, second.Papers)

	assert.Equal(t, int64(1), countPapers(t, db))
}

func TestImport_MalformedEntryInFeed(t *testing.T) {
	// Drei gültige Einträge und ein defekter: der Parser liefert drei Datensätze.
	body := `<feed xmlns="http://www.w3.org/2005/Atom">
<entry><id>http://arxiv.org/abs/2401.1</id><title>One</title><summary>a</summary></entry>
<entry><id>http://arxiv.org/abs/2401.2</id><title>Two <i>broken</title><summary>b</summary></entry>
<entry><id>http://arxiv.org/abs/2401.3</id><title>Three</title><summary>c</summary></entry>
<entry><id>http://arxiv.org/abs/2401.4</id><title>Four</title><summary>d</summary></entry>
</feed>`
	records, errs := arxiv.ParseFeed(strings.NewReader(body))
	require.Len(t, errs, 1)

	db := newTestDB(t)
	svc := NewImportService(&fakeProvider{records: records}, storage.NewRepository(db), DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 0, res.Skipped)
}

func TestImport_DedupByDOI(t *testing.T) {
	db := newTestDB(t)
	createPaper(t, db, models.Paper{Title: "Journal version", DOI: strPtr("10.1000/abc")})

	rec := record("2401.00009v1", "Preprint")
	rec.DOI = "10.1000/abc"
	svc := NewImportService(&fakeProvider{records: []arxiv.Record{rec}}, storage.NewRepository(db), DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, int64(1), countPapers(t, db))
}

func TestImport_DuplicateWithinBatch(t *testing.T) {
	db := newTestDB(t)
	recs := []arxiv.Record{record("2401.00001v1", "A"), record("2401.00001v1", "A again")}
	svc := NewImportService(&fakeProvider{records: recs}, storage.NewRepository(db), DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.Total)
}

func TestImport_RecordsWithoutIdentifiers(t *testing.T) {
	db := newTestDB(t)
	recs := []arxiv.Record{{Title: "No id 1", Summary: "x"}, {Title: "No id 2", Summary: "y"}}
	svc := NewImportService(&fakeProvider{records: recs}, storage.NewRepository(db), DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, int64(2), countPapers(t, db))
}

func TestImport_SearchFailureFailsCall(t *testing.T) {
	fetchErr := &arxiv.FetchError{StatusCode: 503, Status: "503 Service Unavailable"}
	svc := NewImportService(&fakeProvider{err: fetchErr}, storage.NewRepository(newTestDB(t)), DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	var fe *arxiv.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ImportResult{}, res)
}

// racingStore simuliert ein paralleles Insert zwischen Lookup und Create.
type racingStore struct {
	created int
}

func (s *racingStore) FindByExternalIDOrDOI(context.Context, *string, *string) (*models.Paper, error) {
	return nil, nil
}

func (s *racingStore) CreatePaper(_ context.Context, p *models.Paper) error {
	if p.Title == "late duplicate" {
		return gorm.ErrDuplicatedKey
	}
	if p.Title == "broken" {
		return errors.New("disk full")
	}
	s.created++
	return nil
}

func TestImport_InsertFailuresAreSkipped(t *testing.T) {
	recs := []arxiv.Record{record("1", "late duplicate"), record("2", "broken"), record("3", "fine")}
	store := &racingStore{}
	svc := NewImportService(&fakeProvider{records: recs}, store, DefaultVocabulary(), zap.NewNop())

	res, err := svc.Import(context.Background(), arxiv.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, store.created)
}
