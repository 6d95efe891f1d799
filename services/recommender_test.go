package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paper-swipe/models"
	"paper-swipe/storage"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func candidate(id string, keywords, categories []string, likes int) models.PaperWithLikes {
	return models.PaperWithLikes{
		Paper: models.Paper{
			ID:         id,
			Title:      "Paper " + id,
			Keywords:   keywords,
			Categories: categories,
		},
		LikeCount: likes,
	}
}

func TestScore_SingleKeywordOverlap(t *testing.T) {
	profile := BuildProfile(nil, []string{"transformer"})
	cands := []models.PaperWithLikes{candidate("p1", []string{"transformer"}, nil, 0)}

	got := Score(profile, cands, refNow, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].PaperID)
	assert.InDelta(t, 0.3, got[0].Score, 1e-9)
	assert.Equal(t, "Matches 1 of your interests", got[0].Reason)
}

func TestScore_AllTermsAndClamp(t *testing.T) {
	liked := []models.Paper{{Keywords: []string{"GAN", "diffusion"}, Categories: []string{"cs.CV"}}}
	profile := BuildProfile(liked, nil)

	published := refNow.Add(-10 * 24 * time.Hour)
	c := candidate("p1", []string{"gan", "Diffusion"}, []string{"CS.CV"}, 11)
	c.Citations = 101
	c.PublishedDate = &published

	got := Score(profile, []models.PaperWithLikes{c}, refNow, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, "Matches 2 of your interests; In 1 of your favorite categories; Popular among researchers; "+
		"Highly cited; Recently published; Liked by researchers with similar interests", got[0].Reason)
}

func TestScore_PopularityBonusesStack(t *testing.T) {
	// Mehr als 10 Likes erfüllt beide Like-Schwellen: 0.1 + 0.1.
	got := Score(BuildProfile(nil, nil), []models.PaperWithLikes{candidate("p1", nil, nil, 11)}, refNow, 10)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.2, got[0].Score, 1e-9)
	assert.Equal(t, "Popular among researchers; Liked by researchers with similar interests", got[0].Reason)
}

func TestScore_Threshold(t *testing.T) {
	recent := refNow.Add(-24 * time.Hour)
	onlyRecent := candidate("recent", nil, nil, 0)
	onlyRecent.PublishedDate = &recent

	// Scores: 0, 0.05, 0.1 (nicht > 0.1) und 0.2.
	cands := []models.PaperWithLikes{
		candidate("none", nil, nil, 0),
		onlyRecent,
		candidate("social", nil, nil, 6),
		candidate("cat", nil, []string{"cs.ai"}, 0),
	}
	got := Score(BuildProfile([]models.Paper{{Categories: []string{"cs.AI"}}}, nil), cands, refNow, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "cat", got[0].PaperID)
	assert.Equal(t, "In 1 of your favorite categories", got[0].Reason)
}

func TestScore_DefaultReason(t *testing.T) {
	s := scorePaper(BuildProfile(nil, nil), candidate("p", nil, nil, 0), refNow)
	assert.Equal(t, defaultReason, s.Reason)
	assert.Zero(t, s.Score)
}

func TestScore_RecencyWindow(t *testing.T) {
	old := refNow.Add(-91 * 24 * time.Hour)
	c := candidate("p", nil, nil, 0)
	c.PublishedDate = &old
	assert.Zero(t, scorePaper(BuildProfile(nil, nil), c, refNow).Score)
}

func TestScore_OrderingAndLimit(t *testing.T) {
	profile := BuildProfile(nil, []string{"a", "b", "c"})
	cands := []models.PaperWithLikes{
		candidate("z", []string{"a"}, nil, 0),
		candidate("y", []string{"a", "b", "c"}, nil, 0),
		candidate("x", []string{"a"}, nil, 0),
		candidate("w", []string{"a", "b"}, nil, 0),
	}

	got := Score(profile, cands, refNow, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"y", "w", "x"}, []string{got[0].PaperID, got[1].PaperID, got[2].PaperID})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	profile := BuildProfile(nil, []string{"a"})
	var cands []models.PaperWithLikes
	for i := 0; i < 20; i++ {
		cands = append(cands, candidate(fmt.Sprintf("p%02d", 19-i), []string{"a"}, nil, i%7))
	}

	first := Score(profile, cands, refNow, 10)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(profile, cands, refNow, 10))
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	profile := BuildProfile(
		[]models.Paper{{Keywords: []string{"a", "b", "c", "d", "e"}, Categories: []string{"x", "y", "z"}}},
		[]string{"f"},
	)
	cands := []models.PaperWithLikes{
		candidate("1", []string{"a", "b", "c", "d", "e", "f"}, []string{"x", "y", "z"}, 100),
		candidate("2", []string{"a"}, nil, 0),
		candidate("3", nil, []string{"x"}, 3),
	}
	for _, s := range Score(profile, cands, refNow, 50) {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
	}
}

func TestScore_NonPositiveLimit(t *testing.T) {
	profile := BuildProfile(nil, []string{"a"})
	cands := []models.PaperWithLikes{candidate("p1", []string{"a"}, nil, 0)}

	for _, limit := range []int{0, -1} {
		got := Score(profile, cands, refNow, limit)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestOverlap_CountsDistinctValues(t *testing.T) {
	set := map[string]struct{}{"gan": {}}
	assert.Equal(t, 1, overlap([]string{"GAN", "gan", "Gan"}, set))
}

func TestClampRecommendationLimit(t *testing.T) {
	assert.Equal(t, 10, ClampRecommendationLimit(0))
	assert.Equal(t, 10, ClampRecommendationLimit(-1))
	assert.Equal(t, 7, ClampRecommendationLimit(7))
	assert.Equal(t, 50, ClampRecommendationLimit(51))
}

func TestGenerate_ExcludesLikedAndReplacesRows(t *testing.T) {
	db := newTestDB(t)
	repo := storage.NewRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "transformer")
	liked := createPaper(t, db, models.Paper{Title: "Liked", Keywords: []string{"transformer"}, Categories: []string{"cs.CL"}})
	match := createPaper(t, db, models.Paper{Title: "Match", Keywords: []string{"transformer"}, Categories: []string{"cs.CL"}})
	createPaper(t, db, models.Paper{Title: "Unrelated", Keywords: []string{"clustering"}, Categories: []string{"math.ST"}})
	require.NoError(t, repo.SetLike(ctx, user.ID, liked.ID, true))

	svc := NewRecommendationService(repo, 50, zap.NewNop())
	svc.now = func() time.Time { return refNow }

	recs, err := svc.Generate(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, match.ID, recs[0].PaperID)
	assert.InDelta(t, 0.5, recs[0].Score, 1e-9)
	assert.Equal(t, "Matches 1 of your interests; In 1 of your favorite categories", recs[0].Reason)

	stored, err := repo.Recommendations(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, match.ID, stored[0].PaperID)

	// Nach einem Like auf das empfohlene Paper bleibt nichts übrig; die alten Zeilen verschwinden.
	require.NoError(t, repo.SetLike(ctx, user.ID, match.ID, true))
	recs, err = svc.Generate(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)

	stored, err = repo.Recommendations(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGenerate_UnknownUser(t *testing.T) {
	svc := NewRecommendationService(storage.NewRepository(newTestDB(t)), 50, zap.NewNop())
	_, err := svc.Generate(context.Background(), "missing", 10)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestGenerate_CountsLikesFromOtherUsers(t *testing.T) {
	db := newTestDB(t)
	repo := storage.NewRepository(db)
	ctx := context.Background()

	popular := createPaper(t, db, models.Paper{Title: "Popular"})
	for i := 0; i < 11; i++ {
		u := createUser(t, db)
		require.NoError(t, repo.SetLike(ctx, u.ID, popular.ID, true))
	}
	viewer := createUser(t, db)

	svc := NewRecommendationService(repo, 50, zap.NewNop())
	recs, err := svc.Generate(ctx, viewer.ID, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.InDelta(t, 0.2, recs[0].Score, 1e-9)
}

// failingReplaceStore liefert Kandidaten, scheitert aber beim Speichern.
type failingReplaceStore struct{}

func (failingReplaceStore) GetUser(context.Context, string) (*models.User, error) {
	return &models.User{ID: "u", Interests: models.StringList{"a"}}, nil
}
func (failingReplaceStore) LikedPapers(context.Context, string, int) ([]models.Paper, error) {
	return nil, nil
}
func (failingReplaceStore) LikedPaperIDs(context.Context, string) ([]string, error) { return nil, nil }
func (failingReplaceStore) Candidates(context.Context, []string) ([]models.PaperWithLikes, error) {
	return []models.PaperWithLikes{candidate("p", []string{"a"}, nil, 0)}, nil
}
func (failingReplaceStore) ReplaceRecommendations(context.Context, string, []models.Recommendation) error {
	return errors.New("tx aborted")
}

func TestGenerate_PersistenceFailureIsReturned(t *testing.T) {
	svc := NewRecommendationService(failingReplaceStore{}, 50, zap.NewNop())
	_, err := svc.Generate(context.Background(), "u", 10)
	assert.ErrorContains(t, err, "tx aborted")
}
