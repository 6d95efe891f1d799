package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"paper-swipe/models"
)

const (
	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50
	DefaultLikeHistory         = 50

	keywordWeight    = 0.3
	categoryWeight   = 0.2
	popularBonus     = 0.1
	citedBonus       = 0.15
	recentBonus      = 0.05
	socialProofBonus = 0.1

	popularLikes     = 10
	socialProofLikes = 5
	highlyCited      = 100
	recentWindow     = 90 * 24 * time.Hour
	minScore         = 0.1

	defaultReason = "Recommended for you"
)

// Profile beschreibt die Vorlieben eines Nutzers in Kleinschreibung.
type Profile struct {
	Keywords   map[string]struct{}
	Categories map[string]struct{}
}

// BuildProfile bildet das Profil aus gelikten Papern und deklarierten Interessen.
// Interessen zählen als Keywords.
func BuildProfile(liked []models.Paper, interests []string) Profile {
	p := Profile{
		Keywords:   make(map[string]struct{}),
		Categories: make(map[string]struct{}),
	}
	for _, paper := range liked {
		for _, k := range paper.Keywords {
			p.Keywords[strings.ToLower(k)] = struct{}{}
		}
		for _, c := range paper.Categories {
			p.Categories[strings.ToLower(c)] = struct{}{}
		}
	}
	for _, i := range interests {
		p.Keywords[strings.ToLower(i)] = struct{}{}
	}
	return p
}

// Score bewertet alle Kandidaten und liefert die besten, absteigend nach Score
// (Gleichstand nach Paper-ID), nur Scores über 0.1, höchstens limit Einträge.
// Score hängt nur von seinen Argumenten ab. Ein limit <= 0 ergibt eine leere Liste.
func Score(profile Profile, candidates []models.PaperWithLikes, now time.Time, limit int) []models.RecommendationScore {
	if limit <= 0 {
		return []models.RecommendationScore{}
	}
	scored := make([]models.RecommendationScore, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scorePaper(profile, c, now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].PaperID < scored[j].PaperID
	})

	out := make([]models.RecommendationScore, 0, limit)
	for _, s := range scored {
		if len(out) == limit {
			break
		}
		if s.Score > minScore {
			out = append(out, s)
		}
	}
	return out
}

func scorePaper(profile Profile, c models.PaperWithLikes, now time.Time) models.RecommendationScore {
	var (
		score   float64
		reasons []string
	)

	if n := overlap(c.Keywords, profile.Keywords); n > 0 {
		score += float64(n) * keywordWeight
		reasons = append(reasons, fmt.Sprintf("Matches %d of your interests", n))
	}
	if n := overlap(c.Categories, profile.Categories); n > 0 {
		score += float64(n) * categoryWeight
		reasons = append(reasons, fmt.Sprintf("In %d of your favorite categories", n))
	}
	if c.LikeCount > popularLikes {
		score += popularBonus
		reasons = append(reasons, "Popular among researchers")
	}
	if c.Citations > highlyCited {
		score += citedBonus
		reasons = append(reasons, "Highly cited")
	}
	if c.PublishedDate != nil && now.Sub(*c.PublishedDate) < recentWindow {
		score += recentBonus
		reasons = append(reasons, "Recently published")
	}
	// Überschneidet sich absichtlich mit dem Popularitätsbonus.
	if c.LikeCount > socialProofLikes {
		score += socialProofBonus
		reasons = append(reasons, "Liked by researchers with similar interests")
	}

	reason := strings.Join(reasons, "; ")
	if reason == "" {
		reason = defaultReason
	}
	return models.RecommendationScore{
		PaperID: c.ID,
		Score:   clamp01(score),
		Reason:  reason,
	}
}

// overlap zählt die verschiedenen Werte aus values, die im Set vorkommen.
func overlap(values []string, set map[string]struct{}) int {
	seen := make(map[string]struct{}, len(values))
	n := 0
	for _, v := range values {
		v = strings.ToLower(v)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampRecommendationLimit wendet Standardwert und Obergrenze auf ein angefragtes Limit an.
func ClampRecommendationLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		return MaxRecommendationLimit
	}
	return limit
}

// RecommendationService berechnet Empfehlungen und ersetzt den Cache des Nutzers.
type RecommendationService struct {
	store   RecommendationStore
	history int
	logger  *zap.Logger
	now     func() time.Time
}

// NewRecommendationService erstellt eine neue Instanz des RecommendationService.
// history begrenzt die Anzahl gelikter Paper, die in das Profil einfließen.
func NewRecommendationService(store RecommendationStore, history int, logger *zap.Logger) *RecommendationService {
	if history <= 0 {
		history = DefaultLikeHistory
	}
	return &RecommendationService{store: store, history: history, logger: logger, now: time.Now}
}

// Generate berechnet die Empfehlungen für einen Nutzer und speichert sie.
func (s *RecommendationService) Generate(ctx context.Context, userID string, limit int) ([]models.RecommendationScore, error) {
	log := s.logger.With(zap.String("user_id", userID))
	limit = ClampRecommendationLimit(limit)

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	liked, err := s.store.LikedPapers(ctx, userID, s.history)
	if err != nil {
		return nil, fmt.Errorf("load liked papers: %w", err)
	}
	likedIDs, err := s.store.LikedPaperIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load liked paper ids: %w", err)
	}
	candidates, err := s.store.Candidates(ctx, likedIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	profile := BuildProfile(liked, user.Interests)
	scores := Score(profile, candidates, s.now(), limit)

	rows := make([]models.Recommendation, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, models.Recommendation{
			UserID:  userID,
			PaperID: sc.PaperID,
			Score:   sc.Score,
			Reason:  sc.Reason,
		})
	}
	if err := s.store.ReplaceRecommendations(ctx, userID, rows); err != nil {
		log.Error("Failed to store recommendations", zap.Error(err))
		return nil, fmt.Errorf("store recommendations: %w", err)
	}
	recommendationsGenerated.Add(float64(len(rows)))

	log.Info("Recommendations generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("liked", len(liked)),
		zap.Int("returned", len(scores)),
	)
	return scores, nil
}
