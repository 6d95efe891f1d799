package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paper-swipe/models"
)

// Repository ist die gorm-Implementierung aller Persistenz-Ports der Services.
type Repository struct {
	db *gorm.DB
}

// NewRepository erstellt ein Repository über einer geöffneten Datenbank.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Ping prüft die Datenbankverbindung.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FindByExternalIDOrDOI sucht ein Paper mit gleicher ArXiv-ID ODER gleicher DOI.
// Nur gesetzte Felder nehmen am Vergleich teil; ohne Treffer wird (nil, nil) zurückgegeben.
func (r *Repository) FindByExternalIDOrDOI(ctx context.Context, arxivID, doi *string) (*models.Paper, error) {
	if arxivID == nil && doi == nil {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Paper{})
	if arxivID != nil {
		query = query.Where("arxiv_id = ?", *arxivID)
		if doi != nil {
			query = query.Or("doi = ?", *doi)
		}
	} else {
		query = query.Where("doi = ?", *doi)
	}

	var existing models.Paper
	if err := query.First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

// CreatePaper speichert ein neues Paper. Kollisionen auf arxiv_id oder doi liefern gorm.ErrDuplicatedKey.
func (r *Repository) CreatePaper(ctx context.Context, p *models.Paper) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetPaper lädt ein Paper samt Anzahl positiver Likes.
func (r *Repository) GetPaper(ctx context.Context, id string) (*models.PaperWithLikes, error) {
	db := r.db.WithContext(ctx)
	var p models.Paper
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPaperNotFound
		}
		return nil, err
	}
	var likes int64
	if err := db.Model(&models.PaperLike{}).Where("paper_id = ? AND liked = ?", id, true).Count(&likes).Error; err != nil {
		return nil, err
	}
	return &models.PaperWithLikes{Paper: p, LikeCount: int(likes)}, nil
}

// GetUser lädt einen Nutzer.
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser legt einen Nutzer an.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// UpdateInterests ersetzt die deklarierten Interessen eines Nutzers.
func (r *Repository) UpdateInterests(ctx context.Context, id string, interests []string) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("interests", models.StringList(interests))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrUserNotFound
	}
	return r.GetUser(ctx, id)
}

// LikedPapers liefert die zuletzt gelikten Paper eines Nutzers, höchstens limit Stück.
func (r *Repository) LikedPapers(ctx context.Context, userID string, limit int) ([]models.Paper, error) {
	var likes []models.PaperLike
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Where("user_id = ? AND liked = ?", userID, true).
		Order("updated_at desc").
		Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	papers := make([]models.Paper, 0, len(likes))
	for _, l := range likes {
		if l.Paper.ID != "" {
			papers = append(papers, l.Paper)
		}
	}
	return papers, nil
}

// LikedPaperIDs liefert die IDs aller vom Nutzer gelikten Paper.
func (r *Repository) LikedPaperIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.PaperLike{}).
		Where("user_id = ? AND liked = ?", userID, true).
		Pluck("paper_id", &ids).Error
	return ids, err
}

// Candidates lädt alle Paper außer den ausgeschlossenen, jeweils mit Like-Anzahl.
func (r *Repository) Candidates(ctx context.Context, excludeIDs []string) ([]models.PaperWithLikes, error) {
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Paper{}).Order("created_at desc, id")
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	var papers []models.Paper
	if err := query.Find(&papers).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		PaperID string
		Count   int
	}
	err := db.Model(&models.PaperLike{}).
		Select("paper_id, COUNT(*) AS count").
		Where("liked = ?", true).
		Group("paper_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byPaper := make(map[string]int, len(counts))
	for _, c := range counts {
		byPaper[c.PaperID] = c.Count
	}

	out := make([]models.PaperWithLikes, 0, len(papers))
	for _, p := range papers {
		out = append(out, models.PaperWithLikes{Paper: p, LikeCount: byPaper[p.ID]})
	}
	return out, nil
}

// ReplaceRecommendations ersetzt alle Empfehlungen eines Nutzers in einer Transaktion.
func (r *Repository) ReplaceRecommendations(ctx context.Context, userID string, recs []models.Recommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.CreateInBatches(&recs, 100).Error
	})
}

// Recommendations liefert die gespeicherten Empfehlungen eines Nutzers, beste zuerst.
func (r *Repository) Recommendations(ctx context.Context, userID string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("score desc, paper_id").Find(&recs).Error
	return recs, err
}

// SetLike speichert einen Swipe. Ein Like legt das Paper zusätzlich in der Sammlung ab
// und erzeugt eine "like"-Aktivität, ein Dislike entfernt es aus der Sammlung.
func (r *Repository) SetLike(ctx context.Context, userID, paperID string, liked bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.PaperLike{UserID: userID, PaperID: paperID, Liked: liked}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "paper_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).Omit(clause.Associations).Create(&like).Error
		if err != nil {
			return err
		}
		if !liked {
			return removeSaved(tx, userID, paperID)
		}
		if err := addSaved(tx, userID, paperID); err != nil {
			return err
		}
		return recordActivity(tx, userID, models.ActivityLike, paperID)
	})
}

// SetSaved fügt ein Paper der Sammlung hinzu (mit "save"-Aktivität) oder entfernt es.
func (r *Repository) SetSaved(ctx context.Context, userID, paperID string, saved bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !saved {
			return removeSaved(tx, userID, paperID)
		}
		if err := addSaved(tx, userID, paperID); err != nil {
			return err
		}
		return recordActivity(tx, userID, models.ActivitySave, paperID)
	})
}

func recordActivity(tx *gorm.DB, userID, kind, paperID string) error {
	return tx.Create(&models.Activity{UserID: userID, Type: kind, PaperID: &paperID}).Error
}

// RecordActivity hängt einen Eintrag an den Aktivitäts-Feed an.
func (r *Repository) RecordActivity(ctx context.Context, a *models.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func addSaved(tx *gorm.DB, userID, paperID string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "paper_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&models.SavedPaper{UserID: userID, PaperID: paperID}).Error
}

func removeSaved(tx *gorm.DB, userID, paperID string) error {
	return tx.Where("user_id = ? AND paper_id = ?", userID, paperID).Delete(&models.SavedPaper{}).Error
}

// UnswipedPapers liefert die neuesten Paper, die der Nutzer noch nicht geswipt hat.
func (r *Repository) UnswipedPapers(ctx context.Context, userID string, limit int) ([]models.Paper, error) {
	db := r.db.WithContext(ctx)
	swiped := db.Model(&models.PaperLike{}).Select("paper_id").Where("user_id = ?", userID)

	var papers []models.Paper
	err := db.Where("id NOT IN (?)", swiped).
		Order("created_at desc, id").
		Limit(limit).
		Find(&papers).Error
	return papers, err
}

// SavedPapers liefert die Sammlung eines Nutzers, zuletzt gespeicherte zuerst.
func (r *Repository) SavedPapers(ctx context.Context, userID string) ([]models.Paper, error) {
	var saved []models.SavedPaper
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&saved).Error
	if err != nil {
		return nil, err
	}
	papers := make([]models.Paper, 0, len(saved))
	for _, s := range saved {
		papers = append(papers, s.Paper)
	}
	return papers, nil
}

// Activities liefert die letzten Aktivitäten eines Nutzers.
func (r *Repository) Activities(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	var acts []models.Activity
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Limit(limit).Find(&acts).Error
	return acts, err
}

// CreateCollaboration legt eine Kollaboration an.
func (r *Repository) CreateCollaboration(ctx context.Context, c *models.Collaboration) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetCollaboration lädt eine Kollaboration oder liefert models.ErrCollaborationNotFound.
func (r *Repository) GetCollaboration(ctx context.Context, id string) (*models.Collaboration, error) {
	var c models.Collaboration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCollaborationNotFound
		}
		return nil, err
	}
	return &c, nil
}

// OpenCollaborations liefert die offenen Kollaborationen, neueste zuerst.
func (r *Repository) OpenCollaborations(ctx context.Context, limit int) ([]models.Collaboration, error) {
	var out []models.Collaboration
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CollaborationOpen).
		Order("created_at desc, id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateCollaborationRequest speichert eine Anfrage. Eine zweite Anfrage desselben Nutzers
// liefert gorm.ErrDuplicatedKey.
func (r *Repository) CreateCollaborationRequest(ctx context.Context, req *models.CollaborationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}
