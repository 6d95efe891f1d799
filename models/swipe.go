package models

import (
	"time"
)

// PaperLike speichert einen Swipe: liked=true für rechts, false für links.
type PaperLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"index"`

	UserID  string `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_paper_likes_user_paper"`
	PaperID string `json:"paperId" gorm:"size:36;not null;uniqueIndex:idx_paper_likes_user_paper;index"`
	Liked   bool   `json:"liked"`

	Paper Paper `json:"-" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE"`
}

func (PaperLike) TableName() string { return "paper_likes" }

// SavedPaper ist ein Eintrag in der Sammlung eines Nutzers.
type SavedPaper struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	UserID  string `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_saved_papers_user_paper"`
	PaperID string `json:"paperId" gorm:"size:36;not null;uniqueIndex:idx_saved_papers_user_paper"`

	Paper Paper `json:"paper" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE"`
}

func (SavedPaper) TableName() string { return "saved_papers" }

// Activity-Typen für den Feed.
const (
	ActivitySave   = "save"
	ActivityLike   = "like"
	ActivityImport = "import"
)

// Activity ist ein Eintrag im Aktivitäts-Feed.
type Activity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	UserID   string  `json:"userId" gorm:"size:36;not null;index"`
	Type     string  `json:"type" gorm:"size:32;not null"`
	PaperID  *string `json:"paperId,omitempty" gorm:"size:36"`
	Metadata string  `json:"metadata,omitempty" gorm:"type:text"` // JSON
}

func (Activity) TableName() string { return "activities" }
