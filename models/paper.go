package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VenueArxiv kennzeichnet Paper, die aus ArXiv importiert wurden.
const VenueArxiv = "arXiv"

// Paper repräsentiert eine wissenschaftliche Veröffentlichung und deren Metadaten.
type Paper struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title    string     `json:"title" gorm:"not null"`
	Abstract string     `json:"abstract" gorm:"type:text"`
	Authors  StringList `json:"authors" gorm:"type:text"`

	// Externe Identifier: NULL, wenn unbekannt; eindeutig, wenn gesetzt.
	ArxivID *string `json:"arxivId,omitempty" gorm:"column:arxiv_id;uniqueIndex;size:64"`
	DOI     *string `json:"doi,omitempty" gorm:"column:doi;uniqueIndex;size:255"`

	URL           *string    `json:"url,omitempty"`
	PDFURL        *string    `json:"pdfUrl,omitempty" gorm:"column:pdf_url"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	Venue         string     `json:"venue"`

	Keywords   StringList `json:"keywords" gorm:"type:text"`
	Categories StringList `json:"categories" gorm:"type:text"`

	Citations int `json:"citations" gorm:"not null;default:0"`
	Views     int `json:"views" gorm:"not null;default:0"`
}

// TableName gibt explizit den Tabellennamen an.
func (Paper) TableName() string {
	return "papers"
}

// BeforeCreate vergibt eine UUID, falls noch keine gesetzt ist.
func (p *Paper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PaperWithLikes ist ein Paper zusammen mit der Anzahl positiver Likes.
type PaperWithLikes struct {
	Paper
	LikeCount int `json:"likeCount"`
}
