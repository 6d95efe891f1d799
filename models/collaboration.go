package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status-Werte für Kollaborationen und Anfragen.
const (
	CollaborationOpen   = "open"
	CollaborationClosed = "closed"

	RequestPending = "pending"
)

// Collaboration ist ein Aufruf zur Zusammenarbeit, optional zu einem Paper.
type Collaboration struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID      string  `json:"userId" gorm:"size:36;not null;index"`
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	PaperID     *string `json:"paperId,omitempty" gorm:"size:36;index"`
	Status      string  `json:"status" gorm:"size:16;not null;default:open"`
}

func (Collaboration) TableName() string { return "collaborations" }

// BeforeCreate vergibt eine UUID, falls noch keine gesetzt ist.
func (c *Collaboration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CollaborationRequest ist die Anfrage eines Nutzers, an einer Kollaboration teilzunehmen.
// Pro (Kollaboration, Nutzer) gibt es höchstens eine Anfrage.
type CollaborationRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CollaborationID string  `json:"collaborationId" gorm:"size:36;not null;uniqueIndex:idx_collaboration_requests_collab_user"`
	UserID          string  `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_collaboration_requests_collab_user"`
	Message         *string `json:"message,omitempty" gorm:"type:text"`
	Status          string  `json:"status" gorm:"size:16;not null;default:pending"`
}

func (CollaborationRequest) TableName() string { return "collaboration_requests" }

// BeforeCreate vergibt eine UUID, falls noch keine gesetzt ist.
func (r *CollaborationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
