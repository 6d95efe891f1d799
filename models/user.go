package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User ist ein registrierter Nutzer mit deklarierten Interessen.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name      string     `json:"name"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Interests StringList `json:"interests" gorm:"type:text"`
}

// TableName gibt explizit den Tabellennamen an.
func (User) TableName() string {
	return "users"
}

// BeforeCreate vergibt eine UUID, falls noch keine gesetzt ist.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
