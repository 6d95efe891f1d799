package models

import "time"

// Recommendation ist ein zwischengespeichertes Empfehlungsergebnis für einen Nutzer.
// Die Zeilen eines Nutzers werden bei jeder Berechnung komplett ersetzt.
type Recommendation struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	UserID  string  `json:"userId" gorm:"size:36;not null;index"`
	PaperID string  `json:"paperId" gorm:"size:36;not null"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason" gorm:"type:text"`
}

// TableName gibt explizit den Tabellennamen an.
func (Recommendation) TableName() string {
	return "recommendations"
}

// RecommendationScore ist das berechnete Ergebnis für ein einzelnes Paper.
type RecommendationScore struct {
	PaperID string  `json:"paperId"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
}
