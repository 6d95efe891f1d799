package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paper-swipe/models"
)

func TestFormatReference(t *testing.T) {
	published := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	p := models.Paper{
		Title:         "Attention Is All You Need ",
		Authors:       []string{"Vaswani, A.", "Shazeer, N."},
		ArxivID:       strPtr("1706.03762"),
		DOI:           strPtr("10.48550/arXiv.1706.03762"),
		PublishedDate: &published,
		Venue:         models.VenueArxiv,
	}
	assert.Equal(t,
		"Vaswani, A., Shazeer, N. (2024). Attention Is All You Need. arXiv. arXiv:1706.03762 doi:10.48550/arXiv.1706.03762",
		FormatReference(p))
}

func TestFormatReference_Fallbacks(t *testing.T) {
	assert.Equal(t, "Unknown Authors (n.d.). Untitled.", FormatReference(models.Paper{}))
}

func TestFormatReference_TruncatesAuthors(t *testing.T) {
	p := models.Paper{Title: "Big Collab", Authors: []string{"A", "B", "C", "D", "E", "F", "G"}}
	assert.Equal(t, "A, B, C, D, E, F, et al. (n.d.). Big Collab.", FormatReference(p))
	assert.Len(t, p.Authors, 7)
	assert.Equal(t, "G", p.Authors[6])
}

func TestBuildReferences(t *testing.T) {
	papers := []models.Paper{
		{ID: "1", Title: "One"},
		{ID: "2", Title: "Two"},
		{ID: "1", Title: "One"},
	}
	assert.Equal(t, []string{
		"[1] Unknown Authors (n.d.). One.",
		"[2] Unknown Authors (n.d.). Two.",
	}, BuildReferences(papers))
	assert.Empty(t, BuildReferences(nil))
}
