package services

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"paper-swipe/models"
	"paper-swipe/providers/arxiv"
)

const (
	maxKeywords         = 10
	maxFallbackKeywords = 5
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Vocabulary ist die geordnete Liste der Begriffe für die Keyword-Extraktion.
type Vocabulary struct {
	Terms []string `yaml:"terms"`
}

// DefaultVocabulary gibt das eingebettete Standardvokabular zurück.
func DefaultVocabulary() Vocabulary {
	v, err := ParseVocabulary(strings.NewReader(string(defaultVocabularyYAML)))
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}

// ParseVocabulary liest ein Vokabular im YAML-Format. Begriffe werden kleingeschrieben,
// leere Einträge und Duplikate verworfen.
func ParseVocabulary(r io.Reader) (Vocabulary, error) {
	var raw Vocabulary
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocabulary: %w", err)
	}
	seen := make(map[string]struct{}, len(raw.Terms))
	var v Vocabulary
	for _, t := range raw.Terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		v.Terms = append(v.Terms, t)
	}
	if len(v.Terms) == 0 {
		return Vocabulary{}, fmt.Errorf("vocabulary has no terms")
	}
	return v, nil
}

// LoadVocabulary lädt das Vokabular aus einer Datei oder, bei leerem Pfad, das Standardvokabular.
func LoadVocabulary(path string) (Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Vocabulary{}, err
	}
	defer f.Close()
	return ParseVocabulary(f)
}

// ExtractKeywords sucht jeden Vokabular-Begriff als Teilstring in Titel und Summary.
// Treffer bleiben in Vokabular-Reihenfolge, höchstens maxKeywords. Ohne Treffer werden
// die ersten fünf Kategorien verwendet.
func (v Vocabulary) ExtractKeywords(title, summary string, categories []string) []string {
	text := strings.ToLower(title + " " + summary)
	keywords := []string{}
	for _, term := range v.Terms {
		if strings.Contains(text, term) {
			keywords = append(keywords, term)
			if len(keywords) == maxKeywords {
				break
			}
		}
	}
	if len(keywords) == 0 {
		n := len(categories)
		if n > maxFallbackKeywords {
			n = maxFallbackKeywords
		}
		keywords = append(keywords, categories[:n]...)
	}
	return keywords
}

// NormalizePaper wandelt einen ArXiv-Datensatz in ein speicherbares Paper um (noch nicht gespeichert).
func (v Vocabulary) NormalizePaper(rec arxiv.Record) *models.Paper {
	p := &models.Paper{
		Title:      rec.Title,
		Abstract:   rec.Summary,
		Authors:    models.StringList(nonNil(rec.Authors)),
		ArxivID:    optional(rec.ID),
		DOI:        optional(rec.DOI),
		URL:        optional(rec.Link),
		PDFURL:     optional(rec.PDFLink),
		Venue:      models.VenueArxiv,
		Keywords:   models.StringList(v.ExtractKeywords(rec.Title, rec.Summary, rec.Categories)),
		Categories: models.StringList(nonNil(rec.Categories)),
		Citations:  0,
		Views:      0,
	}
	if !rec.Published.IsZero() {
		t := rec.Published
		p.PublishedDate = &t
	}
	return p
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
