// Package arxiv enthält die Logik für die Interaktion mit der ArXiv-Such-API.
package arxiv

import (
	"fmt"
	"time"
)

// Sortierfelder und -richtungen der ArXiv-API.
const (
	SortRelevance       = "relevance"
	SortLastUpdatedDate = "lastUpdatedDate"
	SortSubmittedDate   = "submittedDate"

	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

const (
	// MaxResultsCeiling ist die systemweite Obergrenze pro Anfrage.
	MaxResultsCeiling = 100
	// DefaultMaxResults wird verwendet, wenn keine Anzahl angegeben ist.
	DefaultMaxResults = 20

	matchAllQuery = "all"
)

// Record ist ein geparster Eintrag aus dem ArXiv-Feed, noch nicht normalisiert.
type Record struct {
	ID         string
	Title      string
	Summary    string
	Authors    []string
	Categories []string
	Published  time.Time
	Updated    time.Time
	Link       string
	PDFLink    string
	DOI        string
}

// SearchParams beschreibt eine einzelne Suchanfrage.
type SearchParams struct {
	SearchQuery string `json:"searchQuery"`
	Category    string `json:"category"`
	MaxResults  int    `json:"maxResults"`
	SortBy      string `json:"sortBy"`
	SortOrder   string `json:"sortOrder"`
}

// Normalize setzt Standardwerte, begrenzt MaxResults auf [1, ceiling] und prüft die Sortierung.
// Ein ceiling <= 0 oder > MaxResultsCeiling wird durch MaxResultsCeiling ersetzt.
func (p SearchParams) Normalize(ceiling int) (SearchParams, error) {
	if ceiling <= 0 || ceiling > MaxResultsCeiling {
		ceiling = MaxResultsCeiling
	}
	if p.MaxResults <= 0 {
		p.MaxResults = DefaultMaxResults
	}
	if p.MaxResults > ceiling {
		p.MaxResults = ceiling
	}

	switch p.SortBy {
	case "":
		p.SortBy = SortSubmittedDate
	case "lastUpdated":
		p.SortBy = SortLastUpdatedDate
	case SortRelevance, SortLastUpdatedDate, SortSubmittedDate:
	default:
		return p, &ValidationError{Message: fmt.Sprintf("unsupported sortBy %q", p.SortBy)}
	}

	switch p.SortOrder {
	case "":
		p.SortOrder = OrderDescending
	case OrderAscending, OrderDescending:
	default:
		return p, &ValidationError{Message: fmt.Sprintf("unsupported sortOrder %q", p.SortOrder)}
	}
	return p, nil
}

// Query baut den search_query-Parameter: Text und Kategorie werden mit AND verknüpft.
func (p SearchParams) Query() string {
	switch {
	case p.SearchQuery != "" && p.Category != "":
		return p.SearchQuery + " AND cat:" + p.Category
	case p.Category != "":
		return "cat:" + p.Category
	case p.SearchQuery != "":
		return p.SearchQuery
	default:
		return matchAllQuery
	}
}

// feed-Strukturen für encoding/xml (Atom + arxiv-Namespace).
type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
	DOI        string         `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}
