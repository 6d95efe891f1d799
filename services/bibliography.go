package services

import (
	"fmt"
	"strings"

	"paper-swipe/models"
)

const maxReferenceAuthors = 6

// FormatReference rendert ein Paper als kompakte Literaturangabe, z.B.
// "Doe, J., Roe, R. (2024). Title. arXiv. arXiv:2401.00001 doi:10.1/x".
func FormatReference(p models.Paper) string {
	authors := "Unknown Authors"
	if len(p.Authors) > 0 {
		list := []string(p.Authors)
		if len(list) > maxReferenceAuthors {
			list = append(list[:maxReferenceAuthors:maxReferenceAuthors], "et al.")
		}
		authors = strings.Join(list, ", ")
	}

	year := "n.d."
	if p.PublishedDate != nil && !p.PublishedDate.IsZero() {
		year = fmt.Sprintf("%d", p.PublishedDate.Year())
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Untitled"
	}

	var tail []string
	if p.ArxivID != nil {
		tail = append(tail, "arXiv:"+*p.ArxivID)
	}
	if p.DOI != nil {
		tail = append(tail, "doi:"+*p.DOI)
	}
	tailStr := ""
	if len(tail) > 0 {
		tailStr = " " + strings.Join(tail, " ")
	}

	if p.Venue != "" {
		return fmt.Sprintf("%s (%s). %s. %s.%s", authors, year, title, p.Venue, tailStr)
	}
	return fmt.Sprintf("%s (%s). %s.%s", authors, year, title, tailStr)
}

// BuildReferences nummeriert die Paper in der gegebenen Reihenfolge als "[n] ...".
// Paper mit gleicher ID werden nur einmal aufgeführt.
func BuildReferences(papers []models.Paper) []string {
	refs := make([]string, 0, len(papers))
	seen := make(map[string]struct{}, len(papers))
	for _, p := range papers {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		refs = append(refs, fmt.Sprintf("[%d] %s", len(refs)+1, FormatReference(p)))
	}
	return refs
}
