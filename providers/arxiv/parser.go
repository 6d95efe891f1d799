package arxiv

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	entryOpen = []byte("<entry")

	errUnterminatedEntry = errors.New("unterminated or malformed entry element")
)

// ParseFeed liest einen Atom-Feed und liefert alle gültigen Einträge in Feed-Reihenfolge.
// Jeder <entry> wird einzeln dekodiert: ein defekter Eintrag erzeugt einen ParseError in der
// zweiten Rückgabe, bricht aber nie den Rest des Feeds ab. Einträge ohne Titel oder Summary
// werden stillschweigend verworfen.
func ParseFeed(r io.Reader) ([]Record, []error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, []error{fmt.Errorf("read feed: %w", err)}
	}

	var (
		records []Record
		errs    []error
	)
	for i, chunk := range splitEntries(body) {
		if chunk == nil {
			errs = append(errs, &ParseError{Index: i, Err: errUnterminatedEntry})
			continue
		}
		rec, ok, err := parseEntry(chunk)
		if err != nil {
			errs = append(errs, &ParseError{Index: i, Err: err})
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, errs
}

// splitEntries liefert die rohen Bytes jedes <entry>-Elements. Die Grenzen kommen aus dem
// Token-Strom eines xml.Decoder, CDATA und Kommentare können einen Eintrag also nicht
// zerschneiden. Ein nicht geschlossener Eintrag wird als nil zurückgegeben.
func splitEntries(body []byte) [][]byte {
	var chunks [][]byte
	for offset := 0; offset < len(body); {
		resume, ok := scanEntries(body[offset:], &chunks)
		if !ok {
			break
		}
		offset += resume
	}
	return chunks
}

// scanEntries liest b bis zum Ende oder bis zum ersten Syntaxfehler. Nach einem Fehler
// meldet es die Position des nächsten "<entry" in b, an der ein neuer Decoder aufsetzt.
func scanEntries(b []byte, chunks *[][]byte) (int, bool) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	start := -1
	for {
		pos := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err != nil {
			if start >= 0 {
				*chunks = append(*chunks, nil)
			}
			if errors.Is(err, io.EOF) {
				return 0, false
			}
			from := max(int(dec.InputOffset()), pos+1, start+1)
			if from >= len(b) {
				return 0, false
			}
			next := indexEntryStart(b[from:])
			if next < 0 {
				return 0, false
			}
			return from + next, true
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "entry" {
				continue
			}
			// Ein neuer <entry> vor dem Ende bedeutet, dass der vorige nie geschlossen wurde.
			if start >= 0 {
				*chunks = append(*chunks, nil)
			}
			start = pos
		case xml.EndElement:
			if t.Name.Local == "entry" && start >= 0 {
				*chunks = append(*chunks, b[start:dec.InputOffset()])
				start = -1
			}
		}
	}
}

func indexEntryStart(b []byte) int {
	offset := 0
	for {
		i := bytes.Index(b[offset:], entryOpen)
		if i < 0 {
			return -1
		}
		pos := offset + i
		after := pos + len(entryOpen)
		if after < len(b) {
			switch b[after] {
			case '>', ' ', '\t', '\n', '\r', '/':
				return pos
			}
		}
		offset = after
	}
}

func parseEntry(chunk []byte) (Record, bool, error) {
	var e atomEntry
	if err := xml.Unmarshal(chunk, &e); err != nil {
		return Record{}, false, err
	}

	title := cleanText(e.Title)
	summary := cleanText(e.Summary)
	if title == "" || summary == "" {
		return Record{}, false, nil
	}

	rec := Record{
		ID:        lastPathSegment(e.ID),
		Title:     title,
		Summary:   summary,
		Published: parseTime(e.Published),
		Updated:   parseTime(e.Updated),
		DOI:       strings.TrimSpace(e.DOI),
	}
	for _, a := range e.Authors {
		if name := cleanText(a.Name); name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	for _, c := range e.Categories {
		if term := strings.TrimSpace(c.Term); term != "" {
			rec.Categories = append(rec.Categories, term)
		}
	}
	for _, l := range e.Links {
		href := strings.TrimSpace(l.Href)
		if href == "" {
			continue
		}
		p := linkPath(href)
		switch {
		case strings.Contains(p, "abs"):
			if rec.Link == "" {
				rec.Link = href
			}
		case strings.Contains(p, "pdf"):
			if rec.PDFLink == "" {
				rec.PDFLink = href
			}
		}
	}
	return rec, true, nil
}

// cleanText fasst Zeilenumbrüche und Leerraum zu einzelnen Leerzeichen zusammen.
func cleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func lastPathSegment(id string) string {
	id = strings.TrimRight(strings.TrimSpace(id), "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

func linkPath(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return href
	}
	return u.Path
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
