package arxiv

import "fmt"

// FetchError beschreibt eine fehlgeschlagene Anfrage an ArXiv.
// StatusCode ist 0, wenn keine HTTP-Antwort vorlag.
type FetchError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("arxiv fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("arxiv fetch failed: status %d (%s)", e.StatusCode, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TimeoutError wird zurückgegeben, wenn die Anfrage das konfigurierte Timeout überschreitet.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("arxiv request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ParseError betrifft genau einen Feed-Eintrag; der Rest des Feeds wird weiter verarbeitet.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError beschreibt ungültige Suchparameter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
