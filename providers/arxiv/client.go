package arxiv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL ist der öffentliche Endpunkt der ArXiv-API.
	DefaultBaseURL = "https://export.arxiv.org/api/query"
	// DefaultTimeout gilt, wenn kein Timeout konfiguriert ist.
	DefaultTimeout = 30 * time.Second

	maxFeedBytes = 20 << 20
	userAgent    = "paper-swipe/1.0 (+https://export.arxiv.org/api)"
)

var fetchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "arxiv_fetch_duration_seconds",
		Help:    "Duration of ArXiv API requests.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(fetchDuration)
}

// Archiver speichert den rohen Feed einer erfolgreichen Anfrage (z.B. in S3).
type Archiver interface {
	ArchiveFeed(ctx context.Context, query string, body []byte) error
}

// userAgentTransport setzt bei jeder Anfrage den User-Agent-Header.
type userAgentTransport struct {
	Transport http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.Transport.RoundTrip(req)
}

// Options konfigurieren einen Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int // Obergrenze pro Anfrage, höchstens MaxResultsCeiling
	HTTPClient *http.Client
	Archiver   Archiver
}

// Client kapselt die Interaktion mit der ArXiv-Such-API.
type Client struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	archiver   Archiver
	logger     *zap.Logger
}

// NewClient erstellt einen neuen ArXiv-Client.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxResults <= 0 || opts.MaxResults > MaxResultsCeiling {
		opts.MaxResults = MaxResultsCeiling
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   opts.Timeout,
			Transport: &userAgentTransport{Transport: http.DefaultTransport},
		}
	}
	return &Client{
		baseURL:    opts.BaseURL,
		maxResults: opts.MaxResults,
		httpClient: hc,
		archiver:   opts.Archiver,
		logger:     logger,
	}
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return "arxiv"
}

// MaxResults gibt die effektive Obergrenze pro Anfrage zurück.
func (c *Client) MaxResults() int {
	return c.maxResults
}

// Search führt genau eine Anfrage gegen die ArXiv-API aus und parst den Feed.
// Es gibt keine automatischen Wiederholungen.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Record, error) {
	params, err := params.Normalize(c.maxResults)
	if err != nil {
		return nil, err
	}
	query := params.Query()
	log := c.logger.With(zap.String("query", query), zap.Int("max_results", params.MaxResults))

	reqURL := c.buildURL(query, params)
	log.Debug("Calling ArXiv API", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	start := time.Now()
	body, err := c.do(req)
	if err != nil {
		outcome := "error"
		var te *TimeoutError
		if errors.As(err, &te) {
			outcome = "timeout"
		}
		fetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		log.Error("ArXiv request failed", zap.Error(err))
		return nil, err
	}
	fetchDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	if c.archiver != nil {
		if err := c.archiver.ArchiveFeed(ctx, query, body); err != nil {
			log.Warn("Failed to archive ArXiv feed", zap.Error(err))
		}
	}

	records, parseErrs := ParseFeed(bytes.NewReader(body))
	for _, perr := range parseErrs {
		log.Warn("Skipping malformed ArXiv entry", zap.Error(perr))
	}
	if len(records) > params.MaxResults {
		records = records[:params.MaxResults]
	}
	log.Info("ArXiv search completed", zap.Int("records", len(records)), zap.Int("skipped_entries", len(parseErrs)))
	return records, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func (c *Client) buildURL(query string, params SearchParams) string {
	v := url.Values{}
	v.Set("search_query", query)
	v.Set("start", "0")
	v.Set("max_results", strconv.Itoa(params.MaxResults))
	v.Set("sortBy", params.SortBy)
	v.Set("sortOrder", params.SortOrder)
	return c.baseURL + "?" + v.Encode()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
