package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultCatalogURL queries the NASA Exoplanet Archive composite table
	// for the columns the synthesizer uses.
	DefaultCatalogURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync?query=" +
		"select+hostname,pl_name,pl_orbper,pl_rade,st_teff,st_rad,ra,dec,sy_dist,disc_year,discoverymethod" +
		"+from+pscomppars&format=csv"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// maxCatalogBytes bounds the response body.
	maxCatalogBytes = 64 << 20
)

// FetchError reports that the catalog could not be obtained. Callers may
// retry or continue with the home system only.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch catalog from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves the catalog from a URL or a local file.
type Fetcher struct {
	client  *http.Client
	source  string
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSource sets the catalog location: an http(s) URL, a file:// URL or a
// plain file path.
func WithSource(src string) FetcherOption {
	return func(f *Fetcher) {
		if src != "" {
			f.source = src
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new catalog fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:  DefaultCatalogURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// FetchResult contains the result of a fetch operation.
type FetchResult struct {
	Catalog   *Catalog
	FetchedAt time.Time
	Duration  time.Duration
	Bytes     int
	Error     error
}

// Fetch retrieves and parses the catalog. A source that parses to zero
// records is not an error: callers see an empty catalog and report
// "system not found" on lookup.
func (f *Fetcher) Fetch(ctx context.Context) FetchResult {
	start := time.Now()
	result := FetchResult{
		FetchedAt: start,
	}

	raw, err := f.FetchRaw(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.Bytes = len(raw)

	records, report := ParseReport(bytes.NewReader(raw))
	result.Catalog = New(records, f.source)
	result.Catalog.Report = report

	return result
}

// FetchRaw retrieves the raw catalog bytes without parsing.
func (f *Fetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	if path, ok := localPath(f.source); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &FetchError{Source: f.source, Err: err}
		}
		return data, nil
	}

	data, err := f.fetchHTTP(ctx)
	if err != nil {
		return nil, &FetchError{Source: f.source, Err: err}
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-orrery/1.0 (Exoplanet Orrery)")
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// Source returns the configured catalog location.
func (f *Fetcher) Source() string {
	return f.source
}

// IsLocal reports whether the source is a file on disk.
func (f *Fetcher) IsLocal() bool {
	_, ok := localPath(f.source)
	return ok
}

// LocalPath returns the file path of a local source.
func (f *Fetcher) LocalPath() (string, bool) {
	return localPath(f.source)
}

func localPath(src string) (string, bool) {
	switch {
	case strings.HasPrefix(src, "file://"):
		return strings.TrimPrefix(src, "file://"), true
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return "", false
	default:
		return src, true
	}
}

// Load reads and parses a local catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Source: path, Err: err}
	}
	records, report := ParseReport(bytes.NewReader(data))
	c := New(records, path)
	c.Report = report
	return c, nil
}
