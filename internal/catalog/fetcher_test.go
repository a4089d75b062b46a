package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetcher_HTTP(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(archiveCSV))
	}))
	defer srv.Close()

	f := NewFetcher(WithSource(srv.URL), WithTimeout(5*time.Second))
	if f.IsLocal() {
		t.Fatal("http source reported as local")
	}

	result := f.Fetch(context.Background())
	if result.Error != nil {
		t.Fatalf("Fetch error: %v", result.Error)
	}
	if result.Catalog.Len() != 4 {
		t.Errorf("records = %d, want 4", result.Catalog.Len())
	}
	if result.Catalog.Report.Kept != 4 {
		t.Errorf("report kept = %d, want 4", result.Catalog.Report.Kept)
	}
	if result.Bytes != len(archiveCSV) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, len(archiveCSV))
	}
	if gotUA == "" {
		t.Error("expected a User-Agent header")
	}
}

func TestFetcher_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := NewFetcher(WithSource(srv.URL)).Fetch(context.Background())
	if result.Error == nil {
		t.Fatal("expected error for 503")
	}
	var fe *FetchError
	if !errors.As(result.Error, &fe) {
		t.Fatalf("expected *FetchError, got %T", result.Error)
	}
	if fe.Source != srv.URL {
		t.Errorf("FetchError.Source = %q, want %q", fe.Source, srv.URL)
	}
	if result.Catalog != nil {
		t.Error("catalog should be nil on error")
	}
}

func TestFetcher_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exoplanets.csv")
	if err := os.WriteFile(path, []byte(archiveCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{path, "file://" + path} {
		f := NewFetcher(WithSource(src))
		if !f.IsLocal() {
			t.Errorf("%s: expected local source", src)
		}
		result := f.Fetch(context.Background())
		if result.Error != nil {
			t.Fatalf("%s: Fetch error: %v", src, result.Error)
		}
		if !result.Catalog.Has("Kepler-22") {
			t.Errorf("%s: Kepler-22 missing", src)
		}
	}
}

func TestFetcher_MissingFile(t *testing.T) {
	f := NewFetcher(WithSource(filepath.Join(t.TempDir(), "missing.csv")))
	result := f.Fetch(context.Background())

	var fe *FetchError
	if !errors.As(result.Error, &fe) {
		t.Fatalf("expected *FetchError, got %v", result.Error)
	}
	if !errors.Is(result.Error, os.ErrNotExist) {
		t.Error("FetchError should unwrap to os.ErrNotExist")
	}
}

func TestFetcher_EmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	result := NewFetcher(WithSource(srv.URL)).Fetch(context.Background())
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if result.Catalog.Len() != 0 {
		t.Errorf("records = %d, want 0", result.Catalog.Len())
	}
}

func TestFetcher_Defaults(t *testing.T) {
	f := NewFetcher(WithSource(""))
	if f.Source() != DefaultCatalogURL {
		t.Errorf("Source = %q, want default", f.Source())
	}
}

func TestWatcher_ReloadsOnWriteArchiveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exoplanets.csv")
	if err := os.WriteFile(path, []byte("hostname,pl_name\nA,A b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(archiveCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case reload := <-w.Reloads:
		if reload.Err != nil {
			t.Fatalf("reload error: %v", reload.Err)
		}
		if reload.Catalog.Len() != 4 {
			t.Errorf("reloaded records = %d, want 4", reload.Catalog.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
