package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestCollector_Output(t *testing.T) {
	m := NewCollector()

	m.RecordFetch(2*time.Second, 5000, 4000, nil)
	m.RecordFetch(time.Second, 0, 0, errors.New("boom"))
	m.RecordSystem(nil)
	m.RecordSystem(nil)
	m.RecordSystem(errors.New("missing"))
	m.RecordRequest("/api/home", 200, 10*time.Millisecond)
	m.RecordRateLimited()
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	m.RecordFrame()

	out := scrape(t, m)
	tests := []string{
		"orrery_catalog_rows 5000",
		"orrery_catalog_hosts 4000",
		`orrery_catalog_fetch_duration_seconds_count{result="ok"} 1`,
		`orrery_catalog_fetch_duration_seconds_count{result="error"} 1`,
		`orrery_systems_synthesized_total{result="ok"} 2`,
		`orrery_systems_synthesized_total{result="not_found"} 1`,
		`orrery_http_requests_total{code="200",route="/api/home"} 1`,
		"orrery_http_rate_limited_total 1",
		"orrery_websocket_clients 1",
		"orrery_orbit_frames_sent_total 1",
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestCollector_PrivateRegistry(t *testing.T) {
	// Two collectors must not collide on registration.
	a := NewCollector()
	b := NewCollector()
	a.RecordRateLimited()

	if strings.Contains(scrape(t, b), "orrery_http_rate_limited_total 1") {
		t.Error("collectors share state")
	}
}
