package system

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestExportSystem_JSON(t *testing.T) {
	d := SynthesizeHome()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	export := ExportSystem(d, now)
	if len(export.PlanetInfo) != len(d.Planets) {
		t.Fatalf("planet info = %d, want %d", len(export.PlanetInfo), len(d.Planets))
	}
	for _, info := range export.PlanetInfo {
		if info.Source != "known" {
			t.Errorf("%s source = %q, want known", info.Name, info.Source)
		}
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	sys, ok := decoded["system"].(map[string]any)
	if !ok {
		t.Fatal("missing system object")
	}
	star := sys["star"].(map[string]any)
	if star["spectral_type"] != "G" {
		t.Errorf("spectral_type = %v, want G", star["spectral_type"])
	}
	if _, ok := decoded["habitable_zone"]; !ok {
		t.Error("missing habitable_zone")
	}
}

func TestExportSystem_Nil(t *testing.T) {
	export := ExportSystem(nil, time.Now())
	if export.System != nil || len(export.PlanetInfo) != 0 {
		t.Errorf("nil export = %+v", export)
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, SynthesizeHome())
	out := buf.String()

	for _, want := range []string{"Solar System", "Jupiter", "Eris", "Total: 13 planets"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	buf.Reset()
	WriteSummaryTable(&buf, nil)
	if !strings.Contains(buf.String(), "No system") {
		t.Errorf("nil summary = %q", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("Kepler-1649 c", 8); got != "Kepler-…" {
		t.Errorf("truncateStr = %q", got)
	}
	if got := truncateStr("Io", 8); got != "Io" {
		t.Errorf("truncateStr = %q", got)
	}
}
