package system

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SystemExport is the JSON-serializable representation of a system.
type SystemExport struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	System        *Descriptor     `json:"system"`
	HabitableZone HabitableExport `json:"habitable_zone"`
	PlanetInfo    []InfoExport    `json:"planet_info"`
}

// HabitableExport carries both habitable-zone mappings.
type HabitableExport struct {
	Real    Zone `json:"real"`
	Compact Zone `json:"compact"`
}

// InfoExport is a JSON-friendly resolved PlanetInfo.
type InfoExport struct {
	Name           string     `json:"name"`
	Source         string     `json:"source"` // "known" or "estimated"
	DiameterKm     float64    `json:"diameter_km"`
	TemperatureC   float64    `json:"temperature_c"`
	Atmosphere     Atmosphere `json:"atmosphere,omitempty"`
	AtmosphereDesc string     `json:"atmosphere_desc"`
}

// ExportSystem converts a descriptor to an exportable format.
func ExportSystem(d *Descriptor, generatedAt time.Time) *SystemExport {
	if d == nil {
		return &SystemExport{GeneratedAt: generatedAt}
	}

	export := &SystemExport{
		GeneratedAt: generatedAt,
		System:      d,
		HabitableZone: HabitableExport{
			Real:    d.HabitableZone(true),
			Compact: d.HabitableZone(false),
		},
	}

	for _, p := range d.Planets {
		info := ResolveInfo(p)
		source := "estimated"
		if _, ok := info.(Known); ok {
			source = "known"
		}
		temp := info.TemperatureC()
		if math.IsNaN(temp) {
			temp = 0
		}
		export.PlanetInfo = append(export.PlanetInfo, InfoExport{
			Name:           p.Name,
			Source:         source,
			DiameterKm:     info.DiameterKm(),
			TemperatureC:   temp,
			Atmosphere:     info.Atmosphere(),
			AtmosphereDesc: info.AtmosphereDescription(),
		})
	}

	return export
}

// WriteJSON writes the export as JSON to the given writer.
func (s *SystemExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name      string
	Type      PlanetType
	RadiusE   float64
	DistAU    float64
	Compact   float64
	TempK     float64
	Moons     int
	Rings     bool
	Habitable bool
}

// GenerateSummaryRows creates summary rows from a system.
func GenerateSummaryRows(d *Descriptor) []SummaryRow {
	if d == nil {
		return nil
	}

	hz := d.HabitableZone(true)
	rows := make([]SummaryRow, 0, len(d.Planets))
	for _, p := range d.Planets {
		rows = append(rows, SummaryRow{
			Name:      p.Name,
			Type:      p.Type,
			RadiusE:   p.RadiusEarth,
			DistAU:    p.DistanceAU,
			Compact:   p.OrderedDistance,
			TempK:     p.TemperatureK,
			Moons:     len(p.Moons),
			Rings:     p.HasRings(),
			Habitable: hz.Contains(p.ActualDistance),
		})
	}
	return rows
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryHZStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// WriteSummaryTable writes a text table to the given writer. Styling is
// applied by lipgloss and degrades to plain text when w is not a terminal.
func WriteSummaryTable(w io.Writer, d *Descriptor) {
	rows := GenerateSummaryRows(d)
	if d == nil {
		fmt.Fprintln(w, "No system")
		return
	}

	fmt.Fprintln(w, summaryTitleStyle.Render(fmt.Sprintf("%s  (%s-type star, %.0f K)", d.Name, d.Star.Spectral, d.Star.TemperatureK)))
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No planets")
		return
	}

	fmt.Fprintf(w, "%-20s %-11s %7s %9s %8s %7s %5s %-5s %-3s\n",
		"Planet", "Type", "R(E)", "a(AU)", "Compact", "T(K)", "Moons", "Rings", "HZ")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	for _, r := range rows {
		hz := ""
		if r.Habitable {
			hz = summaryHZStyle.Render("yes")
		}
		rings := ""
		if r.Rings {
			rings = "yes"
		}
		fmt.Fprintf(w, "%-20s %-11s %7.2f %9.3f %8.2f %7.0f %5d %-5s %-3s\n",
			truncateStr(r.Name, 20),
			r.Type,
			r.RadiusE,
			r.DistAU,
			r.Compact,
			r.TempK,
			r.Moons,
			rings,
			hz,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d planets, %d moons\n", len(rows), d.MoonCount())
}

func truncateStr(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
