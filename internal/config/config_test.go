package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "server_addr",
			envKey: "LSORRERY_SERVER_ADDR",
			envVal: ":9000",
			field:  func(c Config) any { return c.Server.Addr },
			want:   ":9000",
		},
		{
			name:   "catalog_source",
			envKey: "LSORRERY_CATALOG_SOURCE",
			envVal: "/tmp/planets.csv",
			field:  func(c Config) any { return c.Catalog.Source },
			want:   "/tmp/planets.csv",
		},
		{
			name:   "catalog_timeout",
			envKey: "LSORRERY_CATALOG_TIMEOUT",
			envVal: "5s",
			field:  func(c Config) any { return c.Catalog.Timeout },
			want:   5 * time.Second,
		},
		{
			name:   "sim_speed",
			envKey: "LSORRERY_SIM_SPEED",
			envVal: "2.5",
			field:  func(c Config) any { return c.Sim.Speed },
			want:   2.5,
		},
		{
			name:   "favorites_backend",
			envKey: "LSORRERY_FAVORITES_BACKEND",
			envVal: "sqlite",
			field:  func(c Config) any { return c.Favorites.Backend },
			want:   "sqlite",
		},
		{
			name:   "real_distances",
			envKey: "LSORRERY_SIM_REAL_DISTANCES",
			envVal: "true",
			field:  func(c Config) any { return c.Sim.RealDistances },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			v := viper.New()
			Setup(v, filepath.Join(t.TempDir(), "missing.toml"))

			cfg, err := Load(v)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	v := viper.New()
	v.Set("favorites.backend", "redis")

	if _, err := Load(v); err == nil {
		t.Error("expected error for unknown favorites backend")
	}
}

func TestLoad_InvalidSimSpeed(t *testing.T) {
	for _, speed := range []float64{math.NaN(), math.Inf(1), 0, -1} {
		v := viper.New()
		v.Set("sim.speed", speed)

		if _, err := Load(v); err == nil || !strings.Contains(err.Error(), "invalid sim speed") {
			t.Errorf("speed %v: err = %v, want invalid sim speed", speed, err)
		}
	}
}

func TestReadFile_Missing(t *testing.T) {
	v := viper.New()
	Setup(v, filepath.Join(t.TempDir(), "nope.toml"))
	if err := ReadFile(v); err != nil {
		t.Errorf("missing config file should be ignored, got %v", err)
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ".ls-orrery.toml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, section := range []string{"[catalog]", "[favorites]", "[server]", "[sim]"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("written config missing %s", section)
		}
	}

	if err := WriteDefault(path, false); err == nil {
		t.Error("expected error when file exists without force")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("force overwrite: %v", err)
	}

	v := viper.New()
	Setup(v, path)
	if err := ReadFile(v); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
