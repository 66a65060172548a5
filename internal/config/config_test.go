package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/glancebench/internal/config"
	"github.com/signalnine/glancebench/internal/params"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glancebench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMinimalAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "results:\n  dir: out\n")
	cfg, err := config.Load(path, params.Default())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Conditions) != len(params.ConditionOrder) {
		t.Errorf("expected all conditions by default, got %v", cfg.Conditions)
	}
	if len(cfg.Models) != len(params.ModelOrder) {
		t.Errorf("expected all models by default, got %v", cfg.Models)
	}
	if cfg.Repeats != 5 {
		t.Errorf("expected default repeats 5, got %d", cfg.Repeats)
	}
	if cfg.Seed != config.DefaultSeed {
		t.Errorf("expected default seed %d, got %d", config.DefaultSeed, cfg.Seed)
	}
	if cfg.Results.Dir != "out" {
		t.Errorf("expected results dir 'out', got %q", cfg.Results.Dir)
	}
}

func TestLoadUnknownCondition(t *testing.T) {
	path := writeConfig(t, "conditions: [C0, C9]\n")
	_, err := config.Load(path, params.Default())
	if err == nil {
		t.Fatal("expected error for unknown condition")
	}
	if !strings.Contains(err.Error(), "C9") || !strings.Contains(err.Error(), "allowed") {
		t.Errorf("error should name the bad value and the allowed set, got: %v", err)
	}
}

func TestLoadUnknownModel(t *testing.T) {
	path := writeConfig(t, "models: [gpt-2]\n")
	_, err := config.Load(path, params.Default())
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !strings.Contains(err.Error(), "gpt-2") {
		t.Errorf("error should name the bad value, got: %v", err)
	}
}

func TestLoadBadRepeats(t *testing.T) {
	path := writeConfig(t, "repeats: -3\n")
	_, err := config.Load(path, params.Default())
	if err == nil {
		t.Fatal("expected error for negative repeats")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("nonexistent.yaml", params.Default())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "conditions: [unclosed\n")
	_, err := config.Load(path, params.Default())
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"single value", "C0", 1, false},
		{"multiple with spaces", "C0, C2 ,C4", 3, false},
		{"empty", "", 0, true},
		{"only commas", ",,", 0, true},
		{"unknown value", "C0,C9", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseList(tt.raw, params.ConditionOrder, "--conditions")
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseList(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseList(%q): %v", tt.raw, err)
			}
			if len(got) != tt.want {
				t.Errorf("ParseList(%q) returned %d values, want %d", tt.raw, len(got), tt.want)
			}
		})
	}
}
