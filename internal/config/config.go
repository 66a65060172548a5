// Package config loads and validates the run manifest.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/glancebench/internal/params"
)

// DefaultSeed keeps default runs reproducible across machines.
const DefaultSeed = 20260220

type Config struct {
	TaskSuite  string   `yaml:"task_suite"`
	Conditions []string `yaml:"conditions"`
	Models     []string `yaml:"models"`
	Tiers      []string `yaml:"tiers"`
	RepoTypes  []string `yaml:"repo_types"`
	Repeats    int      `yaml:"repeats"`
	Seed       int64    `yaml:"seed"`
	MaxTasks   int      `yaml:"max_tasks"`
	Pricing    string   `yaml:"pricing"`
	Results    Results  `yaml:"results"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Load reads the manifest, fills defaults, and validates every selection
// against the registry allow-lists.
func Load(path string, reg *params.Registry) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(reg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TaskSuite == "" {
		c.TaskSuite = "tasks/task_suite_v1.json"
	}
	if len(c.Conditions) == 0 {
		c.Conditions = append([]string(nil), params.ConditionOrder...)
	}
	if len(c.Models) == 0 {
		c.Models = append([]string(nil), params.ModelOrder...)
	}
	if len(c.Tiers) == 0 {
		c.Tiers = append([]string(nil), params.TierOrder...)
	}
	if len(c.RepoTypes) == 0 {
		c.RepoTypes = append([]string(nil), params.RepoTypeOrder...)
	}
	if c.Repeats == 0 {
		c.Repeats = 5
	}
	// Seed zero is treated as unset so default runs stay reproducible.
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Results.Dir == "" {
		c.Results.Dir = "data"
	}
}

// Validate checks all selections against the registry allow-lists. It is
// called again after CLI flag overrides.
func (c *Config) Validate(reg *params.Registry) error {
	if err := checkSelection(c.Conditions, params.ConditionOrder, "conditions"); err != nil {
		return err
	}
	if err := checkSelection(c.Models, modelAllowList(reg), "models"); err != nil {
		return err
	}
	if err := checkSelection(c.Tiers, params.TierOrder, "tiers"); err != nil {
		return err
	}
	if err := checkSelection(c.RepoTypes, params.RepoTypeOrder, "repo_types"); err != nil {
		return err
	}
	if c.Repeats < 1 {
		return fmt.Errorf("repeats must be >= 1, got %d", c.Repeats)
	}
	if c.MaxTasks < 0 {
		return fmt.Errorf("max_tasks must be >= 0, got %d", c.MaxTasks)
	}
	return nil
}

func modelAllowList(reg *params.Registry) []string {
	ids := make([]string, 0, len(reg.Models))
	for id := range reg.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func checkSelection(values, allowed []string, field string) error {
	if len(values) == 0 {
		return fmt.Errorf("%s must include at least one value", field)
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}
	var invalid []string
	for _, v := range values {
		if !allowedSet[v] {
			invalid = append(invalid, v)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%s includes unsupported values: %s (allowed: %s)",
			field, strings.Join(invalid, ", "), strings.Join(allowed, ", "))
	}
	return nil
}

// ParseList splits a comma-separated flag value and validates it against the
// allow-list, mirroring the manifest validation messages.
func ParseList(raw string, allowed []string, field string) ([]string, error) {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if err := checkSelection(values, allowed, field); err != nil {
		return nil, err
	}
	return values, nil
}

// ModelAllowList exposes the sorted model identifiers for flag validation.
func ModelAllowList(reg *params.Registry) []string {
	return modelAllowList(reg)
}
