// Package pricing overrides the built-in model token prices from a yaml
// table, so cost estimates can track current list prices without a rebuild.
package pricing

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/glancebench/internal/params"
)

// ModelPricing holds per-1K-token prices.
type ModelPricing struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}

// Table maps model identifier to prices.
type Table map[string]ModelPricing

func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing file: %w", err)
	}
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing pricing file %s: %w", path, err)
	}
	return table, nil
}

// Apply writes the table's prices onto the registry's model profiles. Every
// model in the table must exist in the registry.
func Apply(table Table, reg *params.Registry) error {
	for model, p := range table {
		profile, ok := reg.Models[model]
		if !ok {
			known := make([]string, 0, len(reg.Models))
			for id := range reg.Models {
				known = append(known, id)
			}
			sort.Strings(known)
			return fmt.Errorf("pricing table references unknown model %q (allowed: %s)",
				model, strings.Join(known, ", "))
		}
		if p.Input < 0 || p.Output < 0 {
			return fmt.Errorf("pricing for model %q must be non-negative", model)
		}
		profile.InputCostPer1K = p.Input
		profile.OutputCostPer1K = p.Output
		reg.Models[model] = profile
	}
	return nil
}
