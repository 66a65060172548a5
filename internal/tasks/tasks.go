// Package tasks loads and validates the task suite consumed by a run.
package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/signalnine/glancebench/internal/params"
)

// Task is one benchmark task. Immutable once loaded.
type Task struct {
	ID               string   `json:"task_id"`
	Title            string   `json:"title"`
	Tier             string   `json:"tier"`
	RepoType         string   `json:"repo_type"`
	RepoSlug         string   `json:"repo_slug"`
	RepoLocator      string   `json:"repo_locator"`
	Summary          string   `json:"summary"`
	AcceptanceChecks []string `json:"acceptance_checks"`
}

type suite struct {
	Tasks []Task `json:"tasks"`
}

// Load reads a task suite JSON document and validates every task against the
// registry enums. Validation fails on the first bad task, citing its ID.
func Load(path string, reg *params.Registry) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task suite %s: %w", path, err)
	}
	var s suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing task suite %s: %w", path, err)
	}
	if len(s.Tasks) == 0 {
		return nil, fmt.Errorf("invalid task suite %s: 'tasks' must be a non-empty list", path)
	}
	for i, t := range s.Tasks {
		if err := validateTask(i, &t, reg); err != nil {
			return nil, fmt.Errorf("invalid task suite %s: %w", path, err)
		}
	}
	return s.Tasks, nil
}

func validateTask(index int, t *Task, reg *params.Registry) error {
	required := []struct {
		field string
		value string
	}{
		{"task_id", t.ID},
		{"title", t.Title},
		{"tier", t.Tier},
		{"repo_type", t.RepoType},
		{"repo_slug", t.RepoSlug},
		{"repo_locator", t.RepoLocator},
		{"summary", t.Summary},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("task %d: %s is required", index+1, r.field)
		}
	}
	if !reg.ValidTier(t.Tier) {
		return fmt.Errorf("task %s: unsupported tier %q (allowed: %s)",
			t.ID, t.Tier, strings.Join(params.TierOrder, ", "))
	}
	if !reg.ValidRepoType(t.RepoType) {
		return fmt.Errorf("task %s: unsupported repo_type %q (allowed: %s)",
			t.ID, t.RepoType, strings.Join(params.RepoTypeOrder, ", "))
	}
	if len(t.AcceptanceChecks) == 0 {
		return fmt.Errorf("task %s: acceptance_checks must be non-empty", t.ID)
	}
	return nil
}

// Filter returns the tasks matching the tier and repo-type selections,
// truncated to maxTasks when positive. Filters are pure predicates; their
// application order does not matter.
func Filter(ts []Task, tiers, repoTypes []string, maxTasks int) []Task {
	tierSet := toSet(tiers)
	repoSet := toSet(repoTypes)
	var filtered []Task
	for _, t := range ts {
		if !tierSet[t.Tier] || !repoSet[t.RepoType] {
			continue
		}
		filtered = append(filtered, t)
	}
	if maxTasks > 0 && len(filtered) > maxTasks {
		return filtered[:maxTasks]
	}
	return filtered
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
