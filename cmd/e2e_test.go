package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/glancebench/internal/result"
)

const e2eSuite = `{
  "tasks": [
    {
      "task_id": "lib-cli-e2e",
      "title": "Add a --json output flag",
      "tier": "T1",
      "repo_type": "library_cli",
      "repo_slug": "acme/tablefmt",
      "repo_locator": "repos/tablefmt",
      "summary": "Add machine-readable output to the render command.",
      "acceptance_checks": ["--json emits valid JSON", "existing text output unchanged"]
    },
    {
      "task_id": "svc-e2e",
      "title": "Add idempotency keys to the payment endpoint",
      "tier": "T2",
      "repo_type": "service_backend",
      "repo_slug": "acme/payments",
      "repo_locator": "repos/payments",
      "summary": "Reject duplicate POSTs sharing an Idempotency-Key header.",
      "acceptance_checks": ["duplicate request returns the original response"]
    },
    {
      "task_id": "mono-e2e",
      "title": "Unify error envelopes across workspace services",
      "tier": "T3",
      "repo_type": "monorepo",
      "repo_slug": "acme/platform",
      "repo_locator": "repos/platform",
      "summary": "Introduce a shared error envelope package and migrate callers.",
      "acceptance_checks": ["all services return the shared envelope"]
    }
  ]
}`

func writeE2EFixtures(t *testing.T) (cfgPath, resultsDir string) {
	t.Helper()
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "suite.json")
	require.NoError(t, os.WriteFile(suitePath, []byte(e2eSuite), 0o644))

	resultsDir = filepath.Join(dir, "data")
	manifest := fmt.Sprintf("task_suite: %s\nrepeats: 2\nseed: 4242\nresults:\n  dir: %s\n", suitePath, resultsDir)
	cfgPath = filepath.Join(dir, "glancebench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(manifest), 0o644))
	return cfgPath, resultsDir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestRunAnalyzePipeline(t *testing.T) {
	cfgPath, resultsDir := writeE2EFixtures(t)
	runCSV := filepath.Join(resultsDir, "run_e2e.csv")

	require.NoError(t, execute(t, "run", "--config", cfgPath, "--output", runCSV))

	rows, err := result.ReadCSV(runCSV)
	require.NoError(t, err)
	// 3 tasks x 5 conditions x 2 models x 2 repeats.
	assert.Len(t, rows, 60)
	assert.Equal(t, result.SchemaVersion, rows[0].SchemaVersion)
	assert.Equal(t, int64(4242), rows[0].Seed)

	latest, err := result.ReadCSV(filepath.Join(resultsDir, "runs_latest.csv"))
	require.NoError(t, err)
	assert.Len(t, latest, len(rows))

	reportDir := filepath.Join(resultsDir, "report")
	require.NoError(t, execute(t, "analyze", "--config", cfgPath, "--input", runCSV, "--report-dir", reportDir, "--format", "json"))

	for _, name := range []string{"findings.md", "executive_summary.md", "data_card.md"} {
		_, err := os.Stat(filepath.Join(reportDir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(reportDir, "charts", "condition_summary_latest.csv"))
	assert.NoError(t, err)
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	cfgPath, resultsDir := writeE2EFixtures(t)
	first := filepath.Join(resultsDir, "first.csv")
	second := filepath.Join(resultsDir, "second.csv")

	require.NoError(t, execute(t, "run", "--config", cfgPath, "--output", first))
	require.NoError(t, execute(t, "run", "--config", cfgPath, "--output", second))

	a, err := result.ReadCSV(first)
	require.NoError(t, err)
	b, err := result.ReadCSV(second)
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		// Run identity differs per invocation; the simulated outcomes must not.
		assert.Equal(t, a[i].Outcome, b[i].Outcome, "trial %d", a[i].TrialID)
		assert.Equal(t, a[i].TaskID, b[i].TaskID)
		assert.Equal(t, a[i].Condition, b[i].Condition)
	}
}

func TestRunRejectsUnknownConditionFlag(t *testing.T) {
	cfgPath, _ := writeE2EFixtures(t)
	err := execute(t, "run", "--config", cfgPath, "--conditions", "C9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C9")
	assert.Contains(t, err.Error(), "allowed")
}

func TestAnalyzeMissingInput(t *testing.T) {
	cfgPath, resultsDir := writeE2EFixtures(t)
	err := execute(t, "analyze", "--config", cfgPath, "--input", filepath.Join(resultsDir, "nope.csv"))
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	cfgPath, _ := writeE2EFixtures(t)
	require.NoError(t, execute(t, "validate", "--config", cfgPath))
}
