package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/internal/cli"
)

func TestLint_NoIssues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", documentedToken)

	stdout, stderr, err := execute(t, "--config", emptyConfig(t, dir), dir)
	require.NoError(t, err)
	assert.Equal(t, "No issue found\n", stdout)
	assert.Empty(t, stderr)
}

func TestLint_ReportsToStderr(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", undocumentedToken)

	stdout, stderr, err := execute(t, "lint", "--config", emptyConfig(t, dir), "--compact", dir)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Empty(t, stdout)

	assert.Contains(t, stderr, "Token.transfer: @param to is missing (param)")
	assert.Contains(t, stderr, "Token.transfer: @param amount is missing (param)")
	assert.Contains(t, stderr, "Token.transfer: @return missing for unnamed return #1 (return)")
}

func TestLint_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleFormat string
		want       string
	}{
		{"name", "(param)"},
		{"id", "(NS005)"},
		{"combined", "(NS005/param)"},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeSol(t, dir, "Token.sol", undocumentedToken)

			_, stderr, err := execute(t, "--config", emptyConfig(t, dir),
				"--compact", "--rule-format", tt.ruleFormat, dir)
			require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
			assert.Contains(t, stderr, "@param to is missing "+tt.want)
		})
	}
}

func TestLint_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", undocumentedToken)

	_, stderr, err := execute(t, "--config", emptyConfig(t, dir), "--json", dir)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)

	var files []struct {
		Path  string `json:"path"`
		Items []struct {
			Parent   *string `json:"parent"`
			ItemType string  `json:"item_type"`
			Name     string  `json:"name"`
			Diags    []struct {
				Message string `json:"message"`
			} `json:"diags"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &files), stderr)
	require.Len(t, files, 1)
	require.Len(t, files[0].Items, 1)

	item := files[0].Items[0]
	require.NotNil(t, item.Parent)
	assert.Equal(t, "Token", *item.Parent)
	assert.Equal(t, "transfer", item.Name)
	assert.Len(t, item.Diags, 3)
}

func TestLint_JSONClean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", documentedToken)

	stdout, _, err := execute(t, "--config", emptyConfig(t, dir), "--output", "json", "--compact", dir)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestLint_TagFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", documentedToken)
	cfg := emptyConfig(t, dir)

	t.Run("required", func(t *testing.T) {
		t.Parallel()
		_, stderr, err := execute(t, "--config", cfg, "--compact",
			"--dev-required", "external-function", dir)
		require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
		assert.Contains(t, stderr, "Token.transfer: @dev is missing")
	})

	t.Run("forbidden wins over required", func(t *testing.T) {
		t.Parallel()
		_, stderr, err := execute(t, "--config", cfg, "--compact",
			"--notice-required", "external-function",
			"--notice-forbidden", "external-function", dir)
		require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
		assert.Contains(t, stderr, "@notice")
		assert.NotContains(t, stderr, "@notice is missing")
	})

	t.Run("ignored", func(t *testing.T) {
		t.Parallel()
		clean := t.TempDir()
		writeSol(t, clean, "Token.sol", undocumentedToken)
		stdout, _, err := execute(t, "--config", cfg,
			"--param-ignored", "external-function",
			"--return-ignored", "external-function", clean)
		require.NoError(t, err)
		assert.Equal(t, "No issue found\n", stdout)
	})
}

func TestLint_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", undocumentedToken)
	cfgPath := filepath.Join(dir, "lintspec.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`functions:
  external:
    param: ignored
    return: ignored
`), 0o600))

	stdout, _, err := execute(t, "--config", cfgPath, dir)
	require.NoError(t, err)
	assert.Equal(t, "No issue found\n", stdout)
}

func TestLint_Exclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "src/Token.sol", documentedToken)
	writeSol(t, dir, "legacy/Old.sol", undocumentedToken)

	stdout, _, err := execute(t, "--config", emptyConfig(t, dir),
		"--exclude", filepath.Join(dir, "legacy"), dir)
	require.NoError(t, err)
	assert.Equal(t, "No issue found\n", stdout)
}

func TestLint_OutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", undocumentedToken)
	report := filepath.Join(dir, "report.txt")

	stdout, _, err := execute(t, "--config", emptyConfig(t, dir), "--compact", "--out", report, dir)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@param to is missing")
	assert.NotContains(t, string(data), "\x1b[", "report files are never colored")
}

func TestLint_Backends(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"descent", "scan"} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeSol(t, dir, "Token.sol", undocumentedToken)

			_, stderr, err := execute(t, "--config", emptyConfig(t, dir),
				"--backend", backend, "--compact", dir)
			require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
			assert.Contains(t, stderr, "@param amount is missing")
		})
	}
}

func TestLint_Summary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSol(t, dir, "Token.sol", documentedToken)

	stdout, _, err := execute(t, "--config", emptyConfig(t, dir), "--summary", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file")
	assert.NotContains(t, stdout, "No issue found")
}
