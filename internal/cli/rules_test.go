package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdout, _, err := execute(t, "rules", "--config", emptyConfig(t, dir), "--rule-format", "combined")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Checks")
	assert.Contains(t, stdout, "NS005/param")
	assert.Contains(t, stdout, "NS008/malformed-comment")
	assert.Contains(t, stdout, "Requirements")
	assert.Contains(t, stdout, "functions.external")
	assert.Contains(t, stdout, "required")
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lintspec.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("events:\n  notice: forbidden\n"), 0o600))

	stdout, _, err := execute(t, "rules", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Rules []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"rules"`
		Requirements map[string]map[string]string `json:"requirements"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	ids := make([]string, 0, len(doc.Rules))
	for _, rule := range doc.Rules {
		ids = append(ids, rule.ID)
	}
	assert.Contains(t, ids, "NS001")
	assert.Contains(t, ids, "NS006")

	assert.Equal(t, "forbidden", doc.Requirements["events"]["notice"])
	assert.Equal(t, "required", doc.Requirements["functions.public"]["param"])
	assert.NotContains(t, doc.Requirements["events"], "title")
	assert.Contains(t, doc.Requirements["contracts"], "title")
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "rules", "--format", "xml")
	require.Error(t, err)
}

func TestRulesCommand_Filter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdout, _, err := execute(t, "rules", "--config", emptyConfig(t, dir), "--format", "json", "NS005/param", "return")
	require.NoError(t, err)

	var doc struct {
		Rules []struct {
			ID string `json:"id"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Rules, 2)
	assert.Equal(t, "NS005", doc.Rules[0].ID)
	assert.Equal(t, "NS006", doc.Rules[1].ID)

	_, _, err = execute(t, "rules", "--config", emptyConfig(t, dir), "MD009")
	require.Error(t, err)
}
