package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/lint/rules"
	"github.com/yaklabco/lintspec/pkg/parser"
	"github.com/yaklabco/lintspec/pkg/runner"
)

const documented = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract Documented {
    /// @notice Adds two numbers
    /// @param a First
    /// @param b Second
    /// @return Sum
    function add(uint256 a, uint256 b) external pure returns (uint256) {
        return a + b;
    }
}
`

const undocumented = `pragma solidity ^0.8.0;

contract Undocumented {
    function add(uint256 a, uint256 b) external pure returns (uint256) {
        return a + b;
    }

    event Moved(address from, address to);
}
`

const broken = `pragma solidity ^0.8.0;

contract Broken {
    function add(uint256 a external {
}
`

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()

	backend, err := parser.New(parser.KindDescent)
	require.NoError(t, err)
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(parser.NewParser(backend, parser.Options{}), registry)
	return runner.New(lint.NewPipeline(engine))
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(nil)
	assert.Same(t, pipeline, runner.New(pipeline).Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t).Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/Documented.sol":   documented,
		"src/Undocumented.sol": undocumented,
		"src/Broken.sol":       broken,
	})

	for _, jobs := range []int{1, 4} {
		result, err := newRunner(t).Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)

		require.Len(t, result.Files, 3)
		assert.Equal(t, abs(dir, "src/Broken.sol", "src/Documented.sol", "src/Undocumented.sol"),
			[]string{result.Files[0].Path, result.Files[1].Path, result.Files[2].Path})

		stats := result.Stats
		assert.Equal(t, 3, stats.FilesDiscovered)
		assert.Equal(t, 3, stats.FilesProcessed)
		assert.Equal(t, 1, stats.FilesErrored)
		assert.Equal(t, 2, stats.FilesWithIssues)

		// add: two params and one return; Moved: two params; Broken: one parse error.
		assert.Equal(t, 6, stats.DiagnosticsTotal)
		assert.Equal(t, 1, stats.DiagnosticsByKind["parsing-error"])
		assert.True(t, result.HasIssues())
		assert.True(t, result.HasFailures())

		assert.True(t, result.Files[0].Result.Fatal())
		assert.False(t, result.Files[1].Result.HasIssues())
		assert.Len(t, result.FileResults(), 3)
	}
}

func TestRunner_RunKeepSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"A.sol": undocumented})

	result, err := newRunner(t).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		KeepSource: true,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, undocumented, string(result.Files[0].Result.Source))
}

func TestRunner_RunFilesMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "Gone.sol")

	result, err := newRunner(t).RunFiles(context.Background(), []string{missing}, runner.Options{
		Config: config.NewConfig(),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	fr := result.Files[0].Result
	require.NotNil(t, fr)
	require.ErrorIs(t, fr.Err, lint.ErrFileNotFound)
	assert.Equal(t, 1, result.Stats.DiagnosticsByKind["io-error"])
	assert.True(t, result.HasFailures())
}

func TestRunner_RunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"A.sol": documented, "B.sol": documented})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner(t).RunFiles(ctx, files, runner.Options{Config: config.NewConfig()})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Files)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
}

func TestResultNil(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures())
	assert.Nil(t, result.FileResults())
}
