package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/runner"
)

// writeTree creates files under dir with the given contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Token.sol": "contract Token {}"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{filepath.Join(dir, "Token.sol")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "Token.sol"), files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/Token.sol":          "",
		"src/utils/Math.sol":     "",
		"script/Deploy.s.sol":    "",
		"README.md":              "",
		"src/main.go":            "",
		".github/Workflow.sol":   "",
		"src/.hidden/Secret.sol": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "script/Deploy.s.sol", "src/Token.sol", "src/utils/Math.sol"), files)
}

func TestDiscover_SkipsVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/Token.sol":                        "",
		"lib/forge-std/src/Test.sol":           "",
		"node_modules/@oz/contracts/ERC20.sol": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "src/Token.sol"), files)

	t.Run("include vendored", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IncludeVendored: true})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("explicit vendored directory", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"lib/forge-std"},
		})
		require.NoError(t, err)
		assert.Equal(t, abs(dir, "lib/forge-std/src/Test.sol"), files)
	})
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/Token.sol":       "",
		"src/mocks/Mock.sol":  "",
		"test/Token.t.sol":    "",
		"src/Token.t.sol":     "",
		"src/deep/a/Mock.sol": "",
	})

	tests := []struct {
		name     string
		excludes []string
		want     []string
	}{
		{name: "directory", excludes: []string{"test/**"},
			want: []string{"src/Token.sol", "src/Token.t.sol", "src/deep/a/Mock.sol", "src/mocks/Mock.sol"}},
		{name: "file name pattern", excludes: []string{"*.t.sol"},
			want: []string{"src/Token.sol", "src/deep/a/Mock.sol", "src/mocks/Mock.sol"}},
		{name: "anywhere", excludes: []string{"**/Mock.sol"},
			want: []string{"src/Token.sol", "src/Token.t.sol", "test/Token.t.sol"}},
		{name: "absolute path", excludes: []string{filepath.Join(dir, "src", "mocks")},
			want: []string{"src/Token.sol", "src/Token.t.sol", "src/deep/a/Mock.sol", "test/Token.t.sol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.excludes,
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_IgnoreFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".nsignore":          "# generated code\n\ngenerated/\n/src/Legacy.sol\n",
		"src/Token.sol":      "",
		"src/Legacy.sol":     "",
		"generated/Abi.sol":  "",
		"other/ignore.nsign": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "src/Token.sol"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IgnoreFile: "-"})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestParseIgnorePatterns(t *testing.T) {
	t.Parallel()

	got := runner.ParseIgnorePatterns([]byte("# comment\n\n  build/ \n/out\n*.t.sol\n"))
	assert.Equal(t, []string{"build/**", "out", "*.t.sol"}, got)
}

func TestLoadIgnoreFileMissing(t *testing.T) {
	t.Parallel()

	patterns, err := runner.LoadIgnoreFile(t.TempDir(), ".nsignore")
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestDiscover_ExplicitFileByContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Token.flat":  "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.0;\ncontract T {}\n",
		"notes.flat":  "nothing to see",
		"ignored.sol": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		Paths:        []string{"Token.flat", "notes.flat", "ignored.sol"},
		ExcludeGlobs: []string{"ignored.sol"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "Token.flat"), files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.sol": "", "b.solidity": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".SOLIDITY"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "b.solidity"), files)
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/A.sol": "", "src/B.sol": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"src", "src/A.sol", "."},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "src/A.sol", "src/B.sol"), files)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"A.sol": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, map[string]string{"src/A.sol": ""})
	writeTree(t, target, map[string]string{"B.sol": ""})
	if err := os.Symlink(target, filepath.Join(dir, "src", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "src/A.sol"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, append(abs(dir, "src/A.sol"), filepath.Join(target, "B.sol")), files)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".sol"}, runner.DefaultExtensions())
}
