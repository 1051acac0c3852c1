package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/parser"
)

const undocumentedEvent = `contract C {
    event Moved(address to);
}
`

func newPipeline(t *testing.T) *lint.Pipeline {
	t.Helper()
	return lint.NewPipeline(newEngine(t, parser.KindDescent))
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "C.sol")
	require.NoError(t, os.WriteFile(path, []byte(undocumentedEvent), 0o600))

	result, err := newPipeline(t).ProcessFile(context.Background(), path, config.NewConfig(), lint.PipelineOptions{})
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.False(t, result.Fatal())
	assert.Nil(t, result.Source)
	assert.Equal(t, []string{"@param to is missing"}, messages(findItem(result, "C.Moved")))
}

func TestProcessFileKeepSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "C.sol")
	require.NoError(t, os.WriteFile(path, []byte(undocumentedEvent), 0o600))

	result, err := newPipeline(t).ProcessFile(context.Background(), path, config.NewConfig(),
		lint.PipelineOptions{KeepSource: true})
	require.NoError(t, err)
	assert.Equal(t, undocumentedEvent, string(result.Source))
}

func TestProcessFileNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.sol")
	result, err := newPipeline(t).ProcessFile(context.Background(), path, config.NewConfig(), lint.PipelineOptions{})
	require.NoError(t, err, "read failures are reported, not returned")

	require.True(t, result.Fatal())
	assert.ErrorIs(t, result.Err, lint.ErrFileNotFound)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.True(t, item.File)
	assert.Equal(t, "missing.sol", item.Name)
	require.Len(t, item.Diags, 1)
	assert.Equal(t, lint.KindIOError, item.Diags[0].Kind)
	assert.Equal(t, lint.IOErrorID, item.Diags[0].RuleID)
	assert.Zero(t, item.Diags[0].Span)
}

func TestProcessFileDirectory(t *testing.T) {
	t.Parallel()

	result, err := newPipeline(t).ProcessFile(context.Background(), t.TempDir(), config.NewConfig(), lint.PipelineOptions{})
	require.NoError(t, err)
	require.True(t, result.Fatal())
	assert.Equal(t, lint.KindIOError, result.Items[0].Diags[0].Kind)
}

func TestProcessContentParseError(t *testing.T) {
	t.Parallel()

	result, err := newPipeline(t).ProcessContent(context.Background(), "bad.sol",
		[]byte("contract {"), config.NewConfig(), lint.PipelineOptions{KeepSource: true})
	require.NoError(t, err)

	require.True(t, result.Fatal())
	assert.ErrorIs(t, result.Err, lint.ErrParseFailure)
	require.Len(t, result.Items, 1)

	diag := result.Items[0].Diags[0]
	assert.Equal(t, lint.KindParsingError, diag.Kind)
	assert.Equal(t, lint.ParsingErrorName, diag.RuleName)
	assert.Equal(t, 0, diag.Range.Start.Line)
	assert.Equal(t, "contract {", string(result.Source))
	assert.Equal(t, 1, result.IssueCount())
}

func TestProcessContentUnsupportedVersion(t *testing.T) {
	t.Parallel()

	backend, err := parser.New(parser.KindScan)
	require.NoError(t, err)
	registry := lint.NewRegistry()
	pipeline := lint.NewPipeline(lint.NewEngine(parser.NewParser(backend, parser.Options{}), registry))

	result, err := pipeline.ProcessContent(context.Background(), "old.sol",
		[]byte("pragma solidity ^0.4.24;\ncontract C {}\n"), config.NewConfig(), lint.PipelineOptions{})
	require.NoError(t, err)
	require.True(t, result.Fatal())
	assert.ErrorIs(t, result.Err, parser.ErrUnsupportedVersion)
}

func TestProcessFileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(t).ProcessFile(ctx, "C.sol", config.NewConfig(), lint.PipelineOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
