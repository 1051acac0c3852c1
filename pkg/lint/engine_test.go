package lint_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/lint/rules"
	"github.com/yaklabco/lintspec/pkg/parser"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

func newEngine(t *testing.T, kind parser.Kind) *lint.Engine {
	t.Helper()

	backend, err := parser.New(kind)
	require.NoError(t, err)

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return lint.NewEngine(parser.NewParser(backend, parser.Options{}), registry)
}

func lintSource(t *testing.T, src string, cfg *config.Config) *lint.FileResult {
	t.Helper()

	result, err := newEngine(t, parser.KindDescent).LintFile("Test.sol", []byte(src), cfg)
	require.NoError(t, err)
	return result
}

func findItem(result *lint.FileResult, name string) *lint.ItemDiagnostics {
	for i := range result.Items {
		if result.Items[i].QualifiedName() == name {
			return &result.Items[i]
		}
	}
	return nil
}

func messages(item *lint.ItemDiagnostics) []string {
	if item == nil {
		return nil
	}
	out := make([]string, 0, len(item.Diags))
	for _, d := range item.Diags {
		out = append(out, d.Message)
	}
	return out
}

// spanAfter returns the span of needle, searching from the first occurrence
// of anchor.
func spanAfter(t *testing.T, src, anchor, needle string) textindex.Span {
	t.Helper()
	base := strings.Index(src, anchor)
	require.GreaterOrEqual(t, base, 0, "anchor %q", anchor)
	off := strings.Index(src[base:], needle)
	require.GreaterOrEqual(t, off, 0, "needle %q", needle)
	return textindex.Span{Start: base + off, End: base + off + len(needle)}
}

func internalNotice() *config.Config {
	cfg := config.NewConfig()
	cfg.Functions.Internal.Notice = config.Required
	return cfg
}

func TestNoticePresent(t *testing.T) {
	t.Parallel()

	src := `contract C {
    /// @notice Does X
    function f() internal {}
}`
	result := lintSource(t, src, internalNotice())
	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.Definitions)
}

func TestNoticeMissing(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f() internal {}
}`
	result := lintSource(t, src, internalNotice())
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "C.f", item.QualifiedName())
	assert.Equal(t, "internal function", item.ItemType())
	require.Len(t, item.Diags, 1)

	diag := item.Diags[0]
	assert.Equal(t, lint.KindMissingTag, diag.Kind)
	assert.Equal(t, "@notice is missing", diag.Message)
	assert.Equal(t, "NS001", diag.RuleID)
	assert.Equal(t, "notice", diag.RuleName)
	assert.Equal(t, spanAfter(t, src, "function f", "f"), diag.Span)
	assert.Equal(t, 1, diag.Range.Start.Line)
	assert.Equal(t, 13, diag.Range.Start.Column)
}

func TestDuplicateParam(t *testing.T) {
	t.Parallel()

	src := `contract C {
    /// @param a d1
    /// @param a d2
    function f(uint256 a) internal {}
}`
	cfg := config.NewConfig()
	cfg.Functions.Internal.Param = config.Required

	result := lintSource(t, src, cfg)
	require.Len(t, result.Items, 1)
	require.Len(t, result.Items[0].Diags, 1)

	diag := result.Items[0].Diags[0]
	assert.Equal(t, lint.KindDuplicateParam, diag.Kind)
	assert.Equal(t, "@param a is present more than once", diag.Message)
	assert.Equal(t, strings.LastIndex(src, "@param a"), diag.Span.Start)
}

func TestOrphanAndMissingParam(t *testing.T) {
	t.Parallel()

	src := `contract C {
    /// @param b d
    function f(uint256 a) internal {}
}`
	cfg := config.NewConfig()
	cfg.Functions.Internal.Param = config.Required

	result := lintSource(t, src, cfg)
	item := findItem(result, "C.f")
	require.NotNil(t, item)
	require.Len(t, item.Diags, 2)

	assert.Equal(t, lint.KindOrphanParam, item.Diags[0].Kind)
	assert.Equal(t, "extra @param b", item.Diags[0].Message)
	assert.Equal(t, spanAfter(t, src, "@param b", "b"), item.Diags[0].Span)

	assert.Equal(t, lint.KindMissingParam, item.Diags[1].Kind)
	assert.Equal(t, "@param a is missing", item.Diags[1].Message)
	assert.True(t, spanAfter(t, src, "uint256 a)", "uint256 a").Contains(item.Diags[1].Span))
}

const inheritdocSource = `interface IFoo {
    function f(uint256 a) external returns (uint256);
}

contract C is IFoo {
    /// @inheritdoc IFoo
    function f(uint256 a) external returns (uint256) {
        return a;
    }
}
`

func TestInheritdocSubstitutes(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Functions.External.Notice = config.Required
	cfg.Functions.External.Dev = config.Required

	result := lintSource(t, inheritdocSource, cfg)
	assert.Nil(t, findItem(result, "C.f"))

	// The interface declaration has no comment and no ancestors.
	assert.Equal(t, []string{
		"@notice is missing",
		"@dev is missing",
		"@param a is missing",
		"@return missing for unnamed return #1",
	}, messages(findItem(result, "IFoo.f")))
}

func TestInheritdocInvalid(t *testing.T) {
	t.Parallel()

	src := strings.Replace(inheritdocSource, "@inheritdoc IFoo", "@inheritdoc IBar", 1)
	result := lintSource(t, src, config.NewConfig())

	item := findItem(result, "C.f")
	require.NotNil(t, item)
	assert.Equal(t, []string{
		"@inheritdoc IBar is not an ancestor",
		"@param a is missing",
		"@return missing for unnamed return #1",
	}, messages(item))
	assert.Equal(t, lint.KindInvalidInheritdoc, item.Diags[0].Kind)
	assert.Equal(t, strings.Index(src, "@inheritdoc"), item.Diags[0].Span.Start)
}

func TestInheritdocDuplicate(t *testing.T) {
	t.Parallel()

	src := strings.Replace(inheritdocSource, "/// @inheritdoc IFoo",
		"/// @inheritdoc IFoo\n    /// @inheritdoc IFoo", 1)
	result := lintSource(t, src, config.NewConfig())

	item := findItem(result, "C.f")
	require.NotNil(t, item)
	require.Len(t, item.Diags, 1)
	assert.Equal(t, lint.KindDuplicateTag, item.Diags[0].Kind)
	assert.Equal(t, "@inheritdoc is present more than once", item.Diags[0].Message)
	assert.Equal(t, strings.LastIndex(src, "@inheritdoc"), item.Diags[0].Span.Start)
}

func TestInheritdocDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Inheritdoc = false

	result := lintSource(t, inheritdocSource, cfg)
	assert.Equal(t, []string{
		"@param a is missing",
		"@return missing for unnamed return #1",
	}, messages(findItem(result, "C.f")))
}

func TestInheritdocOverride(t *testing.T) {
	t.Parallel()

	src := `contract Base {
    function g() internal virtual {}
}

contract C is Base {
    /// @inheritdoc Base
    function g() internal override {}

    function h() internal override {}
}
`
	cfg := config.NewConfig()
	cfg.Functions.Internal.Notice = config.Required

	result := lintSource(t, src, cfg)
	assert.NotNil(t, findItem(result, "C.g"), "override tag has no effect by default")

	cfg.InheritdocOverride = true
	result = lintSource(t, src, cfg)
	assert.Nil(t, findItem(result, "C.g"))
	assert.Equal(t, []string{"@notice is missing"}, messages(findItem(result, "C.h")))
}

func TestReceiveAndFallbackExempt(t *testing.T) {
	t.Parallel()

	src := `contract C {
    receive() external payable {}
    fallback() external {}
}`
	cfg := config.NewConfig()
	cfg.Functions.External.Notice = config.Required

	result := lintSource(t, src, cfg)
	assert.Empty(t, result.Items)
}

func TestFunctionNamedReceiveNotExempt(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.5.0;
contract C {
    function receive(uint256 a) public {}
    function() external {}
}`
	cfg := config.NewConfig()
	cfg.Functions.Public.Notice = config.Required
	cfg.Functions.External.Notice = config.Required

	for _, kind := range parser.Kinds() {
		result, err := newEngine(t, kind).LintFile("Test.sol", []byte(src), cfg)
		require.NoError(t, err, kind)

		assert.NotNil(t, findItem(result, "C.receive"), "ordinary function named receive: %s", kind)
		assert.Nil(t, findItem(result, "C.fallback"), "unnamed fallback: %s", kind)
	}
}

func TestVacuousParams(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function f() external {}
    event E();
}`
	result := lintSource(t, src, config.NewConfig())
	assert.Empty(t, result.Items)
}

func TestReturns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		comment string
		returns string
		want    []string
	}{
		{
			name:    "mixed named and unnamed",
			comment: "/// @return First output\n    /// @return out Second output",
			returns: "uint256, uint256 out",
		},
		{
			name:    "unnamed missing",
			comment: "/// @return out Second output",
			returns: "uint256, uint256 out",
			want:    []string{"@return missing for unnamed return #1"},
		},
		{
			name:    "named missing",
			comment: "/// @return First output",
			returns: "uint256, uint256 out",
			want:    []string{"@return out is missing"},
		},
		{
			name:    "too many unnamed",
			comment: "/// @return a\n    /// @return b",
			returns: "uint256",
			want:    []string{"too many unnamed returns"},
		},
		{
			name:    "named duplicate",
			comment: "/// @return out x\n    /// @return out y",
			returns: "uint256 out",
			want:    []string{"@return out is present more than once"},
		},
		{
			name:    "second unnamed by position",
			comment: "/// @return the first\n    /// @return the second",
			returns: "uint256, bool",
		},
		{
			name:    "no comment",
			returns: "uint256, bool ok",
			want: []string{
				"@return missing for unnamed return #1",
				"@return ok is missing",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := "contract C {\n    " + tt.comment + "\n    function f() external returns (" +
				tt.returns + ") {}\n}\n"
			result := lintSource(t, src, config.NewConfig())
			assert.Equal(t, tt.want, messages(findItem(result, "C.f")))
		})
	}
}

func TestPublicVariableReturn(t *testing.T) {
	t.Parallel()

	src := `contract C {
    /// @notice Total supply
    uint256 public total;

    /// @notice Total supply
    /// @return The supply
    uint256 public documented;

    uint256 internal hidden;
}`
	result := lintSource(t, src, config.NewConfig())
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "public variable", item.ItemType())
	assert.Equal(t, []string{"@return is missing"}, messages(&item))
	assert.Equal(t, spanAfter(t, src, "public total", "total"), item.Diags[0].Span)
}

func TestNoticeOrDev(t *testing.T) {
	t.Parallel()

	cfg := internalNotice()
	cfg.NoticeOrDev = true

	src := `contract C {
    function f() internal {}

    /// @dev Implementation detail
    function g() internal {}
}`
	result := lintSource(t, src, cfg)
	assert.Equal(t, []string{"@notice or @dev is missing"}, messages(findItem(result, "C.f")))
	assert.Nil(t, findItem(result, "C.g"))
}

func TestForbiddenAndDuplicateTags(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Functions.Internal.Dev = config.Forbidden
	cfg.Functions.Internal.Param = config.Forbidden

	src := `contract C {
    /// @notice First
    /// @notice Second
    /// @dev Not allowed
    /// @param a Not allowed either
    function f(uint256 a) internal {}
}`
	result := lintSource(t, src, cfg)
	item := findItem(result, "C.f")
	require.NotNil(t, item)

	assert.Equal(t, []string{
		"@notice is present more than once",
		"@dev is forbidden",
		"@param is forbidden",
	}, messages(item))
	assert.Equal(t, lint.KindDuplicateTag, item.Diags[0].Kind)
	assert.Equal(t, lint.KindForbiddenTag, item.Diags[1].Kind)
	assert.Equal(t, strings.Index(src, "@dev"), item.Diags[1].Span.Start)
}

func TestTitleOnTypesOnly(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Contracts.Title = config.Required
	cfg.Contracts.Author = config.Forbidden

	src := `/// @author Someone
contract C {
    /// @title Not a type
    /// @title Twice
    function f() internal {}
}`
	result := lintSource(t, src, cfg)
	assert.Nil(t, findItem(result, "C.f"))

	item := findItem(result, "C")
	require.NotNil(t, item)
	assert.Equal(t, []string{"@author is forbidden", "@title is missing"}, messages(item))
}

func TestStructAndEnumMembers(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Structs.Param = config.Required
	cfg.Enums.Param = config.Required

	src := `contract C {
    /// @param a The first
    struct Pair { uint256 a; uint256 b; }

    /// @param Left Go left
    /// @param Right Go right
    enum Side { Left, Right }
}`
	result := lintSource(t, src, cfg)
	require.Len(t, result.Items, 1)
	assert.Equal(t, []string{"@param b is missing"}, messages(findItem(result, "C.Pair")))
}

func TestMalformedComment(t *testing.T) {
	t.Parallel()

	src := `contract C {
    //// @notice Four slashes
    function f() internal {}
}`
	result := lintSource(t, src, config.NewConfig())
	item := findItem(result, "C.f")
	require.NotNil(t, item)
	require.Len(t, item.Diags, 1)
	assert.Equal(t, lint.KindMalformedComment, item.Diags[0].Kind)
	assert.Equal(t, "NS008", item.Diags[0].RuleID)
	assert.Contains(t, item.Diags[0].Message, `"////"`)
}

func TestItemsInSourceOrder(t *testing.T) {
	t.Parallel()

	src := `contract C {
    function a() internal {}
    function b() internal {}
}

contract D {
    function c() internal {}
}`
	result := lintSource(t, src, internalNotice())
	names := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		names = append(names, item.QualifiedName())
	}
	assert.Equal(t, []string{"C.a", "C.b", "D.c"}, names)
	assert.Equal(t, 3, result.IssueCount())
	assert.Equal(t, 2, result.Items[1].Range.Start.Line)
}

func TestLintDefinitionDeterministic(t *testing.T) {
	t.Parallel()

	src := []byte(`contract C is B {
    /// @param x X
    /// @param x X again
    /// @inheritdoc Z
    function f(uint256 a) public returns (uint256, bool b) {}
}`)
	engine := newEngine(t, parser.KindDescent)
	defs, err := engine.Parser.Parse(src)
	require.NoError(t, err)

	cfg := config.NewConfig()
	for i := range defs {
		first := engine.LintDefinition(&defs[i], cfg)
		second := engine.LintDefinition(&defs[i], cfg)
		assert.Empty(t, cmp.Diff(first, second))
	}
}

func TestEngineBackendsAgree(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Functions.Internal.Notice = config.Required
	cfg.Contracts.Title = config.Required

	for _, src := range []string{inheritdocSource, "pragma solidity ^0.8.0;\n" + `
/// @title Token
contract Token {
    /// @param b wrong
    function move(uint256 a) internal returns (bool) {}

    uint256 public total;
}`} {
		descent, err := newEngine(t, parser.KindDescent).LintFile("x.sol", []byte(src), cfg)
		require.NoError(t, err)
		scan, err := newEngine(t, parser.KindScan).LintFile("x.sol", []byte(src), cfg)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(descent, scan))
	}
}

func TestLintFileParseError(t *testing.T) {
	t.Parallel()

	_, err := newEngine(t, parser.KindDescent).LintFile("x.sol", []byte("contract {"), config.NewConfig())
	require.Error(t, err)
}

func TestItemDiagnosticsNames(t *testing.T) {
	t.Parallel()

	item := lint.ItemDiagnostics{File: true, Name: "x.sol"}
	assert.Equal(t, "file", item.ItemType())
	assert.Equal(t, "x.sol", item.QualifiedName())

	assert.Equal(t, "missing-param", lint.KindMissingParam.String())
	assert.Equal(t, "unknown", lint.DiagnosticKind(200).String())
	assert.True(t, lint.KindParsingError.Fatal())
	assert.False(t, lint.KindOrphanParam.Fatal())
}
