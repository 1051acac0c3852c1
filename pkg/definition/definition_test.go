package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		assert.NotContains(t, kind.String(), "Kind(", "kind %d has no name", kind)
	}
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestKindIsType(t *testing.T) {
	t.Parallel()

	var types []Kind
	for _, kind := range Kinds() {
		if kind.IsType() {
			types = append(types, kind)
		}
	}
	assert.Equal(t, []Kind{KindContract, KindInterface, KindLibrary}, types)
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	for _, vis := range []Visibility{VisibilityPrivate, VisibilityInternal, VisibilityPublic, VisibilityExternal} {
		got, ok := ParseVisibility(vis.String())
		assert.True(t, ok)
		assert.Equal(t, vis, got)
	}

	_, ok := ParseVisibility("view")
	assert.False(t, ok)
	assert.Empty(t, VisibilityNone.String())
}

func TestDefinitionLookups(t *testing.T) {
	t.Parallel()

	def := Definition{
		Kind: KindFunction,
		Name: "swap",
		Params: []Identifier{
			{Name: "amount", Span: textindex.Span{Start: 10, End: 16}},
			{Span: textindex.Span{Start: 18, End: 25}},
		},
		Returns:       []Identifier{{Name: "out"}, {}},
		Parent:        &Parent{Kind: KindContract, Name: "Pool"},
		AncestorNames: []string{"IPool"},
	}

	param, ok := def.Param("amount")
	assert.True(t, ok)
	assert.Equal(t, 10, param.Span.Start)
	_, ok = def.Param("")
	assert.False(t, ok, "unnamed parameters are not found by name")

	assert.True(t, def.ReturnNamed("out"))
	assert.False(t, def.ReturnNamed("amount"))
	assert.True(t, def.HasAncestor("IPool"))
	assert.False(t, def.HasAncestor("Pool"))
	assert.Equal(t, "Pool.swap", def.QualifiedName())

	def.Parent = nil
	assert.Equal(t, "swap", def.QualifiedName())
}
