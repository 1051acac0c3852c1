package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, fakeEnv(map[string]string{
		"LINTSPEC_INHERITDOC":               "false",
		"LINTSPEC_EXCLUDE":                  " lib , ,test ",
		"LINTSPEC_JOBS":                     "3",
		"LINTSPEC_OUTPUT":                   "sarif",
		"LINTSPEC_FUNCTIONS_EXTERNAL_PARAM": "ignore",
		"LINTSPEC_LIBRARIES_AUTHOR":         "forbidden",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.Inheritdoc)
	assert.Equal(t, []string{"lib", "test"}, cfg.Exclude)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, config.FormatSARIF, cfg.Output)
	assert.Equal(t, config.Ignored, cfg.Functions.External.Param)
	assert.Equal(t, config.Forbidden, cfg.Libraries.Author)
}

func TestLoadFromEnv_JSONSwitch(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, fakeEnv(map[string]string{"LINTSPEC_JSON": "true"})))
	assert.Equal(t, config.FormatJSON, cfg.Output)

	require.NoError(t, loadFromEnv(cfg, fakeEnv(map[string]string{"LINTSPEC_JSON": "0"})))
	assert.Equal(t, config.FormatText, cfg.Output)

	// OUTPUT sorts after JSON and wins.
	require.NoError(t, loadFromEnv(cfg, fakeEnv(map[string]string{
		"LINTSPEC_JSON":   "true",
		"LINTSPEC_OUTPUT": "github",
	})))
	assert.Equal(t, config.FormatGitHub, cfg.Output)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"LINTSPEC_SORT":            "maybe",
		"LINTSPEC_JOBS":            "many",
		"LINTSPEC_EVENTS_NOTICE":   "sometimes",
		"LINTSPEC_STRUCTS_PARAM":   "nope",
		"LINTSPEC_COMPACT":         "yes please",
		"LINTSPEC_CONTRACTS_TITLE": "x",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			err := loadFromEnv(config.NewConfig(), fakeEnv(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadFromEnv_TitleOnlyOnTypes(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, fakeEnv(map[string]string{
		"LINTSPEC_EVENTS_TITLE": "required",
	})))
	assert.Equal(t, config.Ignored, cfg.Events.Title)
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LINTSPEC_BACKEND", GetEnvVarName("backend"))
	assert.Equal(t, "LINTSPEC_INHERITDOC_OVERRIDE", GetEnvVarName("inheritdoc_override"))
	assert.Equal(t, "LINTSPEC_FUNCTIONS_PUBLIC_PARAM", GetEnvVarName("functions.public.param"))
	assert.Equal(t, "LINTSPEC_ENUMS_DEV", GetEnvVarName("enums.dev"))
	assert.Empty(t, GetEnvVarName("flavor"))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings)+1)
	assert.Contains(t, vars, "LINTSPEC_SKIP_VERSION_DETECTION")
	assert.Contains(t, vars, "LINTSPEC_<BUCKET>_<TAG>")
}

func TestResolveItemAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bucket string
		ok     bool
	}{
		{"contract", "contracts", true},
		{"Public-Function", "functions.public", true},
		{"internal_variable", "variables.internal", true},
		{"functions.external", "functions.external", true},
		{"library", "libraries", true},
		{"function", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		bucket, ok := ResolveItemAlias(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.bucket, bucket, tt.name)
	}

	cfg := config.NewConfig()
	for _, alias := range ItemAliases() {
		bucket, ok := ResolveItemAlias(alias)
		require.True(t, ok, alias)
		_, exists := cfg.Bucket(bucket)
		assert.True(t, exists, "alias %s maps to missing bucket %s", alias, bucket)
	}
}

func TestOverridesApply(t *testing.T) {
	t.Parallel()

	yes := true
	out := "report.json"
	format := "json"
	overrides := &Overrides{
		Paths:              []string{"contracts"},
		Exclude:            []string{"mocks"},
		InheritdocOverride: &yes,
		Out:                &out,
		Output:             &format,
		Tags: []TagOverride{
			{Tag: config.TagNotice, Req: config.Forbidden, Items: []string{"struct"}},
			{Tag: config.TagNotice, Req: config.Required, Items: []string{"struct", "enum"}},
			{Tag: config.TagParam, Req: config.Ignored, Items: []string{"public-function"}},
			{Tag: config.TagAuthor, Req: config.Required, Items: []string{"interface", "library"}},
		},
	}

	cfg := config.NewConfig()
	cfg.Exclude = []string{"lib"}
	require.NoError(t, overrides.Apply(cfg))

	assert.Equal(t, []string{"contracts"}, cfg.Paths)
	assert.Equal(t, []string{"lib", "mocks"}, cfg.Exclude)
	assert.True(t, cfg.InheritdocOverride)
	assert.Equal(t, "report.json", cfg.Out)
	assert.Equal(t, config.FormatJSON, cfg.Output)

	// forbidden outranks required regardless of flag order
	assert.Equal(t, config.Forbidden, cfg.Structs.Notice)
	assert.Equal(t, config.Required, cfg.Enums.Notice)
	assert.Equal(t, config.Ignored, cfg.Functions.Public.Param)
	assert.Equal(t, config.Required, cfg.Interfaces.Author)
	assert.Equal(t, config.Required, cfg.Libraries.Author)
	assert.Equal(t, config.Ignored, cfg.Contracts.Author)
}

func TestOverridesApply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		override TagOverride
		want     string
	}{
		{
			name:     "unknown item",
			override: TagOverride{Tag: config.TagDev, Req: config.Required, Items: []string{"function"}},
			want:     "unknown item type",
		},
		{
			name:     "title on function",
			override: TagOverride{Tag: config.TagTitle, Req: config.Required, Items: []string{"public-function"}},
			want:     "does not apply",
		},
		{
			name:     "unknown tag",
			override: TagOverride{Tag: "custom", Req: config.Required, Items: []string{"contract"}},
			want:     "unknown tag",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := (&Overrides{Tags: []TagOverride{tt.override}}).Apply(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	var nilOverrides *Overrides
	assert.NoError(t, nilOverrides.Apply(config.NewConfig()))
}
