package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.True(t, cfg.Inheritdoc)
	assert.False(t, cfg.InheritdocOverride)
	assert.False(t, cfg.NoticeOrDev)
	assert.False(t, cfg.SkipVersionDetection)
	assert.Equal(t, config.BackendDescent, cfg.Backend)

	required := map[string][]string{
		"errors":             {config.TagParam},
		"events":             {config.TagParam},
		"modifiers":          {config.TagParam},
		"functions.public":   {config.TagParam, config.TagReturn},
		"functions.external": {config.TagParam, config.TagReturn},
		"variables.public":   {config.TagReturn},
	}

	for _, bucket := range cfg.Buckets() {
		for _, tag := range config.TagNames() {
			want := config.Ignored
			for _, r := range required[bucket.Name] {
				if r == tag {
					want = config.Required
				}
			}
			assert.Equal(t, want, *bucket.Rules.Field(tag), "%s.%s", bucket.Name, tag)
		}
	}
}

func TestParseReq(t *testing.T) {
	tests := []struct {
		in      string
		want    config.Req
		wantErr bool
	}{
		{in: "required", want: config.Required},
		{in: "require", want: config.Required},
		{in: "Ignore", want: config.Ignored},
		{in: " ignored ", want: config.Ignored},
		{in: "forbidden", want: config.Forbidden},
		{in: "disallow", want: config.Forbidden},
		{in: "maybe", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseReq(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, config.Ignored, config.Req("").Normalize())
	assert.Equal(t, "ignored", config.Req("").String())
}

func TestFromYAML(t *testing.T) {
	t.Run("partial document keeps defaults", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
inheritdoc: false
functions:
  private:
    notice: require
structs:
  param: required
exclude:
  - "test/**"
`))
		require.NoError(t, err)

		assert.False(t, cfg.Inheritdoc)
		assert.Equal(t, config.Required, cfg.Functions.Private.Notice)
		assert.Equal(t, config.Ignored, cfg.Functions.Private.Param)
		assert.Equal(t, config.Required, cfg.Functions.Public.Param, "untouched default")
		assert.Equal(t, config.Required, cfg.Structs.Param)
		assert.Equal(t, []string{"test/**"}, cfg.Exclude)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(config.NewConfig(), cfg))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.FromYAML([]byte("inheritdocs: true\n"))
		require.Error(t, err)
	})

	t.Run("invalid requirement", func(t *testing.T) {
		_, err := config.FromYAML([]byte("events:\n  param: sometimes\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sometimes")
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := config.NewConfig()
	cfg.NoticeOrDev = true
	cfg.Contracts.Title = config.Forbidden
	cfg.Paths = []string{"src"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "notice_or_dev: true")
	assert.Contains(t, string(data), "title: forbidden")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	// CLI-only fields are not serialized.
	parsed.Jobs = cfg.Jobs
	parsed.Color = cfg.Color
	assert.Empty(t, cmp.Diff(cfg, parsed))
}

func TestToYAMLWithHeader(t *testing.T) {
	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.True(t, len(data) > 10)
	assert.Equal(t, "# header\n\n", string(data[:10]))
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Exclude = []string{"lib/**", "test/**"}
		original.Jobs = 4

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Empty(t, cmp.Diff(original, clone))

		clone.Exclude[0] = "changed"
		clone.Functions.Public.Param = config.Forbidden
		assert.Equal(t, "lib/**", original.Exclude[0])
		assert.Equal(t, config.Required, original.Functions.Public.Param)
	})
}

func TestMergeLegacyTOML(t *testing.T) {
	cfg := config.NewConfig()
	unknown, err := cfg.MergeLegacyTOML([]byte(`
[lintspec]
paths = ["src"]
inheritdoc = false

[output]
json = true
sort = true

[constructor]
notice = "require"

[function.internal]
dev = "disallow"

[variable.public]
return = "ignore"

[bogus]
key = 1
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"src"}, cfg.Paths)
	assert.False(t, cfg.Inheritdoc)
	assert.Equal(t, config.FormatJSON, cfg.Output)
	assert.True(t, cfg.Sort)
	assert.Equal(t, config.Required, cfg.Constructors.Notice)
	assert.Equal(t, config.Forbidden, cfg.Functions.Internal.Dev)
	assert.Equal(t, config.Ignored, cfg.Variables.Public.Return)
	assert.Equal(t, config.Required, cfg.Events.Param, "untouched default")
	assert.Contains(t, unknown, "bogus.key")
}

func TestMergeLegacyTOMLInvalid(t *testing.T) {
	_, err := config.NewConfig().MergeLegacyTOML([]byte("[event]\nparam = \"always\"\n"))
	require.Error(t, err)

	_, err = config.NewConfig().MergeLegacyTOML([]byte("not toml ["))
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("full yaml parses to defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(config.NewConfig(), cfg))
		assert.Contains(t, string(data), "functions:\n  private:\n")
		assert.NotContains(t, string(data), "structs:\n  title:")
	})

	t.Run("minimal yaml parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		_, err = config.FromYAML(data)
		require.NoError(t, err)
	})

	t.Run("toml parses to defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
		require.NoError(t, err)

		cfg := config.NewConfig()
		unknown, err := cfg.MergeLegacyTOML(data)
		require.NoError(t, err)
		assert.Empty(t, unknown)
		assert.Empty(t, cmp.Diff(config.NewConfig(), cfg, cmpopts.EquateEmpty()))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := config.NewConfig()
	assert.Empty(t, cfg.Validate())

	cfg.Backend = "treesitter"
	cfg.Functions.Public.Param = config.Req("sometimes")
	cfg.Jobs = -1

	errs := cfg.Validate()
	require.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"functions.public.param", "backend", "jobs"}, fields)

	for _, e := range errs {
		if e.Field == "backend" {
			assert.Equal(t, `invalid value "treesitter"; must be one of: descent, scan`, e.Message)
			assert.Equal(t, `backend: invalid value "treesitter"; must be one of: descent, scan`, e.Error())
		}
	}
}

func TestBucket(t *testing.T) {
	cfg := config.NewConfig()

	rules, ok := cfg.Bucket("variables.public")
	require.True(t, ok)
	rules.Notice = config.Required
	assert.Equal(t, config.Required, cfg.Variables.Public.Notice, "bucket points into config")

	_, ok = cfg.Bucket("functions.protected")
	assert.False(t, ok)

	var r config.Rules
	assert.Nil(t, r.Field("since"))
}
