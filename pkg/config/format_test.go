package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintspec/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "NS005", "param", "param"},
		{"id format", config.RuleFormatID, "NS005", "param", "NS005"},
		{"combined format", config.RuleFormatCombined, "NS005", "param", "NS005/param"},
		{"name format empty name", config.RuleFormatName, "NS005", "", "NS005"},
		{"id format empty id", config.RuleFormatID, "", "io-error", "io-error"},
		{"default to name", config.RuleFormat(""), "NS005", "param", "param"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}
