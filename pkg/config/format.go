package config

// RuleFormat controls how check identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "param"
	RuleFormatID       RuleFormat = "id"       // "NS005"
	RuleFormatCombined RuleFormat = "combined" // "NS005/param"
)

// FormatRuleID formats a check identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}
	if ruleID == "" {
		return ruleName
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}
