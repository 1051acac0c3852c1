package configloader

import (
	"slices"
	"strings"
)

// itemAliases maps the item type names accepted on the command line to
// configuration buckets. Both the hyphenated form ("public-function") and
// the bucket name itself ("functions.public") are accepted.
//
//nolint:gochecknoglobals // Read-only lookup table.
var itemAliases = map[string]string{
	"contract":          "contracts",
	"interface":         "interfaces",
	"library":           "libraries",
	"constructor":       "constructors",
	"enum":              "enums",
	"error":             "errors",
	"event":             "events",
	"modifier":          "modifiers",
	"struct":            "structs",
	"private-function":  "functions.private",
	"internal-function": "functions.internal",
	"public-function":   "functions.public",
	"external-function": "functions.external",
	"private-variable":  "variables.private",
	"internal-variable": "variables.internal",
	"public-variable":   "variables.public",
}

// ResolveItemAlias returns the bucket for an item type name. Matching is
// case-insensitive and accepts underscores for hyphens.
func ResolveItemAlias(name string) (string, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if bucket, ok := itemAliases[key]; ok {
		return bucket, true
	}
	for _, bucket := range itemAliases {
		if bucket == key {
			return bucket, true
		}
	}
	return "", false
}

// ItemAliases returns the accepted item type names, sorted.
func ItemAliases() []string {
	names := make([]string, 0, len(itemAliases))
	for name := range itemAliases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ContractTypeAliases returns the item types title and author apply to.
func ContractTypeAliases() []string {
	return []string{"contract", "interface", "library"}
}
