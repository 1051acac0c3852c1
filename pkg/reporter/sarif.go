package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const toolInformationURI = "https://github.com/yaklabco/lintspec"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	LogicalLocations []SARIFLogical        `json:"logicalLocations,omitempty"`
}

// SARIFLogical names the declaration a result belongs to.
type SARIFLogical struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Kind               string `json:"kind,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Lines and columns are
// 1-based.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "lintspec",
				Version:        version,
				InformationURI: toolInformationURI,
				Rules:          make([]SARIFRule, 0, len(r.opts.Rules)+2),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	rulesSeen := make(map[string]bool)
	for _, rule := range r.opts.Rules {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
			ID:               rule.ID(),
			Name:             rule.Name(),
			ShortDescription: SARIFMultiformatText{Text: rule.Description()},
			DefaultConfig:    &SARIFRuleConfig{Level: "warning"},
			Properties:       map[string]any{"tags": rule.Tags()},
		})
		rulesSeen[rule.ID()] = true
	}

	for _, view := range collectFiles(result, r.opts) {
		items := view.items()
		for i := range items {
			item := &items[i]
			for j := range item.Diags {
				diag := &item.Diags[j]
				level := sarifLevel(diag.Kind)

				// Parsing and I/O failures have no registered rule.
				if !rulesSeen[diag.RuleID] {
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:               diag.RuleID,
						Name:             diag.RuleName,
						ShortDescription: SARIFMultiformatText{Text: diag.Kind.String()},
						DefaultConfig:    &SARIFRuleConfig{Level: level},
					})
					rulesSeen[diag.RuleID] = true
				}

				location := SARIFLocation{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: view.Path},
						Region: SARIFRegion{
							StartLine:   diag.Range.Start.Line + 1,
							StartColumn: diag.Range.Start.Column + 1,
							EndLine:     diag.Range.End.Line + 1,
							EndColumn:   diag.Range.End.Column + 1,
						},
					},
				}
				if !item.File {
					location.LogicalLocations = []SARIFLogical{{
						FullyQualifiedName: item.QualifiedName(),
						Kind:               sarifLogicalKind(item),
					}}
				}

				run.Results = append(run.Results, SARIFResult{
					RuleID:    diag.RuleID,
					Level:     level,
					Message:   SARIFMessage{Text: diag.Message},
					Locations: []SARIFLocation{location},
				})
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// sarifLevel maps file failures to "error" and documentation findings to
// "warning".
func sarifLevel(kind lint.DiagnosticKind) string {
	if kind.Fatal() {
		return "error"
	}
	return "warning"
}

// sarifLogicalKind picks the closest SARIF logical location kind.
func sarifLogicalKind(item *lint.ItemDiagnostics) string {
	switch item.Kind {
	case definition.KindFunction, definition.KindConstructor, definition.KindModifier:
		return "function"
	case definition.KindContract, definition.KindInterface, definition.KindLibrary,
		definition.KindStruct, definition.KindEnum:
		return "type"
	case definition.KindVariable:
		return "variable"
	default:
		return "member"
	}
}
