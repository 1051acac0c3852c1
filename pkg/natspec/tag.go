// Package natspec parses Solidity documentation comments into tags.
//
// Parsing never fails: malformed delimiters and incomplete tags are returned
// as problems next to whatever tags could be read.
package natspec

import "github.com/yaklabco/lintspec/pkg/textindex"

// Kind is a tag keyword.
type Kind uint8

const (
	KindNotice Kind = iota
	KindDev
	KindTitle
	KindAuthor
	KindParam
	KindReturn
	KindInheritdoc
	KindCustom
)

var kindNames = [...]string{
	KindNotice:     "notice",
	KindDev:        "dev",
	KindTitle:      "title",
	KindAuthor:     "author",
	KindParam:      "param",
	KindReturn:     "return",
	KindInheritdoc: "inheritdoc",
	KindCustom:     "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// kindOf maps a keyword to its kind. Unknown keywords are custom tags.
func kindOf(word string) Kind {
	for kind, name := range kindNames {
		if name == word && Kind(kind) != KindCustom {
			return Kind(kind)
		}
	}
	return KindCustom
}

// Tag is one "@keyword" and the text that follows it, up to the next tag.
type Tag struct {
	Kind Kind

	// Keyword is the identifier after "@", such as "notice" or
	// "custom:security". It is "notice" for text before the first tag.
	Keyword string

	// Name is the parameter name of @param, the contract of @inheritdoc, or
	// the first word of @return, which may or may not name a return value.
	Name     string
	NameSpan textindex.Span

	// Text is the description with lines joined by "\n". For @param and
	// @inheritdoc it excludes Name; for @return it includes it.
	Text string

	// Span runs from "@" to the end of the tag's last text.
	Span textindex.Span
}

// Comment is a parsed doc comment.
type Comment struct {
	Tags []Tag
}

// Has reports whether the comment contains a tag of the given kind.
func (c Comment) Has(kind Kind) bool {
	for i := range c.Tags {
		if c.Tags[i].Kind == kind {
			return true
		}
	}
	return false
}

// Filter returns the tags of the given kind in source order.
func (c Comment) Filter(kind Kind) []Tag {
	var out []Tag
	for i := range c.Tags {
		if c.Tags[i].Kind == kind {
			out = append(out, c.Tags[i])
		}
	}
	return out
}

// Problem is a delimiter-level anomaly or an incomplete tag.
type Problem struct {
	Span    textindex.Span
	Message string
}
