package natspec

import "strings"

// Format renders c as "///" lines, one tag after another. Parsing the
// result yields the same tags apart from spans, and text before the first
// tag is written as an explicit @notice.
func Format(c Comment) string {
	var b strings.Builder
	for i, tag := range c.Tags {
		if i > 0 {
			b.WriteByte('\n')
		}

		head := "@" + tag.Keyword
		if tag.Keyword == "" {
			head = "@" + tag.Kind.String()
		}
		if tag.Kind == KindParam || tag.Kind == KindInheritdoc {
			head += " " + tag.Name
		}

		lines := strings.Split(tag.Text, "\n")
		b.WriteString("/// " + head)
		if lines[0] != "" {
			b.WriteString(" " + lines[0])
		}
		for _, ln := range lines[1:] {
			b.WriteString("\n///")
			if ln != "" {
				b.WriteString(" " + ln)
			}
		}
	}
	return b.String()
}
