// Package latex splits problem statements into plain text and math
// segments so the math can be styled in the terminal.
package latex

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
)

type Kind int

const (
	Text Kind = iota
	Inline
	Display
)

// Segment is a run of statement text. Math segments hold the trimmed
// expression without delimiters.
type Segment struct {
	Kind    Kind
	Content string
}

var mathRe = regexp.MustCompile(`\$\$([^$]+?)\$\$|\$([^$\n]+?)\$`)

// Split breaks text on $$display$$ and $inline$ math. Unterminated
// delimiters are left as text.
func Split(text string) []Segment {
	var out []Segment
	last := 0
	for _, m := range mathRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			out = append(out, Segment{Kind: Text, Content: text[last:m[0]]})
		}
		if m[2] >= 0 {
			out = append(out, Segment{Kind: Display, Content: strings.TrimSpace(text[m[2]:m[3]])})
		} else {
			out = append(out, Segment{Kind: Inline, Content: strings.TrimSpace(text[m[4]:m[5]])})
		}
		last = m[1]
	}
	if last < len(text) {
		out = append(out, Segment{Kind: Text, Content: text[last:]})
	}
	return out
}

var (
	inlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc"))
	displayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc")).Bold(true).PaddingLeft(2)
)

// Render joins segments back into terminal text with the math styled.
// Display math gets a line of its own.
func Render(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case Inline:
			b.WriteString(inlineStyle.Render(Plain(s.Content)))
		case Display:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
			b.WriteString(displayStyle.Render(Plain(s.Content)))
			b.WriteByte('\n')
		default:
			b.WriteString(s.Content)
		}
	}
	return b.String()
}

// RenderText is Render(Split(text)).
func RenderText(text string) string {
	return Render(Split(text))
}

// Longer commands come first: the replacer tries patterns in order.
var commands = strings.NewReplacer(
	`\left`, "", `\right`, "",
	`\leq`, "≤", `\le`, "≤", `\geq`, "≥", `\ge`, "≥", `\neq`, "≠", `\ne`, "≠",
	`\cdot`, "·", `\times`, "×", `\ldots`, "…", `\dots`, "…",
	`\lfloor`, "⌊", `\rfloor`, "⌋", `\lceil`, "⌈", `\rceil`, "⌉",
	`\oplus`, "⊕", `\to`, "→", `\infty`, "∞", `\sum`, "Σ",
	`\,`, " ", `\{`, "{", `\}`, "}",
)

// Plain replaces common LaTeX commands with their Unicode symbols.
func Plain(expr string) string {
	return commands.Replace(expr)
}
