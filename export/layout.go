package export

import (
	"regexp"
	"strings"
)

// lineKind classifies a plain-text line by its leading token.
type lineKind int

const (
	kindBlank lineKind = iota
	kindTitle
	kindSection
	kindSubsection
	kindBullet
	kindNumbered
	kindParagraph
)

// Single digit only: "10." and beyond render as paragraph text. Documented
// limitation of the line classifier.
var numberedRe = regexp.MustCompile(`^[1-9]\. `)

// classify returns a line's kind, the marker to reproduce (bullets and
// numbered items), and its content with the leading token removed.
func classify(line string) (kind lineKind, marker, content string) {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.TrimSpace(trimmed) == "":
		return kindBlank, "", ""
	case strings.HasPrefix(trimmed, "### "):
		return kindSubsection, "", strings.TrimPrefix(trimmed, "### ")
	case strings.HasPrefix(trimmed, "## "):
		return kindSection, "", strings.TrimPrefix(trimmed, "## ")
	case strings.HasPrefix(trimmed, "# "):
		return kindTitle, "", strings.TrimPrefix(trimmed, "# ")
	case strings.HasPrefix(trimmed, "* "):
		return kindBullet, "•", strings.TrimPrefix(trimmed, "* ")
	case strings.HasPrefix(trimmed, "- "):
		return kindBullet, "•", strings.TrimPrefix(trimmed, "- ")
	case numberedRe.MatchString(trimmed):
		return kindNumbered, trimmed[:2], trimmed[3:]
	default:
		return kindParagraph, "", trimmed
	}
}

// wrap breaks text into lines no wider than width according to measure,
// greedily, word by word. A single word wider than width gets its own line
// rather than being split.
func wrap(text string, width float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 1)
	cur := words[0]
	for _, w := range words[1:] {
		if candidate := cur + " " + w; measure(candidate) <= width {
			cur = candidate
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}
