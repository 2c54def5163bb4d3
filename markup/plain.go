package markup

import (
	"regexp"
	"strings"
)

var (
	inlineHTMLRe   = regexp.MustCompile(`(?i)</?(?:em|i|strong|b|code|p)>|<br\s*/?>`)
	starMarkerRe   = regexp.MustCompile(`(?m)^(\s*)\* `)
	trailingWSRe   = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRunRe     = regexp.MustCompile(`\n{3,}`)
	headingLineRe  = regexp.MustCompile(`(?m)^#{1,6} `)
	entityReplacer = strings.NewReplacer(
		"&quot;", `"`,
		"&lt;", "<",
		"&gt;", ">",
		"&apos;", "'",
		"&nbsp;", " ",
		"&amp;", "&",
	)
)

// listPlaceholder temporarily stands in for a leading list marker so the
// italics pass cannot eat it.
const listPlaceholder = "\x00list\x00"

// ToPlain strips all dialect tags (keeping inner content), removes leaked
// inline HTML and markdown emphasis, and normalizes whitespace. Headings,
// bullets, and numbered lists survive as plain structural markers for the
// PDF exporter. Applying it twice yields the same output as once, with one
// caveat: a literal "**" in the source text is indistinguishable from an
// emphasis marker and is removed like one.
func ToPlain(doc string) string {
	var sb strings.Builder
	for _, n := range Parse(doc) {
		switch node := n.(type) {
		case TextNode:
			sb.WriteString(node.Text)
		case FollowUpNode:
			sb.WriteString(trimEllipsis(node.Body))
		case SurveyLinkNode:
			sb.WriteString(node.Body)
		case DocLinkNode:
			sb.WriteString(node.Body)
		}
	}
	return cleanup(sb.String())
}

func cleanup(s string) string {
	s = inlineHTMLRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)

	// A leading "* " is a list marker, not emphasis; swap it for a
	// placeholder before stripping emphasis characters, then put it back.
	// "-" and "+" markers are never stripped, so they need no shielding.
	s = starMarkerRe.ReplaceAllString(s, "${1}"+listPlaceholder+" ")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, listPlaceholder, "*")

	s = trailingWSRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = blankLineBeforeHeadings(s)
	return s
}

// blankLineBeforeHeadings guarantees every heading line is preceded by
// exactly one blank line (except at the start of the document).
func blankLineBeforeHeadings(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if headingLineRe.MatchString(line) && len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
