package markup

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// ToInteractive rewrites every dialect tag as an inline HTML span carrying
// the parsed arguments as data attributes. The output remains markdown and is
// meant for a renderer with raw-HTML passthrough.
func ToInteractive(doc string) string {
	var sb strings.Builder
	for _, n := range Parse(doc) {
		switch node := n.(type) {
		case TextNode:
			sb.WriteString(node.Text)
		case FollowUpNode:
			sb.WriteString(`<span class="follow-up" data-comment="`)
			sb.WriteString(escapeAttr(node.Comment))
			sb.WriteString(`">`)
			sb.WriteString(trimEllipsis(node.Body))
			sb.WriteString(`</span>`)
		case SurveyLinkNode:
			sb.WriteString(`<span class="survey-link" data-explanation="`)
			sb.WriteString(escapeAttr(node.Explanation))
			sb.WriteString(`" data-section="`)
			sb.WriteString(escapeAttr(node.Section))
			sb.WriteString(`">`)
			sb.WriteString(node.Body)
			sb.WriteString(`</span>`)
		case DocLinkNode:
			sb.WriteString(`<span class="doc-link" data-filename="`)
			sb.WriteString(escapeAttr(node.Filename))
			sb.WriteString(`" data-explanation="`)
			sb.WriteString(escapeAttr(node.Explanation))
			sb.WriteString(`">`)
			sb.WriteString(node.Body)
			sb.WriteString(`</span>`)
		}
	}
	return sb.String()
}

// escapeAttr makes an argument safe inside a double-quoted attribute value.
// Only '"' is escaped; other characters pass through unescaped. That matches
// the documented contract and is a known gap, not an oversight to fix here.
func escapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// RenderHTML converts the interactive form of doc to HTML. The spans emitted
// by ToInteractive survive because raw HTML passthrough is enabled.
func RenderHTML(doc string) (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert([]byte(ToInteractive(doc)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
