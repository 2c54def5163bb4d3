// Package markup implements the three inline annotation dialects embedded in
// annotated policy documents:
//
//	{{FollowUp (comment)}}span{{/FollowUp}}
//	{{SurveyLink (explanation|section)}}span{{/SurveyLink}}
//	{{DocLink (filename|explanation)}}span{{/DocLink}}
//
// Documents are parsed into a flat node tree (dialects do not nest) which two
// renderers consume: an interactive form carrying the arguments as HTML span
// attributes, and a plain form that strips all markup for PDF export.
package markup

import "strings"

// Node is one piece of a parsed document.
type Node interface {
	node()
}

// TextNode is a run of text containing no well-formed dialect tags.
type TextNode struct {
	Text string
}

// FollowUpNode wraps a span a human reviewer should customize.
type FollowUpNode struct {
	Comment string
	Body    string
}

// SurveyLinkNode wraps a span causally tied to one survey answer. Section is
// used for display lookup only and is not validated against real sections.
type SurveyLinkNode struct {
	Explanation string
	Section     string
	Body        string
}

// DocLinkNode wraps a span that echoes an uploaded document. Filename is
// matched to uploads at display time only.
type DocLinkNode struct {
	Filename    string
	Explanation string
	Body        string
}

func (TextNode) node()       {}
func (FollowUpNode) node()   {}
func (SurveyLinkNode) node() {}
func (DocLinkNode) node()    {}

var dialects = []string{"FollowUp", "SurveyLink", "DocLink"}

// Parse splits a document into text and dialect nodes. Tag arguments are
// captured up to the first ')', bodies up to the first close tag of the same
// dialect. Anything malformed or unterminated passes through as literal text:
// a document that survived a model round-trip can contain stray braces, and
// that must not make it unrenderable.
func Parse(doc string) []Node {
	var nodes []Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, TextNode{Text: text.String()})
			text.Reset()
		}
	}

	for len(doc) > 0 {
		open := strings.Index(doc, "{{")
		if open < 0 {
			text.WriteString(doc)
			break
		}
		text.WriteString(doc[:open])
		node, consumed := parseTag(doc[open:])
		if node == nil {
			// Not a well-formed tag; emit the braces literally and move on.
			text.WriteString("{{")
			doc = doc[open+2:]
			continue
		}
		flush()
		nodes = append(nodes, node)
		doc = doc[open+consumed:]
	}
	flush()
	return nodes
}

// parseTag attempts to read one complete tagged span from the start of s,
// which begins with "{{". It returns the node and the number of bytes
// consumed, or nil when s does not start a well-formed, terminated tag.
func parseTag(s string) (Node, int) {
	rest := s[2:]
	var name string
	for _, d := range dialects {
		if strings.HasPrefix(rest, d) {
			name = d
			break
		}
	}
	if name == "" {
		return nil, 0
	}
	rest = rest[len(name):]

	trimmed := strings.TrimLeft(rest, " ")
	if !strings.HasPrefix(trimmed, "(") {
		return nil, 0
	}
	argEnd := strings.Index(trimmed, ")")
	if argEnd < 0 {
		return nil, 0
	}
	args := trimmed[1:argEnd]
	after := trimmed[argEnd+1:]
	if !strings.HasPrefix(after, "}}") {
		return nil, 0
	}
	after = after[2:]

	closeTag := "{{/" + name + "}}"
	bodyEnd := strings.Index(after, closeTag)
	if bodyEnd < 0 {
		return nil, 0
	}
	body := after[:bodyEnd]
	consumed := len(s) - len(after) + bodyEnd + len(closeTag)

	switch name {
	case "FollowUp":
		return FollowUpNode{Comment: args, Body: body}, consumed
	case "SurveyLink":
		first, second := splitArgs(args)
		return SurveyLinkNode{Explanation: first, Section: second, Body: body}, consumed
	default:
		first, second := splitArgs(args)
		return DocLinkNode{Filename: first, Explanation: second, Body: body}, consumed
	}
}

// splitArgs splits a pipe-delimited argument pair; a missing delimiter leaves
// the second argument empty.
func splitArgs(args string) (string, string) {
	first, second, _ := strings.Cut(args, "|")
	return first, second
}

// trimEllipsis removes the leading/trailing "..." a model emits to represent
// elided context around a FollowUp span.
func trimEllipsis(s string) string {
	s = strings.TrimPrefix(s, "...")
	s = strings.TrimSuffix(s, "...")
	return s
}
