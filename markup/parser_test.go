package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_policy_builder/markup"
)

func TestParseSurveyLink(t *testing.T) {
	nodes := markup.Parse("before {{SurveyLink (explains X|Intro)}}Hello world{{/SurveyLink}} after")
	require.Len(t, nodes, 3)

	assert.Equal(t, markup.TextNode{Text: "before "}, nodes[0])
	link, ok := nodes[1].(markup.SurveyLinkNode)
	require.True(t, ok)
	assert.Equal(t, "explains X", link.Explanation)
	assert.Equal(t, "Intro", link.Section)
	assert.Equal(t, "Hello world", link.Body)
	assert.Equal(t, markup.TextNode{Text: " after"}, nodes[2])
}

func TestParseFollowUpKeepsPipesInComment(t *testing.T) {
	nodes := markup.Parse("{{FollowUp (adjust this | or that)}}...span...{{/FollowUp}}")
	require.Len(t, nodes, 1)
	fu, ok := nodes[0].(markup.FollowUpNode)
	require.True(t, ok)
	// FollowUp takes a single argument; pipes are part of the comment.
	assert.Equal(t, "adjust this | or that", fu.Comment)
	assert.Equal(t, "...span...", fu.Body)
}

func TestParseDocLink(t *testing.T) {
	nodes := markup.Parse("{{DocLink (handbook.pdf|echoes the device policy)}}No phones in class.{{/DocLink}}")
	require.Len(t, nodes, 1)
	dl, ok := nodes[0].(markup.DocLinkNode)
	require.True(t, ok)
	assert.Equal(t, "handbook.pdf", dl.Filename)
	assert.Equal(t, "echoes the device policy", dl.Explanation)
	assert.Equal(t, "No phones in class.", dl.Body)
}

func TestParseMissingSecondArg(t *testing.T) {
	nodes := markup.Parse("{{SurveyLink (only explanation)}}x{{/SurveyLink}}")
	require.Len(t, nodes, 1)
	link := nodes[0].(markup.SurveyLinkNode)
	assert.Equal(t, "only explanation", link.Explanation)
	assert.Equal(t, "", link.Section)
}

func TestParseAdjacentTags(t *testing.T) {
	doc := "{{FollowUp (a)}}one{{/FollowUp}}{{DocLink (f|b)}}two{{/DocLink}}"
	nodes := markup.Parse(doc)
	require.Len(t, nodes, 2)
	assert.IsType(t, markup.FollowUpNode{}, nodes[0])
	assert.IsType(t, markup.DocLinkNode{}, nodes[1])
}

func TestParseMalformedPassesThroughLiterally(t *testing.T) {
	cases := []string{
		"{{SurveyLink (a|b)}}unterminated",
		"{{FollowUp missing parens}}x{{/FollowUp}}",
		"{{Unknown (a)}}x{{/Unknown}}",
		"stray {{ braces",
		"{{SurveyLink (no close paren}}x{{/SurveyLink}}",
	}
	for _, c := range cases {
		nodes := markup.Parse(c)
		require.Len(t, nodes, 1, "input %q", c)
		text, ok := nodes[0].(markup.TextNode)
		require.True(t, ok, "input %q", c)
		assert.Equal(t, c, text.Text)
	}
}

func TestParseCloseTagMustMatchDialect(t *testing.T) {
	// A FollowUp closed by a SurveyLink close tag is not a tag at all.
	doc := "{{FollowUp (a)}}body{{/SurveyLink}}"
	nodes := markup.Parse(doc)
	require.Len(t, nodes, 1)
	text, ok := nodes[0].(markup.TextNode)
	require.True(t, ok)
	assert.Equal(t, doc, text.Text)
}

func TestParseBodyStopsAtFirstClose(t *testing.T) {
	doc := "{{FollowUp (a)}}first{{/FollowUp}} middle {{/FollowUp}}"
	nodes := markup.Parse(doc)
	require.Len(t, nodes, 2)
	fu := nodes[0].(markup.FollowUpNode)
	assert.Equal(t, "first", fu.Body)
	assert.Equal(t, markup.TextNode{Text: " middle {{/FollowUp}}"}, nodes[1])
}
