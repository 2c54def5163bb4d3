package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line    string
		kind    lineKind
		marker  string
		content string
	}{
		{"# Policy Title", kindTitle, "", "Policy Title"},
		{"## Introduction", kindSection, "", "Introduction"},
		{"### Details", kindSubsection, "", "Details"},
		{"* bullet one", kindBullet, "•", "bullet one"},
		{"- bullet two", kindBullet, "•", "bullet two"},
		{"3. third item", kindNumbered, "3.", "third item"},
		{"", kindBlank, "", ""},
		{"   ", kindBlank, "", ""},
		{"Plain paragraph text.", kindParagraph, "", "Plain paragraph text."},
		// Double digits are not detected as numbered items.
		{"10. tenth item", kindParagraph, "", "10. tenth item"},
		// A heading needs the trailing space.
		{"#hashtag", kindParagraph, "", "#hashtag"},
	}
	for _, c := range cases {
		kind, marker, content := classify(c.line)
		assert.Equal(t, c.kind, kind, "line %q", c.line)
		assert.Equal(t, c.marker, marker, "line %q", c.line)
		assert.Equal(t, c.content, content, "line %q", c.line)
	}
}

// fixedMeasure approximates a 12pt font: six points per character.
func fixedMeasure(s string) float64 { return float64(len(s)) * 6 }

func TestWrapRespectsWidth(t *testing.T) {
	text := strings.Repeat("word ", 40) // 200 chars, 1200pt unwrapped
	lines := wrap(strings.TrimSpace(text), contentWidth, fixedMeasure)

	require.GreaterOrEqual(t, len(lines), 2, "long paragraph must wrap")
	for _, line := range lines {
		assert.LessOrEqual(t, fixedMeasure(line), contentWidth)
	}
	// No words lost or reordered.
	assert.Equal(t, strings.TrimSpace(text), strings.Join(lines, " "))
}

func TestWrapSingleOverlongWord(t *testing.T) {
	word := strings.Repeat("x", 200)
	lines := wrap(word, contentWidth, fixedMeasure)
	require.Len(t, lines, 1)
	assert.Equal(t, word, lines[0])
}

func TestWrapEmpty(t *testing.T) {
	assert.Nil(t, wrap("   ", contentWidth, fixedMeasure))
}

func TestPDFOutput(t *testing.T) {
	doc := "# Title\n\n## Section\n\n" +
		"Some long paragraph of more than enough words that it must wrap across " +
		"at least two lines given the configured content width at twelve points, " +
		"which this sentence comfortably exceeds by continuing on and on a while longer.\n\n" +
		"* first bullet\n" +
		"- second bullet\n" +
		"1. numbered item\n"

	var buf bytes.Buffer
	require.NoError(t, PDF(doc, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestPDFPaginatesLongDocuments(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# Title\n\n")
	for i := 0; i < 120; i++ {
		sb.WriteString("A paragraph line that occupies vertical space on the page.\n\n")
	}
	var buf bytes.Buffer
	require.NoError(t, PDF(sb.String(), &buf))
	// "/Type /Pages" matches once for the tree root; anything beyond two
	// total matches means more than one page object.
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page")), 2)
}
