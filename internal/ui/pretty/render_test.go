package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/langservice"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	src := `<a href="x">`
	out := styles.FormatTokens(src, markup.Tokenize(src))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Regexp(t, `^0:1\s+StartTagOpen\s+"<"$`, lines[0])
	assert.Regexp(t, `^1:2\s+StartTag\s+"a"$`, lines[1])
	assert.Regexp(t, `^2:3\s+Whitespace\s+" "$`, lines[2])
	assert.Regexp(t, `^8:11\s+AttributeValue\s+"\\"x\\""$`, lines[5])
	assert.Regexp(t, `^11:12\s+StartTagClose\s+">"$`, lines[6])
}

func TestHighlightSource_NoColorRoundTrips(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	src := "<div class=a>text<!-- c --></div>\n"
	assert.Equal(t, src, styles.HighlightSource(src, markup.Tokenize(src)))
}

func TestFormatTree(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	doc := markup.Parse(`<div id="a" hidden><p>x</div>`)

	want := "<div> [0,29) end@23 closed hidden id=\"a\"\n" +
		"  <p> [19,23) unclosed\n"
	assert.Equal(t, want, styles.FormatTree(doc))
}

func TestFormatUnclosed(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "All elements closed\n", styles.FormatUnclosed(nil))

	doc := markup.Parse("<div><p>")
	assert.Equal(t, "2 unclosed elements: <div>@0, <p>@5\n", styles.FormatUnclosed(markup.Unclosed(doc)))
}

func TestTableFormatter_FormatList(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTableFormatter(styles, false, 80)

	assert.Equal(t, "No completions\n", table.FormatList(&complete.List{}))

	list := &complete.List{Items: []complete.Item{
		{Label: "div", Kind: complete.KindProperty, Edit: fix.Replace(1, 2, "div"), Format: complete.PlainText},
		{Label: "href", Kind: complete.KindValue, Edit: fix.Replace(3, 3, `href="$1"`), Format: complete.Snippet},
	}}
	out := table.FormatList(list)

	assert.Contains(t, out, "LABEL")
	assert.Regexp(t, `(?m)^\s+0\s+div\s+property\s+1:2\s+"div"`, out)
	assert.Regexp(t, `(?m)^\s+1\s+href\s+value\s+3:3\s+"href=\\"\$1\\""\s+\*$`, out)
	assert.Contains(t, out, "2 items | 1 snippets (*)")
}

func TestTableFormatter_Truncates(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), false, 40)
	long := strings.Repeat("x", 80)
	out := table.FormatList(&complete.List{Items: []complete.Item{
		{Label: "a", Kind: complete.KindUnit, Edit: fix.Insert(0, long)},
	}})
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}

func TestFormatCursor(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	text := "<div>\n  <p\n</div>"
	out := styles.FormatCursor("page.html", text, 10)

	assert.Equal(t, "page.html:2:5\n      <p\n        ^\n", out)
}

func TestFormatHover(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatHover(&langservice.Hover{
		Tag:           "<div>",
		Documentation: "A generic container.",
		Range:         markup.SourceRange{StartOffset: 1, EndOffset: 4},
	})
	assert.Equal(t, "<div>  [1,4)\n\nA generic container.\n", out)
}
