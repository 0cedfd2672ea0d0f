package complete_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// expectation describes one proposal. An empty result only checks presence.
type expectation struct {
	label        string
	result       string
	notAvailable bool
}

// completeAt completes the text at the '|' marker in a Visualforce document.
func completeAt(t *testing.T, marked string, opts complete.Options) (string, *complete.List) {
	t.Helper()

	offset := strings.Index(marked, "|")
	require.GreaterOrEqual(t, offset, 0, "missing cursor marker in %q", marked)
	text := marked[:offset] + marked[offset+1:]

	providers := tags.Applicable(tags.Builtin(), "visualforce", opts.Providers)
	return text, complete.Complete(text, offset, markup.Parse(text), providers, opts)
}

func assertItems(t *testing.T, marked string, opts complete.Options, want []expectation) {
	t.Helper()

	text, list := completeAt(t, marked, opts)
	for _, exp := range want {
		var matches []complete.Item
		for _, item := range list.Items {
			if item.Label == exp.label {
				matches = append(matches, item)
			}
		}
		if exp.notAvailable {
			assert.Empty(t, matches, "%q: %s should not be offered", marked, exp.label)
			continue
		}
		if !assert.Len(t, matches, 1, "%q: %s offered %d times", marked, exp.label, len(matches)) {
			continue
		}
		if exp.result != "" {
			got, err := fix.Apply(text, matches[0].Edit)
			require.NoError(t, err)
			assert.Equal(t, exp.result, got, "%q: applying %s", marked, exp.label)
		}
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []expectation
	}{
		{"<|", []expectation{{"iframe", "<iframe", false}, {"h1", "<h1", false}, {"div", "<div", false}}},
		{"< |", []expectation{{"iframe", "<iframe", false}, {"h1", "<h1", false}, {"div", "<div", false}}},
		{"<h|", []expectation{{"html", "<html", false}, {"h1", "<h1", false}, {"header", "<header", false}}},
		{"<input|", []expectation{{"input", "<input", false}}},
		{"<inp|ut", []expectation{{"input", "<input", false}}},
		{"<|inp", []expectation{{"input", "<input", false}}},
		{"<input |", []expectation{
			{"type", `<input type="$1"`, false},
			{"style", `<input style="$1"`, false},
			{"onmousemove", `<input onmousemove="$1"`, false},
		}},
		{"<input t|", []expectation{{"type", `<input type="$1"`, false}, {"tabindex", `<input tabindex="$1"`, false}}},
		{"<input t|ype", []expectation{{"type", `<input type="$1"`, false}, {"tabindex", `<input tabindex="$1"`, false}}},
		{`<input t|ype="text"`, []expectation{
			{"type", `<input type="text"`, false},
			{"tabindex", `<input tabindex="text"`, false},
		}},
		{`<input type="text" |`, []expectation{
			{"style", `<input type="text" style="$1"`, false},
			{"type", `<input type="text" type="$1"`, false},
			{"size", `<input type="text" size="$1"`, false},
		}},
		{`<input type="text" s|`, []expectation{
			{"style", `<input type="text" style="$1"`, false},
			{"src", `<input type="text" src="$1"`, false},
			{"size", `<input type="text" size="$1"`, false},
		}},
		{`<input di| type="text"`, []expectation{
			{"disabled", `<input disabled type="text"`, false},
			{"dir", `<input dir="$1" type="text"`, false},
		}},
		{`<input disabled | type="text"`, []expectation{
			{"dir", `<input disabled dir="$1" type="text"`, false},
			{"style", `<input disabled style="$1" type="text"`, false},
		}},
		{"<input type=|", []expectation{{"text", `<input type="text"`, false}, {"checkbox", `<input type="checkbox"`, false}}},
		{`<input type="c|`, []expectation{{"color", `<input type="color`, false}, {"checkbox", `<input type="checkbox`, false}}},
		{`<input type="|`, []expectation{{"color", `<input type="color`, false}, {"checkbox", `<input type="checkbox`, false}}},
		{"<input type= |", []expectation{{"color", `<input type= "color"`, false}, {"checkbox", `<input type= "checkbox"`, false}}},
		{`<input src="c" type="color|" `, []expectation{{"color", `<input src="c" type="color" `, false}}},
		{`<iframe sandbox="allow-forms |`, []expectation{{"allow-modals", `<iframe sandbox="allow-forms allow-modals`, false}}},
		{`<iframe sandbox="allow-forms allow-modals|`, []expectation{{"allow-modals", `<iframe sandbox="allow-forms allow-modals`, false}}},
		{`<iframe sandbox="allow-forms all|"`, []expectation{{"allow-modals", `<iframe sandbox="allow-forms allow-modals"`, false}}},
		{`<iframe sandbox="allow-forms a|llow-modals "`, []expectation{{"allow-modals", `<iframe sandbox="allow-forms allow-modals "`, false}}},
		{`<input src="c" type=color| `, []expectation{{"color", `<input src="c" type="color" `, false}}},
		{"<div dir=|></div>", []expectation{{"ltr", `<div dir="ltr"></div>`, false}, {"rtl", `<div dir="rtl"></div>`, false}}},
		{"<ul><|>", []expectation{{"/ul", "<ul></ul>", false}, {"li", "<ul><li>", false}}},
		{"<ul><li><|", []expectation{{"/li", "<ul><li></li>", false}, {"a", "<ul><li><a", false}}},
		{"<goo></|>", []expectation{{"/goo", "<goo></goo>", false}}},
		{"<foo></f|", []expectation{{"/foo", "<foo></foo>", false}}},
		{"<foo></f|o", []expectation{{"/foo", "<foo></foo>", false}}},
		{"<foo></|fo", []expectation{{"/foo", "<foo></foo>", false}}},
		{"<foo></ |>", []expectation{{"/foo", "<foo></foo>", false}}},
		{"<span></ s|", []expectation{{"/span", "<span></span>", false}}},
		{"<li><br></ |>", []expectation{{"/li", "<li><br></li>", false}}},
		{"<foo><br/></ f|>", []expectation{{"/foo", "<foo><br/></foo>", false}}},
		{"<li><div/></|", []expectation{{"/li", "<li><div/></li>", false}}},
		{"<foo><bar></bar></|   ", []expectation{{"/foo", "<foo><bar></bar></foo>   ", false}}},
		{
			"<div>\n  <form>\n    <div>\n      <label></label>\n      <|\n    </div>\n  </form></div>",
			[]expectation{
				{"span", "<div>\n  <form>\n    <div>\n      <label></label>\n      <span\n    </div>\n  </form></div>", false},
				{"/div", "<div>\n  <form>\n    <div>\n      <label></label>\n    </div>\n    </div>\n  </form></div>", false},
			},
		},
		{"<body><div><div></div></div></|  >", []expectation{{"/body", "<body><div><div></div></div></body  >", false}}},
		{"<body>\n  <div>\n    </|", []expectation{{"/div", "<body>\n  <div>\n  </div>", false}}},
		{"<div><a hre|</div>", []expectation{{"href", `<div><a href="$1"</div>`, false}}},
		{"<a><b>foo</b><|f>", []expectation{{"/a", "<a><b>foo</b></a>", false}, {"/f", "", true}}},
		{"<a><b>foo</b><| bar.", []expectation{{"/a", "<a><b>foo</b></a> bar.", false}, {"/bar", "", true}}},
		{"<div><h1><br><span></span><img></| </h1></div>", []expectation{
			{"/h1", "<div><h1><br><span></span><img></h1> </h1></div>", false},
		}},
		{"<div>|", []expectation{{"</div>", "<div>$0</div>", false}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assertItems(t, tt.input, complete.Options{}, tt.want)
		})
	}
}

func TestComplete_NoProposals(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"<li/|>",
		"  <div/|   ",
		"<li><br/|>",
		"<li><br>a/|",
		"<!-- <|",
		"<div>|</div>",
		"<br>|",
	} {
		_, list := completeAt(t, input, complete.Options{})
		assert.Empty(t, list.Items, "input %q got %v", input, list.Labels())
	}
}

func TestComplete_AutoClose(t *testing.T) {
	t.Parallel()

	_, list := completeAt(t, "<div>|", complete.Options{})
	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, complete.Snippet, item.Format)
	assert.Equal(t, fix.Insert(5, "$0</div>"), item.Edit)
	assert.False(t, list.IsIncomplete)

	_, list = completeAt(t, "<div>|", complete.Options{HideAutoCompleteProposals: true})
	assert.Empty(t, list.Items)

	_, list = completeAt(t, "<div><div>|</div>", complete.Options{})
	assert.Empty(t, list.Items, "inner element already has its end tag")

	_, list = completeAt(t, `<p class="x">|`, complete.Options{})
	assert.Equal(t, []string{"</p>"}, list.Labels())
}

func TestComplete_CaseSensitivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []expectation
	}{
		{"<LI></|", []expectation{{"/LI", "<LI></LI>", false}, {"/li", "", true}}},
		{"<lI></|", []expectation{{"/lI", "<lI></lI>", false}}},
		{"<iNpUt |", []expectation{{"type", `<iNpUt type="$1"`, false}}},
		{"<INPUT TYPE=|", []expectation{{"color", `<INPUT TYPE="color"`, false}}},
		{"<dIv>|", []expectation{{"</dIv>", "<dIv>$0</dIv>", false}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assertItems(t, tt.input, complete.Options{}, tt.want)
		})
	}
}

func TestComplete_HandlebarsScript(t *testing.T) {
	t.Parallel()

	assertItems(t, `<script id="entry-template" type="text/x-handlebars-template"> <| </script>`, complete.Options{},
		[]expectation{{"div", `<script id="entry-template" type="text/x-handlebars-template"> <div </script>`, false}})

	_, list := completeAt(t, `<script type="text/javascript"> <| </script>`, complete.Options{})
	assert.Empty(t, list.Items, "plain scripts are raw text")
}

func TestComplete_Aria(t *testing.T) {
	t.Parallel()

	names := []string{
		"activedescendant", "atomic", "autocomplete", "busy", "checked", "colcount", "colindex", "colspan",
		"controls", "current", "describedat", "describedby", "disabled", "dropeffect", "errormessage",
		"expanded", "flowto", "grabbed", "haspopup", "hidden", "invalid", "kbdshortcuts", "label",
		"labelledby", "level", "live", "modal", "multiline", "multiselectable", "orientation", "owns",
		"placeholder", "posinset", "pressed", "readonly", "relevant", "required", "roledescription",
		"rowcount", "rowindex", "rowspan", "selected", "setsize", "sort", "valuemax", "valuemin",
		"valuenow", "valuetext",
	}
	want := make([]expectation, 0, len(names))
	for _, name := range names {
		want = append(want, expectation{label: "aria-" + name})
	}

	for _, input := range []string{"<div  |> </div >", "<span  |> </span >", "<input  |> </input >"} {
		assertItems(t, input, complete.Options{}, want)
	}
}

func TestComplete_AttributeKinds(t *testing.T) {
	t.Parallel()

	_, list := completeAt(t, "<button |", complete.Options{})

	onclick, ok := list.Find("onclick")
	require.True(t, ok)
	assert.Equal(t, complete.KindFunction, onclick.Kind)
	assert.Equal(t, complete.Snippet, onclick.Format)

	disabled, ok := list.Find("disabled")
	require.True(t, ok)
	assert.Equal(t, complete.KindValue, disabled.Kind)
	assert.Equal(t, "disabled", disabled.Edit.NewText)

	_, list = completeAt(t, "<button type=|", complete.Options{})
	submit, ok := list.Find("submit")
	require.True(t, ok)
	assert.Equal(t, complete.KindUnit, submit.Kind)
	assert.Equal(t, complete.PlainText, submit.Format)
	assert.Equal(t, `"submit"`, submit.FilterText)
}

func TestComplete_ValueStopsAtTagOpen(t *testing.T) {
	t.Parallel()

	assertItems(t, `<div dir="|<span>`, complete.Options{},
		[]expectation{{"ltr", `<div dir="ltr<span>`, false}})
	assertItems(t, `<div dir="l|tr<span>`, complete.Options{},
		[]expectation{{"rtl", `<div dir="rtl<span>`, false}})

	// An unterminated value runs into the next tag; the '<' behind the
	// cursor is kept as well.
	assertItems(t, "<div dir=\"\n<l|", complete.Options{},
		[]expectation{{"ltr", "<div dir=\"\n<ltr", false}})
	assertItems(t, "<div dir=\"a <sp|an", complete.Options{},
		[]expectation{{"auto", "<div dir=\"a <auto", false}})
}

func TestComplete_Settings(t *testing.T) {
	t.Parallel()

	opts := complete.Options{Providers: map[string]bool{"html5": true, "ionic": false, "angular1": false}}
	assertItems(t, "<|", opts, []expectation{{"ion-checkbox", "", true}, {"div", "", false}})
	assertItems(t, "<input  |> </input >", opts, []expectation{{"ng-model", "", true}, {"type", "", false}})

	_, list := completeAt(t, "<|", complete.Options{Providers: map[string]bool{"html5": false}})
	_, hasDiv := list.Find("div")
	assert.False(t, hasDiv)
	_, hasPage := list.Find("apex:page")
	assert.True(t, hasPage)
}

func TestComplete_NoProvidersStillClosesAncestors(t *testing.T) {
	t.Parallel()

	text := "<custom><"
	list := complete.Complete(text, len(text), markup.Parse(text), nil, complete.Options{})
	assert.Equal(t, []string{"/custom"}, list.Labels())
}

func TestComplete_OutOfRange(t *testing.T) {
	t.Parallel()

	text := "<div></div>"
	doc := markup.Parse(text)
	providers := tags.Builtin()
	assert.Empty(t, complete.Complete(text, -3, doc, providers, complete.Options{}).Items)
	assert.Empty(t, complete.Complete(text, 400, doc, providers, complete.Options{}).Items)
}

func TestComplete_Visualforce(t *testing.T) {
	t.Parallel()

	_, list := completeAt(t, "<|", complete.Options{})
	for _, ns := range []string{
		"analytics", "apex", "chatter", "flow", "ideas", "knowledge", "liveAgent",
		"messaging", "site", "social", "support", "topic", "wave",
	} {
		found := false
		for _, label := range list.Labels() {
			if strings.HasPrefix(label, ns) {
				found = true
				break
			}
		}
		assert.True(t, found, "namespace %s was not seen", ns)
	}

	want := []expectation{{label: "aria-activedescendant", notAvailable: true}, {label: "ng-model", notAvailable: true}}
	for _, name := range []string{
		"action", "apiVersion", "applyBodyTag", "applyHtmlTag", "cache", "contentType", "controller",
		"deferLastCommandUntilReady", "docType", "expires", "extensions", "id", "label", "language",
		"lightningStylesheets", "manifest", "name", "pageStyle", "readOnly", "recordSetName",
		"recordSetVar", "renderAs", "rendered", "setup", "showChat", "showHeader",
		"showQuickActionVfHeader", "sidebar", "standardController", "standardStylesheets", "tabStyle",
		"title", "wizard",
	} {
		want = append(want, expectation{label: name})
	}
	assertItems(t, "<apex:page |> </apex:page>", complete.Options{}, want)

	assertItems(t, `<apex:page applyBodyTag="|"> </apex:page>`, complete.Options{},
		[]expectation{{label: "true"}, {label: "false"}})
}

func TestList_Helpers(t *testing.T) {
	t.Parallel()

	list := &complete.List{Items: []complete.Item{{Label: "a"}, {Label: "b"}}}
	assert.Equal(t, []string{"a", "b"}, list.Labels())
	_, ok := list.Find("c")
	assert.False(t, ok)

	assert.Equal(t, "function", complete.KindFunction.String())
	assert.Equal(t, "property", complete.KindProperty.String())
	assert.Equal(t, "snippet", complete.Snippet.String())
	assert.Equal(t, "plaintext", complete.PlainText.String())
}
