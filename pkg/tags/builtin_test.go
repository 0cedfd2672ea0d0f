package tags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/pkg/tags"
)

func TestHTML5(t *testing.T) {
	t.Parallel()

	html := tags.HTML5()
	assert.Same(t, html, tags.HTML5(), "loaded once")
	assert.Equal(t, tags.HTML5ID, html.ID())
	assert.Equal(t, 109, html.Len())
	assert.True(t, html.IsApplicable("html"))
	assert.True(t, html.IsApplicable("visualforce"))

	var first string
	html.CollectTags(func(tag, _ string) {
		if first == "" {
			first = tag
		}
	})
	assert.Equal(t, "html", first)

	var attrs []string
	events := 0
	html.CollectAttributes("input", func(name, valueSet string) {
		attrs = append(attrs, name)
		if valueSet == tags.ValueSetEvent {
			events++
		}
	})
	assert.Equal(t, "aria-activedescendant", attrs[0])
	assert.Contains(t, attrs, "checked")
	assert.Contains(t, attrs, "dir")
	assert.Equal(t, 56, events)
	assert.Len(t, attrs, 69+32+56)
}

func TestHTML5_Values(t *testing.T) {
	t.Parallel()

	collect := func(tag, attribute string) []string {
		var values []string
		tags.HTML5().CollectValues(tag, attribute, func(v string) { values = append(values, v) })
		return values
	}

	assert.Equal(t, []string{"ltr", "rtl", "auto"}, collect("div", "dir"))
	assert.Equal(t, []string{"button", "submit", "reset", "menu"}, collect("button", "type"))
	assert.Equal(t, []string{"checked"}, collect("input", "checked"))
	assert.Equal(t, []string{"true", "false"}, collect("div", "contenteditable"))
	assert.Empty(t, collect("div", "class"))
}

func TestVisualforce(t *testing.T) {
	t.Parallel()

	vf := tags.Visualforce()
	assert.Equal(t, tags.VisualforceID, vf.ID())
	assert.Equal(t, 137, vf.Len())
	assert.True(t, vf.IsApplicable("visualforce"))
	assert.False(t, vf.IsApplicable("html"))

	var labels []string
	vf.CollectTags(func(tag, _ string) { labels = append(labels, tag) })
	assert.Equal(t, "analytics:reportChart", labels[0])
	assert.Contains(t, labels, "apex:inputCheckbox")

	var attrs []string
	vf.CollectAttributes("apex:page", func(name, _ string) { attrs = append(attrs, name) })
	assert.Contains(t, attrs, "showHeader")
	assert.NotContains(t, attrs, "class", "no HTML globals")

	var values []string
	vf.CollectValues("apex:page", "showheader", func(v string) { values = append(values, v) })
	assert.Equal(t, []string{"true", "false"}, values)
}

func TestApplicable(t *testing.T) {
	t.Parallel()

	builtin := tags.Builtin()
	require.Len(t, builtin, 2)
	assert.Equal(t, tags.BuiltinIDs(), []string{builtin[0].ID(), builtin[1].ID()})

	ids := func(providers []tags.Provider) []string {
		var out []string
		for _, p := range providers {
			out = append(out, p.ID())
		}
		return out
	}

	assert.Equal(t, []string{"html5"}, ids(tags.Applicable(builtin, "html", nil)))
	assert.Equal(t, []string{"html5", "visualforce"}, ids(tags.Applicable(builtin, "visualforce", nil)))
	assert.Equal(t, []string{"visualforce"},
		ids(tags.Applicable(builtin, "visualforce", map[string]bool{"html5": false})))
	assert.Equal(t, []string{"html5", "visualforce"},
		ids(tags.Applicable(builtin, "visualforce", map[string]bool{"html5": true})))
}

func TestDocumentation(t *testing.T) {
	t.Parallel()

	doc, ok := tags.Documentation(tags.Builtin(), "HTML")
	require.True(t, ok)
	assert.Equal(t, "The html element represents the root of an HTML document.", doc)

	doc, ok = tags.Documentation(tags.Builtin(), "apex:inputcheckbox")
	require.True(t, ok)
	assert.NotEmpty(t, doc)

	_, ok = tags.Documentation(tags.Builtin(), "blink")
	assert.False(t, ok)
}
