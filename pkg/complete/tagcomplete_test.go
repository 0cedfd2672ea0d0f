package complete_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

func TestTagComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"<div>|", "$0</div>", true},
		{"<div>|</div>", "", false},
		{`<div class="">|`, "$0</div>", true},
		{"<img>|", "", false},
		{"<div><br></|", "div>", true},
		{"<div><br><span></span></|", "div>", true},
		{"<div><h1><br><span></span><img></| </h1></div>", "h1>", true},
		{"<Panel>|", "$0</Panel>", true},
		{"|<div>", "", false},
		{"<div/>|", "", false},
		{"a>|", "", false},
		{"</|", "", false},
		{"<p>text|", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			offset := strings.Index(tt.input, "|")
			text := tt.input[:offset] + tt.input[offset+1:]
			got, ok := complete.TagComplete(text, offset, markup.Parse(text))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagComplete_OutOfRange(t *testing.T) {
	t.Parallel()

	text := "<div>"
	doc := markup.Parse(text)
	_, ok := complete.TagComplete(text, 99, doc)
	assert.False(t, ok)
	_, ok = complete.TagComplete(text, -1, doc)
	assert.False(t, ok)
}
