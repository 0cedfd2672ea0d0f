package markup_test

import (
	"testing"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

var fuzzSeeds = []string{
	"",
	"<div></div>",
	"<br/>",
	`<input type="button" disabled>`,
	"<!DOCTYPE html><html><body><p>text</body></html>",
	"<!-- comment --><p>",
	"<script>if (a < b) { x = '</div>'; }</script>",
	`<script type="text/x-handlebars-template"><p>{{x}}</p></script>`,
	"<style>p > a { color: red }</style>",
	"<?xml version=\"1.0\"?><apex:page></apex:page>",
	"<h1><div><span></h1>",
	"< div></ div>",
	"<<<>>>",
	"<a href='x' title=\"y\" z=w>",
	"é😀<p>é</p>",
}

// FuzzScan checks that scanning always terminates with ordered, in-bounds
// tokens, whatever state the scanner starts in.
func FuzzScan(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed, 0, uint8(markup.WithinContent))
	}
	f.Add("name=value>", 0, uint8(markup.WithinTag))
	f.Add("x</script>", 0, uint8(markup.WithinRawText))
	f.Add("comment -->", 3, uint8(markup.WithinComment))

	f.Fuzz(func(t *testing.T, src string, offset int, state uint8) {
		start := max(0, min(offset, len(src)))
		scanner := markup.NewScanner(src, offset, markup.ScannerState(state%uint8(markup.BeforeAttributeValue+1)))

		prevEnd := start
		count := 0
		for tok := range scanner.All() {
			count++
			if count > len(src)+1 {
				t.Fatalf("scanner did not terminate on %q", src)
			}
			if tok.Offset < prevEnd || tok.End <= tok.Offset || tok.End > len(src) {
				t.Fatalf("token %v [%d,%d) out of order after %d in %q", tok.Kind, tok.Offset, tok.End, prevEnd, src)
			}
			prevEnd = tok.End
		}
		if scanner.Scan() != markup.TokenEOS {
			t.Errorf("Scan after EOS did not return EOS for %q", src)
		}
	})
}

// FuzzParse checks that the tree builder never panics and that every node
// nests inside its parent without overlapping its siblings.
func FuzzParse(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed, 0)
	}

	f.Fuzz(func(t *testing.T, src string, offset int) {
		doc := markup.Parse(src)
		if doc.Root == nil || doc.Root.Start != 0 || doc.Root.End != len(src) {
			t.Fatalf("root does not span %q", src)
		}

		err := markup.Walk(doc.Root, func(n *markup.Node) error {
			prevEnd := n.Start
			for _, child := range n.Children {
				if child.Parent != n {
					t.Errorf("child %q has wrong parent in %q", child.Tag, src)
				}
				if child.Start < prevEnd || child.End > n.End || child.Start > child.End {
					t.Errorf("child %q [%d,%d) escapes parent %q [%d,%d) in %q",
						child.Tag, child.Start, child.End, n.Tag, n.Start, n.End, src)
				}
				prevEnd = child.End
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walk: %v", err)
		}

		if doc.NodeBefore(offset) == nil || doc.NodeAt(offset) == nil {
			t.Errorf("query at %d returned nil for %q", offset, src)
		}
	})
}
