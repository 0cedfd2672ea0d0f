package markup_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

func benchmarkDocument() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><title>bench</title><style>p { margin: 0 }</style></head>\n<body>\n")
	for i := range 200 {
		sb.WriteString(`  <div class="row" id="r`)
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString(`"><input type="text" disabled><span>cell</span><!-- note --><p>unclosed</div>`)
		sb.WriteString("\n")
	}
	sb.WriteString("<script>for (let i = 0; i < 10; i++) {}</script>\n</body>\n</html>\n")
	return sb.String()
}

func BenchmarkTokenize(b *testing.B) {
	src := benchmarkDocument()
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		markup.Tokenize(src)
	}
}

func BenchmarkParse(b *testing.B) {
	src := benchmarkDocument()
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		markup.Parse(src)
	}
}

func BenchmarkNodeAt(b *testing.B) {
	src := benchmarkDocument()
	doc := markup.Parse(src)
	offset := len(src) / 2
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		doc.NodeAt(offset)
		doc.NodeBefore(offset)
	}
}
