// Package langdetect picks the markup dialect (language ID) of a document
// from its file name and content. It uses go-enry for the extensions and
// content it recognizes and falls back to "html".
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language IDs understood by the built-in tag catalogs.
const (
	HTML        = "html"
	Visualforce = "visualforce"
	Handlebars  = "handlebars"
	XML         = "xml"
)

// visualforceExtensions are Salesforce page and component sources, which
// enry does not classify.
var visualforceExtensions = map[string]bool{
	".page":      true,
	".component": true,
}

// classifierCandidates limits the content classifier to markup dialects.
var classifierCandidates = []string{"HTML", "XML", "Handlebars", "Vue"}

// sniffLimit bounds how much content the pattern checks look at.
const sniffLimit = 8 << 10

// Detect returns the language ID for a document. path may be empty.
func Detect(path string, content []byte) string {
	// Strategy 1: extensions with a fixed dialect.
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if visualforceExtensions[ext] {
			return Visualforce
		}
		if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
			return normalize(lang)
		}
	}

	if len(content) == 0 {
		return HTML
	}

	// Strategy 2: patterns that identify a dialect outright.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 3: classifier over markup candidates.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return HTML
}

// FromURI detects the language of a document identified by a URI or path.
func FromURI(uri string, content []byte) string {
	path := uri
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return Detect(path, content)
}

// detectByPattern checks for markup that is highly indicative.
func detectByPattern(content []byte) string {
	head := bytes.ToLower(content[:min(len(content), sniffLimit)])
	trimmed := bytes.TrimSpace(head)

	if bytes.Contains(head, []byte("<apex:")) {
		return Visualforce
	}
	if bytes.Contains(head, []byte("<!doctype html")) ||
		bytes.Contains(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<body")) {
		return HTML
	}
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return XML
	}
	if bytes.Contains(head, []byte("{{#")) && bytes.Contains(head, []byte("{{/")) {
		return Handlebars
	}
	return ""
}

// normalize converts go-enry language names to language IDs.
func normalize(lang string) string {
	return strings.ToLower(strings.ReplaceAll(lang, " ", ""))
}
