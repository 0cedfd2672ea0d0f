// Package tags describes the element vocabularies that drive completion and
// hover.
//
// A Provider answers which tags, attributes and attribute values a dialect
// knows about. The package ships the HTML5 and Visualforce vocabularies as
// embedded YAML catalogs and loads user catalogs in the same format.
package tags

import "strings"

// Value sets with a fixed meaning.
const (
	// ValueSetValueless marks an attribute written without a value, such as
	// "disabled". Its only value is the attribute name.
	ValueSetValueless = "v"

	// ValueSetEvent is reported for event handler attributes.
	ValueSetEvent = "event"
)

// Provider is a source of tag, attribute and value vocabulary.
//
// Tag and attribute arguments are expected in lowercase. Collectors are
// called in catalog order; results are not deduplicated.
type Provider interface {
	// ID identifies the provider in configuration.
	ID() string

	// IsApplicable reports whether the provider serves a document of the
	// given language ID.
	IsApplicable(languageID string) bool

	// CollectTags reports every known tag with its documentation.
	CollectTags(collect func(tag, documentation string))

	// CollectAttributes reports the attributes allowed on tag along with
	// each attribute's value set, which may be empty.
	CollectAttributes(tag string, collect func(attribute, valueSet string))

	// CollectValues reports the suggested values of attribute on tag.
	CollectValues(tag, attribute string, collect func(value string))
}

// Applicable returns the providers that apply to languageID and are not
// disabled in enabled. A provider missing from enabled is on.
func Applicable(providers []Provider, languageID string, enabled map[string]bool) []Provider {
	result := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if on, ok := enabled[p.ID()]; ok && !on {
			continue
		}
		if p.IsApplicable(languageID) {
			result = append(result, p)
		}
	}
	return result
}

// Documentation returns the documentation the first provider holds for tag,
// compared without regard to case.
func Documentation(providers []Provider, tag string) (string, bool) {
	for _, p := range providers {
		var (
			doc   string
			found bool
		)
		p.CollectTags(func(name, documentation string) {
			if !found && strings.EqualFold(name, tag) {
				doc, found = documentation, true
			}
		})
		if found {
			return doc, true
		}
	}
	return "", false
}
