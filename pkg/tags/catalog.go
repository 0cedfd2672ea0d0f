package tags

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when catalog data is malformed.
var ErrInvalidCatalog = errors.New("invalid tag catalog")

// MaxCatalogSize bounds the size of a catalog file.
const MaxCatalogSize = 4 << 20

// Tag is one element entry of a catalog.
type Tag struct {
	// Name is the lookup key. It is stored lowercase.
	Name string `yaml:"name"`

	// Label is the spelling offered in completion. Defaults to Name.
	Label string `yaml:"label,omitempty"`

	Documentation string `yaml:"documentation,omitempty"`

	// Attributes lists entries of the form name[:valueSet].
	Attributes []string `yaml:"attributes,omitempty"`
}

// DisplayName returns Label, or Name when no label is set.
func (t *Tag) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// catalogFile is the YAML layout of a catalog.
type catalogFile struct {
	ID               string              `yaml:"id"`
	Languages        []string            `yaml:"languages"`
	GlobalAttributes []string            `yaml:"global_attributes"`
	EventHandlers    []string            `yaml:"event_handlers"`
	ValueSets        map[string][]string `yaml:"value_sets"`
	Tags             []Tag               `yaml:"tags"`
}

// Catalog is a Provider backed by a static vocabulary. It is immutable once
// parsed and safe for concurrent use.
type Catalog struct {
	id               string
	languages        []string
	globalAttributes []string
	eventHandlers    []string
	valueSets        map[string][]string
	tags             []Tag
	index            map[string]int
}

var _ Provider = (*Catalog)(nil)

// ParseCatalog decodes a catalog from YAML. Unknown fields are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	if len(data) > MaxCatalogSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidCatalog, len(data), MaxCatalogSize)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	return newCatalog(file)
}

func newCatalog(file catalogFile) (*Catalog, error) {
	if strings.TrimSpace(file.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCatalog)
	}

	c := &Catalog{
		id:               file.ID,
		languages:        file.Languages,
		globalAttributes: file.GlobalAttributes,
		eventHandlers:    file.EventHandlers,
		valueSets:        file.ValueSets,
		tags:             make([]Tag, 0, len(file.Tags)),
		index:            make(map[string]int, len(file.Tags)),
	}

	for i, tag := range file.Tags {
		name := strings.ToLower(strings.TrimSpace(tag.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: %s: tag %d has no name", ErrInvalidCatalog, file.ID, i)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate tag %q", ErrInvalidCatalog, file.ID, name)
		}
		tag.Name = name
		c.index[name] = len(c.tags)
		c.tags = append(c.tags, tag)
	}

	return c, nil
}

// ID implements Provider.
func (c *Catalog) ID() string { return c.id }

// Languages returns the language IDs the catalog is limited to. An empty
// list means every language.
func (c *Catalog) Languages() []string { return slices.Clone(c.languages) }

// Tags returns the catalog entries in order.
func (c *Catalog) Tags() []Tag { return slices.Clone(c.tags) }

// Len is the number of tags in the catalog.
func (c *Catalog) Len() int { return len(c.tags) }

// Lookup returns the entry for tag, ignoring case.
func (c *Catalog) Lookup(tag string) (Tag, bool) {
	i, ok := c.index[strings.ToLower(tag)]
	if !ok {
		return Tag{}, false
	}
	return c.tags[i], true
}

// IsApplicable implements Provider.
func (c *Catalog) IsApplicable(languageID string) bool {
	return len(c.languages) == 0 || slices.Contains(c.languages, languageID)
}

// CollectTags implements Provider. Tags are reported by display name.
func (c *Catalog) CollectTags(collect func(tag, documentation string)) {
	for i := range c.tags {
		collect(c.tags[i].DisplayName(), c.tags[i].Documentation)
	}
}

// CollectAttributes implements Provider. A tag the catalog does not know
// gets no attributes, not even the global ones. For a known tag the global
// attributes come first, then the tag's own, then the event handlers.
func (c *Catalog) CollectAttributes(tag string, collect func(attribute, valueSet string)) {
	entry, ok := c.Lookup(tag)
	if !ok {
		return
	}
	for _, attr := range c.globalAttributes {
		collect(splitAttribute(attr))
	}
	for _, attr := range entry.Attributes {
		collect(splitAttribute(attr))
	}
	for _, handler := range c.eventHandlers {
		collect(handler, ValueSetEvent)
	}
}

// CollectValues implements Provider. The tag's attributes are consulted
// before the global ones; an attribute name matches without regard to case.
func (c *Catalog) CollectValues(tag, attribute string, collect func(value string)) {
	process := func(attrs []string) {
		for _, attr := range attrs {
			name, valueSet := splitAttribute(attr)
			if valueSet == "" || !strings.EqualFold(name, attribute) {
				continue
			}
			if valueSet == ValueSetValueless {
				collect(attribute)
				continue
			}
			for _, v := range c.valueSets[valueSet] {
				collect(v)
			}
		}
	}

	if tag != "" {
		if entry, ok := c.Lookup(tag); ok {
			process(entry.Attributes)
		}
	}
	process(c.globalAttributes)
}

// splitAttribute splits a name[:valueSet] entry. Only the first colon
// separates, so a value set never contains one.
func splitAttribute(entry string) (name, valueSet string) {
	name, rest, _ := strings.Cut(entry, ":")
	valueSet, _, _ = strings.Cut(rest, ":")
	return name, valueSet
}
