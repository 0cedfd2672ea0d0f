// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Document fields.
	FieldURI      = "uri"
	FieldLanguage = "language"
	FieldOffset   = "offset"
	FieldVersion  = "version"
	FieldLength   = "length"

	// Completion fields.
	FieldItems     = "items"
	FieldProviders = "providers"
	FieldTag       = "tag"

	// Catalog fields.
	FieldCatalog = "catalog"
	FieldTags    = "tags"
	FieldEvent   = "event"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
