package mapping

import "projimport/internal/entity"

// Provider resolves an old identifier of the given kind to its new identifier.
// ok is false when the identifier is unknown, orphaned or excluded.
// Implementations must be safe for concurrent reads and free of side effects.
type Provider interface {
	MappedID(kind entity.Kind, oldID string) (newID string, ok bool)
}

// CustomFields exposes the field-mapping level facts the custom-field value
// transformer needs beyond plain id mapping. All arguments are old ids.
type CustomFields interface {
	// IsIgnored reports whether values of the custom field are excluded.
	IsIgnored(fieldID string) bool
	// FieldType returns the field-type key of the custom field.
	FieldType(fieldID string) (string, bool)
	// IssueTypeOf returns the (old) issue type of an exported issue.
	IssueTypeOf(issueID string) (string, bool)
}

// MapProvider is a Provider over a plain map, handy for tests and fixtures.
// It must not be written to while in use.
type MapProvider map[entity.Kind]map[string]string

// MappedID implements Provider.
func (m MapProvider) MappedID(kind entity.Kind, oldID string) (string, bool) {
	newID, ok := m[kind][oldID]
	if !ok || newID == "" {
		return "", false
	}

	return newID, true
}
