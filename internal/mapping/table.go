package mapping

import (
	"maps"
	"sync"

	"projimport/internal/entity"
)

// Table is the in-memory Provider and CustomFields implementation.
// Reads may run concurrently with each other and with Set.
type Table struct {
	mu         sync.RWMutex
	ids        map[entity.Kind]map[string]string
	fields     map[string]CustomFieldDef
	issueTypes map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		ids:        make(map[entity.Kind]map[string]string),
		fields:     make(map[string]CustomFieldDef),
		issueTypes: make(map[string]string),
	}
}

// Set records that oldID of kind maps to newID. An empty newID records an
// explicit exclusion, which lookups report as absent.
func (t *Table) Set(kind entity.Kind, oldID, newID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	byKind, ok := t.ids[kind]
	if !ok {
		byKind = make(map[string]string)
		t.ids[kind] = byKind
	}

	byKind[oldID] = newID
}

// MappedID implements Provider.
func (t *Table) MappedID(kind entity.Kind, oldID string) (string, bool) {
	if oldID == "" {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	newID, ok := t.ids[kind][oldID]
	if !ok || newID == "" {
		return "", false
	}

	return newID, true
}

// Len returns the number of entries recorded for kind, exclusions included.
func (t *Table) Len(kind entity.Kind) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.ids[kind])
}

// SetCustomField records the definition of a custom field (old id).
func (t *Table) SetCustomField(fieldID string, def CustomFieldDef) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fields[fieldID] = def
}

// IsIgnored implements CustomFields.
func (t *Table) IsIgnored(fieldID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.fields[fieldID].Ignored
}

// FieldType implements CustomFields.
func (t *Table) FieldType(fieldID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	def, ok := t.fields[fieldID]
	if !ok || def.Type == "" {
		return "", false
	}

	return def.Type, true
}

// SetIssueType records the old issue type of an exported issue.
func (t *Table) SetIssueType(issueID, issueTypeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.issueTypes[issueID] = issueTypeID
}

// IssueTypeOf implements CustomFields.
func (t *Table) IssueTypeOf(issueID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	typeID, ok := t.issueTypes[issueID]
	if !ok || typeID == "" {
		return "", false
	}

	return typeID, true
}

// File returns a snapshot of the table in mapping-file form.
func (t *Table) File() *File {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f := &File{
		Version:  CurrentVersion,
		Mappings: make(map[string]map[string]string, len(t.ids)),
	}

	for kind, byKind := range t.ids {
		f.Mappings[kind.String()] = maps.Clone(byKind)
	}

	if len(t.fields) > 0 {
		f.CustomFields = maps.Clone(t.fields)
	}

	if len(t.issueTypes) > 0 {
		f.IssueTypes = maps.Clone(t.issueTypes)
	}

	return f
}
