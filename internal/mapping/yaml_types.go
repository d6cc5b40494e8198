package mapping

import (
	"fmt"

	"projimport/internal/entity"
)

// CurrentVersion is the mapping file schema version this package writes.
const CurrentVersion = "1"

// File is the YAML form of a resolved mapping.
type File struct {
	Version      string                       `yaml:"version"`
	Mappings     map[string]map[string]string `yaml:"mappings"`
	CustomFields map[string]CustomFieldDef    `yaml:"custom_fields,omitempty"`
	IssueTypes   map[string]string            `yaml:"issue_types,omitempty"`
}

// CustomFieldDef describes an exported custom field at the field-mapping level.
type CustomFieldDef struct {
	// Type is the field-type key selecting the field-type strategy.
	Type string `yaml:"type,omitempty"`
	// Ignored excludes every value of the field from the import.
	Ignored bool `yaml:"ignored,omitempty"`
}

// Table builds a Table from the file. Unknown kind names are rejected;
// run Validate first for a full report.
func (f *File) Table() (*Table, error) {
	t := NewTable()

	for name, byKind := range f.Mappings {
		kind, err := entity.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("mappings: %w", err)
		}

		for oldID, newID := range byKind {
			t.Set(kind, oldID, newID)
		}
	}

	for fieldID, def := range f.CustomFields {
		t.SetCustomField(fieldID, def)
	}

	for issueID, typeID := range f.IssueTypes {
		t.SetIssueType(issueID, typeID)
	}

	return t, nil
}
