package fieldtype

import (
	"projimport/internal/backup"
	"projimport/internal/mapping"
)

// Context locates the field configuration a value belongs to. All ids are in
// the destination identifier space; IssueTypeID is empty when the owning
// issue's type is unknown.
type Context struct {
	ProjectID     string
	IssueTypeID   string
	CustomFieldID string
}

// Result is the transformed payload of a value, rendered the way
// entity.Payload.Raw renders it. An empty Value means the value row is
// dropped.
type Result struct {
	Value     string
	ParentKey string
}

// IsEmpty reports whether the strategy produced no value.
func (r Result) IsEmpty() bool { return r.Value == "" }

// Strategy computes the mapped value of one custom field data type.
// Implementations must be safe for concurrent use.
type Strategy interface {
	MappedValue(p mapping.Provider, fc Context, v backup.CustomFieldValue) (Result, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(p mapping.Provider, fc Context, v backup.CustomFieldValue) (Result, error)

// MappedValue calls f(p, fc, v).
func (f StrategyFunc) MappedValue(p mapping.Provider, fc Context, v backup.CustomFieldValue) (Result, error) {
	return f(p, fc, v)
}
