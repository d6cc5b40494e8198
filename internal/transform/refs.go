package transform

import (
	"fmt"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
)

// refs resolves the references of one Old Record and reports failures
// against it. After the first required miss it stops resolving.
type refs struct {
	p     mapping.Provider
	sink  diagnostic.Sink
	kind  entity.Kind
	owner string
	ok    bool
}

func newRefs(p mapping.Provider, sink diagnostic.Sink, kind entity.Kind, owner string) *refs {
	return &refs{p: p, sink: sink, kind: kind, owner: owner, ok: true}
}

// required resolves a reference the record cannot exist without.
func (r *refs) required(field string, kind entity.Kind, oldID string) string {
	if !r.ok {
		return ""
	}

	newID, found := r.p.MappedID(kind, oldID)
	if !found {
		r.ok = false
		r.report(diagnostic.SeverityError, diagnostic.CodeRequiredUnresolved, field, unresolved(kind, oldID))

		return ""
	}

	return newID
}

// optional resolves a reference the record can do without. An empty oldID
// is a valid absent reference.
func (r *refs) optional(field string, kind entity.Kind, oldID string) string {
	if oldID == "" {
		return ""
	}

	newID, found := r.p.MappedID(kind, oldID)
	if !found {
		r.report(diagnostic.SeverityWarning, diagnostic.CodeOptionalDropped, field, unresolved(kind, oldID)+", field dropped")

		return ""
	}

	return newID
}

func (r *refs) report(sev diagnostic.Severity, code diagnostic.Code, field, msg string) {
	r.sink.Report(diagnostic.Diagnostic{
		Severity: sev,
		Code:     code,
		Kind:     r.kind,
		OwnerKey: r.owner,
		Field:    field,
		Message:  msg,
	})
}

func unresolved(kind entity.Kind, oldID string) string {
	if oldID == "" {
		return fmt.Sprintf("%s reference is empty", kind)
	}

	return fmt.Sprintf("%s %s is not mapped", kind, oldID)
}

func sinkOrDiscard(sink diagnostic.Sink) diagnostic.Sink {
	if sink == nil {
		return diagnostic.Discard
	}

	return sink
}
