package transform

import (
	"fmt"

	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/fieldtype"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// CustomFieldValueTransformer transforms custom field values. It owns the
// envelope of a value (issue, field, ownership) and delegates the payload to
// the field-type strategy registered for the field's type.
type CustomFieldValueTransformer struct {
	sink     diagnostic.Sink
	fields   mapping.CustomFields
	registry *fieldtype.Registry
}

// NewCustomFieldValueTransformer creates a CustomFieldValueTransformer. A nil
// registry selects fieldtype.Default().
func NewCustomFieldValueTransformer(sink diagnostic.Sink, fields mapping.CustomFields, registry *fieldtype.Registry) *CustomFieldValueTransformer {
	if registry == nil {
		registry = fieldtype.Default()
	}

	return &CustomFieldValueTransformer{sink: sinkOrDiscard(sink), fields: fields, registry: registry}
}

// Transform returns the import-ready value for the destination project
// projectID, or nil when the field is ignored, a required reference does not
// resolve, or the strategy produced no value.
//
// The returned error reports a configuration problem: the field has no
// strategy, the strategy failed, or its value does not fit the payload slot
// of the exported value.
func (t *CustomFieldValueTransformer) Transform(p mapping.Provider, projectID string, old backup.CustomFieldValue) (*target.CustomFieldValue, error) {
	if t.fields.IsIgnored(old.CustomFieldID) {
		return nil, nil
	}

	r := newRefs(p, t.sink, entity.KindCustomFieldValue, old.ID)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	fieldID := r.required("custom_field", entity.KindCustomField, old.CustomFieldID)

	if !r.ok {
		return nil, nil
	}

	fc := fieldtype.Context{
		ProjectID:     projectID,
		IssueTypeID:   t.issueType(p, r, old.IssueID),
		CustomFieldID: fieldID,
	}

	typeKey, ok := t.fields.FieldType(old.CustomFieldID)
	if !ok {
		return nil, fmt.Errorf("custom field %s: %w: field has no type", old.CustomFieldID, fieldtype.ErrUnknownFieldType)
	}

	strategy, err := t.registry.Lookup(typeKey)
	if err != nil {
		return nil, fmt.Errorf("custom field %s: %w", old.CustomFieldID, err)
	}

	res, err := strategy.MappedValue(p, fc, old)
	if err != nil {
		return nil, fmt.Errorf("custom field %s value %s: %w", old.CustomFieldID, old.ID, err)
	}

	if res.IsEmpty() {
		r.report(diagnostic.SeverityInfo, diagnostic.CodeValueDropped, "value",
			fmt.Sprintf("field type %s produced no value for %q", typeKey, old.Value.Raw()))

		return nil, nil
	}

	value, err := old.Value.Replace(res.Value)
	if err != nil {
		return nil, fmt.Errorf("custom field %s value %s: %w", old.CustomFieldID, old.ID, err)
	}

	return &target.CustomFieldValue{
		IssueID:       issueID,
		CustomFieldID: fieldID,
		ParentKey:     res.ParentKey,
		Value:         value,
	}, nil
}

// issueType returns the new issue type of the owning issue, or "" with a
// warning when it is unknown.
func (t *CustomFieldValueTransformer) issueType(p mapping.Provider, r *refs, issueID string) string {
	oldType, ok := t.fields.IssueTypeOf(issueID)
	if !ok {
		r.report(diagnostic.SeverityWarning, diagnostic.CodeIssueTypeContextMissing, "issue_type",
			fmt.Sprintf("issue type of issue %s is unknown", issueID))

		return ""
	}

	newType, ok := p.MappedID(entity.KindIssueType, oldType)
	if !ok {
		r.report(diagnostic.SeverityWarning, diagnostic.CodeIssueTypeContextMissing, "issue_type",
			unresolved(entity.KindIssueType, oldType))

		return ""
	}

	return newType
}
