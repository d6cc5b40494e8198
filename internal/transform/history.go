package transform

import (
	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// ChangeGroupTransformer transforms change history entries.
type ChangeGroupTransformer struct {
	sink diagnostic.Sink
}

// NewChangeGroupTransformer creates a ChangeGroupTransformer reporting to sink.
func NewChangeGroupTransformer(sink diagnostic.Sink) *ChangeGroupTransformer {
	return &ChangeGroupTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready change group, or nil when its issue
// does not resolve.
func (t *ChangeGroupTransformer) Transform(p mapping.Provider, old backup.ChangeGroup) *target.ChangeGroup {
	r := newRefs(p, t.sink, entity.KindChangeGroup, old.ID)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.ChangeGroup{
		SourceID:  old.ID,
		IssueID:   issueID,
		AuthorKey: r.optional("author", entity.KindUser, old.AuthorKey),
		Created:   common.Clone(old.Created),
	}
}

// ChangeItemTransformer transforms single field changes. Change groups must
// be persisted, and their new ids mapped, before change items run.
type ChangeItemTransformer struct {
	sink diagnostic.Sink
}

// NewChangeItemTransformer creates a ChangeItemTransformer reporting to sink.
func NewChangeItemTransformer(sink diagnostic.Sink) *ChangeItemTransformer {
	return &ChangeItemTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready change item, or nil when its change
// group does not resolve. Old and new values are copied as exported.
func (t *ChangeItemTransformer) Transform(p mapping.Provider, old backup.ChangeItem) *target.ChangeItem {
	r := newRefs(p, t.sink, entity.KindChangeItem, old.ID)

	groupID := r.required("change_group", entity.KindChangeGroup, old.ChangeGroupID)
	if !r.ok {
		return nil
	}

	return &target.ChangeItem{
		ChangeGroupID: groupID,
		FieldType:     old.FieldType,
		Field:         old.Field,
		OldValue:      old.OldValue,
		OldString:     old.OldString,
		NewValue:      old.NewValue,
		NewString:     old.NewString,
	}
}
