package transform

import (
	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// VoterTransformer transforms votes.
type VoterTransformer struct {
	sink diagnostic.Sink
}

// NewVoterTransformer creates a VoterTransformer reporting to sink.
func NewVoterTransformer(sink diagnostic.Sink) *VoterTransformer {
	return &VoterTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready vote, or nil when its issue does not
// resolve.
func (t *VoterTransformer) Transform(p mapping.Provider, old backup.Voter) *target.Voter {
	r := newRefs(p, t.sink, entity.KindVoter, old.IssueID+"/"+old.UserKey)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Voter{IssueID: issueID, UserKey: r.optional("user", entity.KindUser, old.UserKey)}
}

// WatcherTransformer transforms watches.
type WatcherTransformer struct {
	sink diagnostic.Sink
}

// NewWatcherTransformer creates a WatcherTransformer reporting to sink.
func NewWatcherTransformer(sink diagnostic.Sink) *WatcherTransformer {
	return &WatcherTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready watch, or nil when its issue does not
// resolve.
func (t *WatcherTransformer) Transform(p mapping.Provider, old backup.Watcher) *target.Watcher {
	r := newRefs(p, t.sink, entity.KindWatcher, old.IssueID+"/"+old.UserKey)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Watcher{IssueID: issueID, UserKey: r.optional("user", entity.KindUser, old.UserKey)}
}

// LabelTransformer transforms labels.
type LabelTransformer struct {
	sink diagnostic.Sink
}

// NewLabelTransformer creates a LabelTransformer reporting to sink.
func NewLabelTransformer(sink diagnostic.Sink) *LabelTransformer {
	return &LabelTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready label, or nil when its issue does not
// resolve. A label without a custom field belongs to the system labels field.
func (t *LabelTransformer) Transform(p mapping.Provider, old backup.Label) *target.Label {
	r := newRefs(p, t.sink, entity.KindLabel, old.ID)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Label{
		IssueID:       issueID,
		CustomFieldID: r.optional("custom_field", entity.KindCustomField, old.CustomFieldID),
		Label:         old.Label,
	}
}

// AttachmentTransformer transforms attachment metadata.
type AttachmentTransformer struct {
	sink diagnostic.Sink
}

// NewAttachmentTransformer creates an AttachmentTransformer reporting to sink.
func NewAttachmentTransformer(sink diagnostic.Sink) *AttachmentTransformer {
	return &AttachmentTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready attachment, or nil when its issue does
// not resolve.
func (t *AttachmentTransformer) Transform(p mapping.Provider, old backup.Attachment) *target.Attachment {
	r := newRefs(p, t.sink, entity.KindAttachment, common.FirstNonEmpty(old.ID, old.FileName))

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Attachment{
		SourceID:      old.ID,
		IssueID:       issueID,
		AttacherKey:   r.optional("attacher", entity.KindUser, old.AttacherKey),
		MimeType:      old.MimeType,
		FileName:      old.FileName,
		FileSize:      old.FileSize,
		Zip:           old.Zip,
		Thumbnailable: old.Thumbnailable,
		Created:       common.Clone(old.Created),
	}
}
