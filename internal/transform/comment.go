package transform

import (
	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// CommentTransformer transforms issue comments.
type CommentTransformer struct {
	sink diagnostic.Sink
}

// NewCommentTransformer creates a CommentTransformer reporting to sink.
func NewCommentTransformer(sink diagnostic.Sink) *CommentTransformer {
	return &CommentTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready comment, or nil when its issue does not
// resolve. The visibility group level is copied; the visibility role is an
// optional reference.
func (t *CommentTransformer) Transform(p mapping.Provider, old backup.Comment) *target.Comment {
	r := newRefs(p, t.sink, entity.KindComment, old.ID)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Comment{
		IssueID:         issueID,
		AuthorKey:       r.optional("author", entity.KindUser, old.AuthorKey),
		UpdateAuthorKey: r.optional("update_author", entity.KindUser, old.UpdateAuthorKey),
		Body:            old.Body,
		GroupLevel:      old.GroupLevel,
		RoleLevelID:     r.optional("role_level", entity.KindProjectRole, old.RoleLevelID),
		Created:         common.Clone(old.Created),
		Updated:         common.Clone(old.Updated),
	}
}

// WorklogTransformer transforms work log entries.
type WorklogTransformer struct {
	sink diagnostic.Sink
}

// NewWorklogTransformer creates a WorklogTransformer reporting to sink.
func NewWorklogTransformer(sink diagnostic.Sink) *WorklogTransformer {
	return &WorklogTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready work log, or nil when its issue does
// not resolve.
func (t *WorklogTransformer) Transform(p mapping.Provider, old backup.Worklog) *target.Worklog {
	r := newRefs(p, t.sink, entity.KindWorklog, old.ID)

	issueID := r.required("issue", entity.KindIssue, old.IssueID)
	if !r.ok {
		return nil
	}

	return &target.Worklog{
		IssueID:         issueID,
		AuthorKey:       r.optional("author", entity.KindUser, old.AuthorKey),
		UpdateAuthorKey: r.optional("update_author", entity.KindUser, old.UpdateAuthorKey),
		Comment:         old.Comment,
		GroupLevel:      old.GroupLevel,
		RoleLevelID:     r.optional("role_level", entity.KindProjectRole, old.RoleLevelID),
		StartDate:       common.Clone(old.StartDate),
		TimeSpent:       old.TimeSpent,
		Created:         common.Clone(old.Created),
		Updated:         common.Clone(old.Updated),
	}
}
