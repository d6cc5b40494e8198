package transform

import (
	"time"

	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// IssueTransformer transforms issues.
type IssueTransformer struct {
	sink diagnostic.Sink
	now  func() time.Time
}

// IssueOption configures an IssueTransformer.
type IssueOption func(*IssueTransformer)

// WithClock sets the source of "now" used for missing timestamps.
func WithClock(now func() time.Time) IssueOption {
	return func(t *IssueTransformer) {
		t.now = now
	}
}

// NewIssueTransformer creates an IssueTransformer reporting to sink.
func NewIssueTransformer(sink diagnostic.Sink, opts ...IssueOption) *IssueTransformer {
	t := &IssueTransformer{sink: sinkOrDiscard(sink), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Transform returns the import-ready issue, or nil when the project, issue
// type or status does not resolve.
//
// A missing creator defaults to the reporter. A missing created or updated
// timestamp defaults to now, but the other one is kept when present rather
// than being reset as well. When both are missing they share one instant.
// The resolution date survives only when the resolution itself resolved, and
// falls back to updated.
func (t *IssueTransformer) Transform(p mapping.Provider, old backup.Issue) *target.Issue {
	r := newRefs(p, t.sink, entity.KindIssue, common.FirstNonEmpty(old.Key, old.ID))

	projectID := r.required("project", entity.KindProject, old.ProjectID)
	issueTypeID := r.required("issue_type", entity.KindIssueType, old.IssueTypeID)
	statusID := r.required("status", entity.KindStatus, old.StatusID)

	if !r.ok {
		return nil
	}

	reporter := r.optional("reporter", entity.KindUser, old.ReporterKey)

	creator := reporter
	if old.CreatorKey != "" {
		creator = r.optional("creator", entity.KindUser, old.CreatorKey)
	}

	issue := &target.Issue{
		SourceID:         old.ID,
		Key:              old.Key,
		Number:           old.Number,
		ProjectID:        projectID,
		IssueTypeID:      issueTypeID,
		StatusID:         statusID,
		PriorityID:       r.optional("priority", entity.KindPriority, old.PriorityID),
		ResolutionID:     r.optional("resolution", entity.KindResolution, old.ResolutionID),
		SecurityLevelID:  r.optional("security_level", entity.KindSecurityLevel, old.SecurityLevelID),
		ReporterKey:      reporter,
		AssigneeKey:      r.optional("assignee", entity.KindUser, old.AssigneeKey),
		CreatorKey:       creator,
		Summary:          old.Summary,
		Description:      old.Description,
		Environment:      old.Environment,
		DueDate:          common.Clone(old.DueDate),
		Votes:            old.Votes,
		Watches:          old.Watches,
		OriginalEstimate: common.Clone(old.OriginalEstimate),
		TimeEstimate:     common.Clone(old.TimeEstimate),
		TimeSpent:        common.Clone(old.TimeSpent),
	}

	if old.Created == nil || old.Updated == nil {
		now := t.now()
		issue.Created = derefOr(old.Created, now)
		issue.Updated = derefOr(old.Updated, now)
	} else {
		issue.Created = *old.Created
		issue.Updated = *old.Updated
	}

	// Runs after resolution mapping: an unmapped resolution clears the date.
	if issue.ResolutionID != "" {
		if old.ResolutionDate != nil {
			issue.ResolutionDate = common.Clone(old.ResolutionDate)
		} else {
			issue.ResolutionDate = common.Ptr(issue.Updated)
		}
	}

	return issue
}

func derefOr(p *time.Time, fallback time.Time) time.Time {
	if p == nil {
		return fallback
	}

	return *p
}
