// Package target defines the New Records produced by the transformers:
// import-ready values expressed in the destination system's identifier space.
//
// New Records carry no identifier of their own; the persistence layer assigns
// one on insert. Records that later passes reference (projects, issues, change
// groups) keep the SourceID they were exported with so the persister can
// register the old → new mapping. An empty string means the reference is unset.
package target

import (
	"time"

	"projimport/internal/entity"
)

// Project is an import-ready project.
type Project struct {
	SourceID     string
	Key          string
	OriginalKey  string
	Name         string
	Description  string
	LeadKey      string
	URL          string
	EmailSender  string
	AssigneeType string
	Counter      int64
}

// Issue is an import-ready issue. Created and Updated are always set.
type Issue struct {
	SourceID         string
	Key              string
	Number           int64
	ProjectID        string
	IssueTypeID      string
	StatusID         string
	PriorityID       string
	ResolutionID     string
	SecurityLevelID  string
	ReporterKey      string
	AssigneeKey      string
	CreatorKey       string
	Summary          string
	Description      string
	Environment      string
	Created          time.Time
	Updated          time.Time
	DueDate          *time.Time
	ResolutionDate   *time.Time
	Votes            int64
	Watches          int64
	OriginalEstimate *int64
	TimeEstimate     *int64
	TimeSpent        *int64
}

// Comment is an import-ready comment.
type Comment struct {
	IssueID         string
	AuthorKey       string
	UpdateAuthorKey string
	Body            string
	GroupLevel      string
	RoleLevelID     string
	Created         *time.Time
	Updated         *time.Time
}

// Worklog is an import-ready work log entry.
type Worklog struct {
	IssueID         string
	AuthorKey       string
	UpdateAuthorKey string
	Comment         string
	GroupLevel      string
	RoleLevelID     string
	StartDate       *time.Time
	TimeSpent       int64
	Created         *time.Time
	Updated         *time.Time
}

// ChangeGroup is an import-ready change history entry.
type ChangeGroup struct {
	SourceID  string
	IssueID   string
	AuthorKey string
	Created   *time.Time
}

// ChangeItem is an import-ready field change.
type ChangeItem struct {
	ChangeGroupID string
	FieldType     string
	Field         string
	OldValue      string
	OldString     string
	NewValue      string
	NewString     string
}

// IssueLink is an import-ready link between two issues of the destination.
type IssueLink struct {
	LinkTypeID    string
	SourceID      string
	DestinationID string
	Sequence      *int64
}

// ComponentAssociation attaches a component to an issue.
type ComponentAssociation struct {
	IssueID     string
	ComponentID string
}

// VersionAssociation attaches a version to an issue, either as an affected
// version or as a fix version (AssociationType tells which).
type VersionAssociation struct {
	IssueID         string
	VersionID       string
	AssociationType string
}

// Voter is an import-ready vote.
type Voter struct {
	IssueID string
	UserKey string
}

// Watcher is an import-ready watch.
type Watcher struct {
	IssueID string
	UserKey string
}

// Label is an import-ready label. An empty CustomFieldID denotes the system
// labels field.
type Label struct {
	IssueID       string
	CustomFieldID string
	Label         string
}

// Attachment is import-ready attachment metadata. SourceID locates the
// attachment file in the export.
type Attachment struct {
	SourceID      string
	IssueID       string
	AttacherKey   string
	MimeType      string
	FileName      string
	FileSize      int64
	Zip           bool
	Thumbnailable bool
	Created       *time.Time
}

// CustomFieldValue is an import-ready custom field value. Value occupies the
// same payload slot as the exported value did.
type CustomFieldValue struct {
	IssueID       string
	CustomFieldID string
	ParentKey     string
	Value         entity.Payload
}
