// Package backup defines the Old Records read from a project export. Every
// identifier is expressed in the exporting system's identifier space; an empty
// string means the reference is absent. Values are never mutated after they
// are read.
package backup

import (
	"time"

	"projimport/internal/entity"
)

// Project is an exported project.
type Project struct {
	ID           string `yaml:"id"`
	Key          string `yaml:"key"`
	OriginalKey  string `yaml:"original_key,omitempty"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	LeadKey      string `yaml:"lead,omitempty"`
	URL          string `yaml:"url,omitempty"`
	EmailSender  string `yaml:"email_sender,omitempty"`
	AssigneeType string `yaml:"assignee_type,omitempty"`
	Counter      int64  `yaml:"counter,omitempty"`
}

// Issue is an exported issue.
type Issue struct {
	ID               string     `yaml:"id"`
	Key              string     `yaml:"key"`
	Number           int64      `yaml:"number,omitempty"`
	ProjectID        string     `yaml:"project"`
	IssueTypeID      string     `yaml:"issue_type"`
	StatusID         string     `yaml:"status"`
	PriorityID       string     `yaml:"priority,omitempty"`
	ResolutionID     string     `yaml:"resolution,omitempty"`
	SecurityLevelID  string     `yaml:"security_level,omitempty"`
	ReporterKey      string     `yaml:"reporter,omitempty"`
	AssigneeKey      string     `yaml:"assignee,omitempty"`
	CreatorKey       string     `yaml:"creator,omitempty"`
	Summary          string     `yaml:"summary"`
	Description      string     `yaml:"description,omitempty"`
	Environment      string     `yaml:"environment,omitempty"`
	Created          *time.Time `yaml:"created,omitempty"`
	Updated          *time.Time `yaml:"updated,omitempty"`
	DueDate          *time.Time `yaml:"due_date,omitempty"`
	ResolutionDate   *time.Time `yaml:"resolution_date,omitempty"`
	Votes            int64      `yaml:"votes,omitempty"`
	Watches          int64      `yaml:"watches,omitempty"`
	OriginalEstimate *int64     `yaml:"original_estimate,omitempty"`
	TimeEstimate     *int64     `yaml:"time_estimate,omitempty"`
	TimeSpent        *int64     `yaml:"time_spent,omitempty"`
}

// Comment is an exported issue comment.
type Comment struct {
	ID              string     `yaml:"id"`
	IssueID         string     `yaml:"issue"`
	AuthorKey       string     `yaml:"author,omitempty"`
	UpdateAuthorKey string     `yaml:"update_author,omitempty"`
	Body            string     `yaml:"body"`
	GroupLevel      string     `yaml:"group_level,omitempty"`
	RoleLevelID     string     `yaml:"role_level,omitempty"`
	Created         *time.Time `yaml:"created,omitempty"`
	Updated         *time.Time `yaml:"updated,omitempty"`
}

// Worklog is an exported work log entry.
type Worklog struct {
	ID              string     `yaml:"id"`
	IssueID         string     `yaml:"issue"`
	AuthorKey       string     `yaml:"author,omitempty"`
	UpdateAuthorKey string     `yaml:"update_author,omitempty"`
	Comment         string     `yaml:"comment,omitempty"`
	GroupLevel      string     `yaml:"group_level,omitempty"`
	RoleLevelID     string     `yaml:"role_level,omitempty"`
	StartDate       *time.Time `yaml:"start_date,omitempty"`
	TimeSpent       int64      `yaml:"time_spent"`
	Created         *time.Time `yaml:"created,omitempty"`
	Updated         *time.Time `yaml:"updated,omitempty"`
}

// ChangeGroup is one entry of an issue's change history.
type ChangeGroup struct {
	ID        string     `yaml:"id"`
	IssueID   string     `yaml:"issue"`
	AuthorKey string     `yaml:"author,omitempty"`
	Created   *time.Time `yaml:"created,omitempty"`
}

// ChangeItem is a single field change within a ChangeGroup.
type ChangeItem struct {
	ID            string `yaml:"id"`
	ChangeGroupID string `yaml:"change_group"`
	FieldType     string `yaml:"field_type"`
	Field         string `yaml:"field"`
	OldValue      string `yaml:"old_value,omitempty"`
	OldString     string `yaml:"old_string,omitempty"`
	NewValue      string `yaml:"new_value,omitempty"`
	NewString     string `yaml:"new_string,omitempty"`
}

// IssueLink links two issues. Either end may live outside the exported
// project, so the export carries each end's issue key as well.
type IssueLink struct {
	ID             string `yaml:"id"`
	LinkTypeID     string `yaml:"link_type,omitempty"`
	SourceID       string `yaml:"source"`
	SourceKey      string `yaml:"source_key,omitempty"`
	DestinationID  string `yaml:"destination"`
	DestinationKey string `yaml:"destination_key,omitempty"`
	Sequence       *int64 `yaml:"sequence,omitempty"`
}

// Association types of NodeAssociation records.
const (
	AssociationComponent  = "IssueComponent"
	AssociationVersion    = "IssueVersion"
	AssociationFixVersion = "IssueFixVersion"
)

// NodeAssociation is a generic issue → component/version association,
// discriminated by AssociationType.
type NodeAssociation struct {
	SourceNodeID     string `yaml:"source_node"`
	SourceNodeEntity string `yaml:"source_entity,omitempty"`
	SinkNodeID       string `yaml:"sink_node"`
	SinkNodeEntity   string `yaml:"sink_entity,omitempty"`
	AssociationType  string `yaml:"association_type"`
}

// Voter records a user's vote on an issue.
type Voter struct {
	IssueID string `yaml:"issue"`
	UserKey string `yaml:"user,omitempty"`
}

// Watcher records a user watching an issue.
type Watcher struct {
	IssueID string `yaml:"issue"`
	UserKey string `yaml:"user,omitempty"`
}

// Label is a label on an issue. An empty CustomFieldID means the label
// belongs to the system labels field.
type Label struct {
	ID            string `yaml:"id"`
	IssueID       string `yaml:"issue"`
	CustomFieldID string `yaml:"custom_field,omitempty"`
	Label         string `yaml:"label"`
}

// Attachment is the metadata of a file attached to an issue.
type Attachment struct {
	ID            string     `yaml:"id"`
	IssueID       string     `yaml:"issue"`
	AttacherKey   string     `yaml:"attacher,omitempty"`
	MimeType      string     `yaml:"mime_type,omitempty"`
	FileName      string     `yaml:"file_name"`
	FileSize      int64      `yaml:"file_size,omitempty"`
	Zip           bool       `yaml:"zip,omitempty"`
	Thumbnailable bool       `yaml:"thumbnailable,omitempty"`
	Created       *time.Time `yaml:"created,omitempty"`
}

// CustomFieldValue is one stored value of a custom field on an issue.
// ParentKey is set by hierarchical fields such as cascading selects.
type CustomFieldValue struct {
	ID            string         `yaml:"id"`
	IssueID       string         `yaml:"issue"`
	CustomFieldID string         `yaml:"custom_field"`
	ParentKey     string         `yaml:"parent_key,omitempty"`
	Value         entity.Payload `yaml:"value"`
}
