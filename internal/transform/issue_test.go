package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/target"
)

func fullIssue() backup.Issue {
	return backup.Issue{
		ID:               "10100",
		Key:              "HSP-1",
		Number:           1,
		ProjectID:        "10000",
		IssueTypeID:      "1",
		StatusID:         "3",
		PriorityID:       "2",
		ResolutionID:     "5",
		SecurityLevelID:  "10020",
		ReporterKey:      "fred",
		AssigneeKey:      "barney",
		CreatorKey:       "barney",
		Summary:          "Something is broken",
		Description:      "Steps to reproduce",
		Environment:      "linux",
		Created:          common.Ptr(created),
		Updated:          common.Ptr(updated),
		DueDate:          common.Ptr(updated.Add(48 * time.Hour)),
		ResolutionDate:   common.Ptr(updated.Add(time.Hour)),
		Votes:            2,
		Watches:          3,
		OriginalEstimate: common.Ptr(int64(3600)),
		TimeEstimate:     common.Ptr(int64(1800)),
		TimeSpent:        common.Ptr(int64(1800)),
	}
}

func TestIssueTransformer_AllResolved(t *testing.T) {
	sink := newSink()
	got := NewIssueTransformer(sink, WithClock(fixedClock)).Transform(newProvider(), fullIssue())
	require.NotNil(t, got)

	want := &target.Issue{
		SourceID:         "10100",
		Key:              "HSP-1",
		Number:           1,
		ProjectID:        "20000",
		IssueTypeID:      "11",
		StatusID:         "33",
		PriorityID:       "22",
		ResolutionID:     "55",
		SecurityLevelID:  "20020",
		ReporterKey:      "fred.smith",
		AssigneeKey:      "barney.rubble",
		CreatorKey:       "barney.rubble",
		Summary:          "Something is broken",
		Description:      "Steps to reproduce",
		Environment:      "linux",
		Created:          created,
		Updated:          updated,
		DueDate:          common.Ptr(updated.Add(48 * time.Hour)),
		ResolutionDate:   common.Ptr(updated.Add(time.Hour)),
		Votes:            2,
		Watches:          3,
		OriginalEstimate: common.Ptr(int64(3600)),
		TimeEstimate:     common.Ptr(int64(1800)),
		TimeSpent:        common.Ptr(int64(1800)),
	}

	assert.Equal(t, want, got)
	assert.Zero(t, sink.Len())
}

func TestIssueTransformer_RequiredUnresolved(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*backup.Issue)
		field string
	}{
		{"project", func(i *backup.Issue) { i.ProjectID = "99" }, "project"},
		{"empty project", func(i *backup.Issue) { i.ProjectID = "" }, "project"},
		{"issue type", func(i *backup.Issue) { i.IssueTypeID = "99" }, "issue_type"},
		{"status", func(i *backup.Issue) { i.StatusID = "99" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := fullIssue()
			old.AssigneeKey = "unknown-user"
			tt.edit(&old)

			sink := newSink()
			got := NewIssueTransformer(sink).Transform(newProvider(), old)
			assert.Nil(t, got)

			require.Len(t, sink.Errors, 1)
			assert.Equal(t, tt.field, sink.Errors[0].Field)
			assert.Equal(t, diagnostic.CodeRequiredUnresolved, sink.Errors[0].Code)
			assert.Equal(t, "HSP-1", sink.Errors[0].OwnerKey)
			assert.Empty(t, sink.Warnings, "optional references of a dropped record are not reported")
		})
	}
}

func TestIssueTransformer_OptionalDropped(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*backup.Issue)
		field string
		check func(*testing.T, *target.Issue)
	}{
		{"priority", func(i *backup.Issue) { i.PriorityID = "99" }, "priority",
			func(t *testing.T, got *target.Issue) { assert.Empty(t, got.PriorityID) }},
		{"security level", func(i *backup.Issue) { i.SecurityLevelID = "99" }, "security_level",
			func(t *testing.T, got *target.Issue) { assert.Empty(t, got.SecurityLevelID) }},
		{"assignee", func(i *backup.Issue) { i.AssigneeKey = "wilma" }, "assignee",
			func(t *testing.T, got *target.Issue) { assert.Empty(t, got.AssigneeKey) }},
		{"creator", func(i *backup.Issue) { i.CreatorKey = "wilma" }, "creator",
			func(t *testing.T, got *target.Issue) { assert.Empty(t, got.CreatorKey) }},
		{"reporter", func(i *backup.Issue) { i.ReporterKey = "wilma" }, "reporter",
			func(t *testing.T, got *target.Issue) { assert.Empty(t, got.ReporterKey) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := fullIssue()
			tt.edit(&old)

			sink := newSink()
			tr := NewIssueTransformer(sink, WithClock(fixedClock))
			got := tr.Transform(newProvider(), old)
			require.NotNil(t, got)
			tt.check(t, got)

			require.Len(t, sink.Warnings, 1)
			assert.Equal(t, tt.field, sink.Warnings[0].Field)
			assert.Equal(t, diagnostic.CodeOptionalDropped, sink.Warnings[0].Code)
			assert.Equal(t, "HSP-1", sink.Warnings[0].OwnerKey)
			assert.Empty(t, sink.Errors)

			reference := NewIssueTransformer(nil, WithClock(fixedClock)).Transform(newProvider(), fullIssue())
			assert.Equal(t, reference.Summary, got.Summary)
			assert.Equal(t, reference.ProjectID, got.ProjectID)
			assert.Equal(t, reference.Created, got.Created)
		})
	}
}

func TestIssueTransformer_EmptyOptionalIsSilent(t *testing.T) {
	old := fullIssue()
	old.PriorityID = ""
	old.AssigneeKey = ""
	old.SecurityLevelID = ""

	sink := newSink()
	got := NewIssueTransformer(sink).Transform(newProvider(), old)
	require.NotNil(t, got)

	assert.Empty(t, got.PriorityID)
	assert.Empty(t, got.AssigneeKey)
	assert.Zero(t, sink.Len())
}

func TestIssueTransformer_CreatorDefaultsToReporter(t *testing.T) {
	old := fullIssue()
	old.CreatorKey = ""

	got := NewIssueTransformer(nil).Transform(newProvider(), old)
	require.NotNil(t, got)
	assert.Equal(t, "fred.smith", got.CreatorKey)
}

func TestIssueTransformer_MissingTimestamps(t *testing.T) {
	old := fullIssue()
	old.Created = nil
	old.Updated = nil
	old.ResolutionDate = nil

	got := NewIssueTransformer(nil, WithClock(fixedClock)).Transform(newProvider(), old)
	require.NotNil(t, got)

	assert.Equal(t, now, got.Created)
	assert.Equal(t, now, got.Updated)
	require.NotNil(t, got.ResolutionDate)
	assert.Equal(t, got.Updated, *got.ResolutionDate)
}

func TestIssueTransformer_OnlyUpdatedMissing(t *testing.T) {
	old := fullIssue()
	old.Updated = nil
	old.ResolutionDate = nil

	got := NewIssueTransformer(nil, WithClock(fixedClock)).Transform(newProvider(), old)
	require.NotNil(t, got)

	assert.Equal(t, created, got.Created)
	assert.Equal(t, now, got.Updated)
	assert.Equal(t, now, *got.ResolutionDate)
}

func TestIssueTransformer_ResolutionUnmapped(t *testing.T) {
	for _, resolution := range []string{"6", "99"} {
		old := fullIssue()
		old.ResolutionID = resolution

		sink := newSink()
		got := NewIssueTransformer(sink).Transform(newProvider(), old)
		require.NotNil(t, got)

		assert.Empty(t, got.ResolutionID)
		assert.Nil(t, got.ResolutionDate, "an unmapped resolution clears the resolution date")
		require.Len(t, sink.Warnings, 1)
		assert.Equal(t, "resolution", sink.Warnings[0].Field)
	}
}

func TestIssueTransformer_NoResolution(t *testing.T) {
	old := fullIssue()
	old.ResolutionID = ""

	got := NewIssueTransformer(nil).Transform(newProvider(), old)
	require.NotNil(t, got)
	assert.Nil(t, got.ResolutionDate)
}

func TestIssueTransformer_Idempotent(t *testing.T) {
	tr := NewIssueTransformer(nil, WithClock(fixedClock))
	old := fullIssue()
	old.Created = nil

	assert.Equal(t, tr.Transform(newProvider(), old), tr.Transform(newProvider(), old))
}

func TestIssueTransformer_SharesNothingWithOldRecord(t *testing.T) {
	old := fullIssue()

	got := NewIssueTransformer(nil).Transform(newProvider(), old)
	require.NotNil(t, got)

	assert.NotSame(t, old.DueDate, got.DueDate)
	assert.NotSame(t, old.ResolutionDate, got.ResolutionDate)
	assert.NotSame(t, old.TimeSpent, got.TimeSpent)

	*old.TimeSpent = 0
	assert.Equal(t, int64(1800), *got.TimeSpent)
}
