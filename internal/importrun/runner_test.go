package importrun

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/fieldtype"
	"projimport/internal/mapping"
	"projimport/internal/metrics"
	"projimport/internal/resolve"
	"projimport/internal/target"
)

const bundleYAML = `
project:
  id: "10000"
  key: HSP
  name: homosapien
  lead: fred
issues:
  - id: "10100"
    key: HSP-1
    project: "10000"
    issue_type: "1"
    status: "3"
    reporter: fred
    summary: First
    created: 2023-03-01T09:00:00Z
    updated: 2023-03-02T09:00:00Z
  - id: "10101"
    key: HSP-2
    project: "10000"
    issue_type: "1"
    status: "3"
    assignee: wilma
    summary: Second
  - id: "10102"
    key: HSP-3
    project: "10000"
    issue_type: "99"
    status: "3"
    summary: Orphan type
comments:
  - id: "10700"
    issue: "10100"
    author: fred
    body: hello
  - id: "10701"
    issue: "10102"
    body: lost with its issue
change_groups:
  - id: "10300"
    issue: "10101"
change_items:
  - id: "10301"
    change_group: "10300"
    field_type: jira
    field: status
    old_string: Open
    new_string: Done
issue_links:
  - id: "10800"
    link_type: "10200"
    source: "10100"
    destination: "10101"
  - id: "10801"
    link_type: "10200"
    source: "10100"
    destination: "555"
    destination_key: OTHER-7
  - id: "10802"
    source: "10100"
    destination: "556"
    destination_key: GONE-1
node_associations:
  - source_node: "10100"
    sink_node: "10500"
    association_type: IssueComponent
  - source_node: "10101"
    sink_node: "10600"
    association_type: IssueFixVersion
voters:
  - issue: "10100"
    user: fred
labels:
  - id: "1"
    issue: "10101"
    label: urgent
attachments:
  - id: "10900"
    issue: "10100"
    file_name: screen.png
custom_field_values:
  - id: "11000"
    issue: "10100"
    custom_field: "10400"
    value:
      string: "10010"
  - id: "11001"
    issue: "10100"
    custom_field: "10499"
    value:
      string: ignored
`

func newTable() *mapping.Table {
	t := mapping.NewTable()
	t.Set(entity.KindIssueType, "1", "11")
	t.Set(entity.KindStatus, "3", "33")
	t.Set(entity.KindUser, "fred", "fred.smith")
	t.Set(entity.KindIssueLinkType, "10200", "20200")
	t.Set(entity.KindComponent, "10500", "20500")
	t.Set(entity.KindVersion, "10600", "20600")
	t.Set(entity.KindCustomField, "10400", "20400")
	t.Set(entity.KindCustomField, "10499", "20499")
	t.Set(entity.KindCustomFieldOption, "10010", "20010")
	t.SetCustomField("10400", mapping.CustomFieldDef{Type: fieldtype.Select})
	t.SetCustomField("10499", mapping.CustomFieldDef{Ignored: true})

	return t
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func TestRunner_Run(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	table := newTable()
	store := NewMemoryPersister(50000)
	m := metrics.New()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	runner := NewRunner(table, store,
		WithWorkers(3),
		WithLogger(quietLogger()),
		WithMetrics(m),
		WithResolver(resolve.Default(resolve.NewKeyIndex(map[string]string{"OTHER-7": "30007"}))),
		WithClock(func() time.Time { return now }),
	)

	summary, err := runner.Run(context.Background(), bundle)
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Passes, len(entity.ImportOrder()))

	projectID, ok := table.MappedID(entity.KindProject, "10000")
	require.True(t, ok)

	issues, _ := summary.Pass(entity.KindIssue)
	assert.Equal(t, 2, issues.Produced)
	assert.Equal(t, 1, issues.Dropped)

	_, ok = table.MappedID(entity.KindIssue, "10100")
	assert.True(t, ok)
	_, ok = table.MappedID(entity.KindIssue, "10102")
	assert.False(t, ok)

	groupID, ok := table.MappedID(entity.KindChangeGroup, "10300")
	require.True(t, ok)

	items := store.Records(entity.KindChangeItem)
	require.Len(t, items, 1)
	assert.Equal(t, groupID, items[0].(*target.ChangeItem).ChangeGroupID)

	links, _ := summary.Pass(entity.KindIssueLink)
	assert.Equal(t, 2, links.Produced)
	assert.Equal(t, 1, links.Dropped)

	assocs := store.Records(entity.KindNodeAssociation)
	require.Len(t, assocs, 2)
	assert.ElementsMatch(t, []string{"*target.ComponentAssociation", "*target.VersionAssociation"},
		[]string{typeName(assocs[0]), typeName(assocs[1])})

	values := store.Records(entity.KindCustomFieldValue)
	require.Len(t, values, 1)
	assert.Equal(t, "20010", values[0].(*target.CustomFieldValue).Value.Str())

	project := store.Records(entity.KindProject)[0].(*target.Project)
	assert.Equal(t, "fred.smith", project.LeadKey)
	assert.NotEmpty(t, projectID)

	for _, rec := range store.Records(entity.KindIssue) {
		if issue := rec.(*target.Issue); issue.Key == "HSP-2" {
			assert.Equal(t, now, issue.Created)
			assert.Empty(t, issue.AssigneeKey)
		}
	}

	diags := summary.Diagnostics
	assert.Len(t, diags.Errors, 2, "orphan issue type and the comment on the dropped issue")
	assert.Len(t, diags.Warnings, 1, "unmapped assignee")

	produced, dropped := summary.Totals()
	assert.Equal(t, 14, produced)
	assert.Equal(t, 4, dropped, "orphan issue, its comment, unresolvable link, ignored field value")

	assert.InDelta(t, 2, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("issue", metrics.OutcomeProduced)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.DiagnosticsTotal.WithLabelValues("issue", "warn", string(diagnostic.CodeOptionalDropped))), 0)
}

func TestRunner_ExistingProjectIsNotCreated(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	table := newTable()
	table.Set(entity.KindProject, "10000", "20000")
	store := NewMemoryPersister(1)

	summary, err := NewRunner(table, store, WithLogger(quietLogger())).Run(context.Background(), bundle)
	require.NoError(t, err)

	pass, ok := summary.Pass(entity.KindProject)
	require.True(t, ok)
	assert.True(t, pass.Skipped)
	assert.Empty(t, store.Records(entity.KindProject))

	issue := store.Records(entity.KindIssue)[0].(*target.Issue)
	assert.Equal(t, "20000", issue.ProjectID)
}

func TestRunner_StrategyErrorStopsRun(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	var seen diagnostic.Diagnostics

	table := newTable()
	summary, err := NewRunner(table, NewMemoryPersister(1),
		WithLogger(quietLogger()),
		WithRegistry(fieldtype.NewRegistry()),
		WithSink(&seen),
	).Run(context.Background(), bundle)

	require.ErrorIs(t, err, fieldtype.ErrUnknownFieldType)
	assert.Contains(t, err.Error(), "custom-field-value pass")
	assert.Len(t, summary.Passes, len(entity.ImportOrder()))
	assert.Equal(t, summary.Diagnostics.Len(), seen.Len())
}

// issueTypeRecorder registers a select strategy that records the issue-type
// context it is called with.
func issueTypeRecorder(seen *[]string) *fieldtype.Registry {
	var mu sync.Mutex

	reg := fieldtype.NewRegistry()
	reg.MustRegister(fieldtype.Select, fieldtype.StrategyFunc(
		func(_ mapping.Provider, fc fieldtype.Context, v backup.CustomFieldValue) (fieldtype.Result, error) {
			mu.Lock()
			defer mu.Unlock()

			*seen = append(*seen, fc.IssueTypeID)

			return fieldtype.Result{Value: v.Value.Str()}, nil
		}))

	return reg
}

func TestRunner_IssueTypeContextFromBundle(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	table := newTable()
	_, ok := table.IssueTypeOf("10100")
	require.False(t, ok)

	var seen []string

	summary, err := NewRunner(table, NewMemoryPersister(1),
		WithLogger(quietLogger()),
		WithRegistry(issueTypeRecorder(&seen)),
	).Run(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, []string{"11"}, seen)

	typeID, ok := table.IssueTypeOf("10100")
	require.True(t, ok)
	assert.Equal(t, "1", typeID)

	for _, d := range summary.Diagnostics.All() {
		assert.NotEqual(t, diagnostic.CodeIssueTypeContextMissing, d.Code, d.String())
	}
}

func TestRunner_IssueTypeContextFromMappingWins(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	table := newTable()
	table.Set(entity.KindIssueType, "2", "22")
	table.SetIssueType("10100", "2")

	var seen []string

	_, err = NewRunner(table, NewMemoryPersister(1),
		WithLogger(quietLogger()),
		WithRegistry(issueTypeRecorder(&seen)),
	).Run(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, []string{"22"}, seen)
}

func TestRunner_CanceledContext(t *testing.T) {
	bundle, err := ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(newTable(), NewMemoryPersister(1), WithLogger(quietLogger())).Run(ctx, bundle)
	require.ErrorIs(t, err, context.Canceled)
}

func typeName(v any) string {
	switch v.(type) {
	case *target.ComponentAssociation:
		return "*target.ComponentAssociation"
	case *target.VersionAssociation:
		return "*target.VersionAssociation"
	default:
		return "other"
	}
}
