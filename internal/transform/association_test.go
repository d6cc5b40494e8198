package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/target"
)

func TestComponentAssociationTransformer(t *testing.T) {
	old := backup.NodeAssociation{
		SourceNodeID:     "10100",
		SourceNodeEntity: "Issue",
		SinkNodeID:       "10500",
		SinkNodeEntity:   "Component",
		AssociationType:  backup.AssociationComponent,
	}

	sink := newSink()
	tr := NewComponentAssociationTransformer(sink)

	assert.Equal(t, &target.ComponentAssociation{IssueID: "20100", ComponentID: "20500"}, tr.Transform(newProvider(), old))
	assert.Zero(t, sink.Len())

	old.SinkNodeID = "99"
	assert.Nil(t, tr.Transform(newProvider(), old))
	require.Len(t, sink.Errors, 1)
	assert.Equal(t, "component", sink.Errors[0].Field)
	assert.Equal(t, entity.KindNodeAssociation, sink.Errors[0].Kind)
}

func TestVersionAssociationTransformer(t *testing.T) {
	tr := NewVersionAssociationTransformer(nil)

	for _, typ := range []string{backup.AssociationVersion, backup.AssociationFixVersion} {
		got := tr.Transform(newProvider(), backup.NodeAssociation{
			SourceNodeID:    "10100",
			SinkNodeID:      "10600",
			AssociationType: typ,
		})
		assert.Equal(t, &target.VersionAssociation{IssueID: "20100", VersionID: "20600", AssociationType: typ}, got)
	}

	sink := newSink()
	assert.Nil(t, NewVersionAssociationTransformer(sink).Transform(newProvider(), backup.NodeAssociation{
		SourceNodeID:    "99",
		SinkNodeID:      "10600",
		AssociationType: backup.AssociationFixVersion,
	}))
	require.Len(t, sink.Errors, 1)
	assert.Equal(t, "issue", sink.Errors[0].Field)
}

func TestAssociation_TypeMismatch(t *testing.T) {
	// Both ends resolve as components and as versions alike.
	p := newProvider()
	p[entity.KindVersion]["10500"] = "20500"

	old := backup.NodeAssociation{SourceNodeID: "10100", SinkNodeID: "10500", AssociationType: backup.AssociationComponent}

	sink := newSink()
	assert.Nil(t, NewVersionAssociationTransformer(sink).Transform(p, old))
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, diagnostic.CodeAssociationTypeMismatch, sink.Warnings[0].Code)
	assert.Empty(t, sink.Errors)

	old.AssociationType = backup.AssociationVersion
	assert.Nil(t, NewComponentAssociationTransformer(sink).Transform(p, old))
	assert.Len(t, sink.Warnings, 2)
}

func TestAssociation_FanOut(t *testing.T) {
	components := NewComponentAssociationTransformer(nil)
	versions := NewVersionAssociationTransformer(nil)

	stream := []backup.NodeAssociation{
		{SourceNodeID: "10100", SinkNodeID: "10500", AssociationType: backup.AssociationComponent},
		{SourceNodeID: "10100", SinkNodeID: "10600", AssociationType: backup.AssociationVersion},
		{SourceNodeID: "10101", SinkNodeID: "10600", AssociationType: backup.AssociationFixVersion},
		{SourceNodeID: "10101", SinkNodeID: "1", AssociationType: "IssueSprint"},
	}

	var nComponents, nVersions int

	for _, a := range stream {
		switch {
		case components.Accepts(a.AssociationType):
			if components.Transform(newProvider(), a) != nil {
				nComponents++
			}
		case versions.Accepts(a.AssociationType):
			if versions.Transform(newProvider(), a) != nil {
				nVersions++
			}
		}
	}

	assert.Equal(t, 1, nComponents)
	assert.Equal(t, 2, nVersions)
}
