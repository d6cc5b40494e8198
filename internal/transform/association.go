package transform

import (
	"fmt"
	"slices"

	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// Association is a resolved node association: the new issue id, the new id
// of the associated node and the association type it was exported with.
type Association struct {
	IssueID         string
	SinkID          string
	AssociationType string
}

// NodeAssociationTransformer resolves issue → node associations of the
// accepted association types. Associations of any other type yield no record
// and a warning, so one association stream can be fanned out to several
// specialized transformers.
type NodeAssociationTransformer struct {
	sink     diagnostic.Sink
	sinkKind entity.Kind
	accepts  []string
}

// NewNodeAssociationTransformer creates a transformer for associations whose
// sink node is of sinkKind and whose type is one of accepts.
func NewNodeAssociationTransformer(sink diagnostic.Sink, sinkKind entity.Kind, accepts ...string) *NodeAssociationTransformer {
	return &NodeAssociationTransformer{sink: sinkOrDiscard(sink), sinkKind: sinkKind, accepts: accepts}
}

// Accepts reports whether associationType is handled by t.
func (t *NodeAssociationTransformer) Accepts(associationType string) bool {
	return slices.Contains(t.accepts, associationType)
}

// Transform resolves old. ok is false when no record should be produced.
// Both the issue and the sink node are required.
func (t *NodeAssociationTransformer) Transform(p mapping.Provider, old backup.NodeAssociation) (Association, bool) {
	r := newRefs(p, t.sink, entity.KindNodeAssociation, old.SourceNodeID+"/"+old.SinkNodeID)

	if !t.Accepts(old.AssociationType) {
		r.report(diagnostic.SeverityWarning, diagnostic.CodeAssociationTypeMismatch, "association_type",
			fmt.Sprintf("association type %q is not one of %v", old.AssociationType, t.accepts))

		return Association{}, false
	}

	issueID := r.required("issue", entity.KindIssue, old.SourceNodeID)
	sinkID := r.required(t.sinkKind.String(), t.sinkKind, old.SinkNodeID)

	if !r.ok {
		return Association{}, false
	}

	return Association{IssueID: issueID, SinkID: sinkID, AssociationType: old.AssociationType}, true
}

// ComponentAssociationTransformer transforms issue → component associations.
type ComponentAssociationTransformer struct {
	nodes *NodeAssociationTransformer
}

// NewComponentAssociationTransformer creates a ComponentAssociationTransformer
// reporting to sink.
func NewComponentAssociationTransformer(sink diagnostic.Sink) *ComponentAssociationTransformer {
	return &ComponentAssociationTransformer{
		nodes: NewNodeAssociationTransformer(sink, entity.KindComponent, backup.AssociationComponent),
	}
}

// Accepts reports whether associationType is a component association.
func (t *ComponentAssociationTransformer) Accepts(associationType string) bool {
	return t.nodes.Accepts(associationType)
}

// Transform returns the import-ready association, or nil.
func (t *ComponentAssociationTransformer) Transform(p mapping.Provider, old backup.NodeAssociation) *target.ComponentAssociation {
	a, ok := t.nodes.Transform(p, old)
	if !ok {
		return nil
	}

	return &target.ComponentAssociation{IssueID: a.IssueID, ComponentID: a.SinkID}
}

// VersionAssociationTransformer transforms affected-version and fix-version
// associations.
type VersionAssociationTransformer struct {
	nodes *NodeAssociationTransformer
}

// NewVersionAssociationTransformer creates a VersionAssociationTransformer
// reporting to sink.
func NewVersionAssociationTransformer(sink diagnostic.Sink) *VersionAssociationTransformer {
	return &VersionAssociationTransformer{
		nodes: NewNodeAssociationTransformer(sink, entity.KindVersion,
			backup.AssociationVersion, backup.AssociationFixVersion),
	}
}

// Accepts reports whether associationType is a version association.
func (t *VersionAssociationTransformer) Accepts(associationType string) bool {
	return t.nodes.Accepts(associationType)
}

// Transform returns the import-ready association, or nil.
func (t *VersionAssociationTransformer) Transform(p mapping.Provider, old backup.NodeAssociation) *target.VersionAssociation {
	a, ok := t.nodes.Transform(p, old)
	if !ok {
		return nil
	}

	return &target.VersionAssociation{IssueID: a.IssueID, VersionID: a.SinkID, AssociationType: a.AssociationType}
}
