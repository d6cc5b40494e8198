package transform

import (
	"context"
	"fmt"

	"projimport/internal/backup"
	"projimport/internal/common"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/resolve"
	"projimport/internal/target"
)

// IssueLinkTransformer transforms issue links. Each end resolves through
// the resolver chain, so links into other projects of the destination survive
// when the linked issue can be found by key.
type IssueLinkTransformer struct {
	sink     diagnostic.Sink
	resolver resolve.IssueResolver
}

// NewIssueLinkTransformer creates an IssueLinkTransformer. A nil resolver
// resolves through the mapping only.
func NewIssueLinkTransformer(sink diagnostic.Sink, resolver resolve.IssueResolver) *IssueLinkTransformer {
	if resolver == nil {
		resolver = resolve.Default(nil)
	}

	return &IssueLinkTransformer{sink: sinkOrDiscard(sink), resolver: resolver}
}

// Transform returns the import-ready link. The source end is resolved first;
// if either end resolves in no tier the link is dropped without a report,
// since a link into a project that was never imported is expected. Errors
// come only from failed lookups.
func (t *IssueLinkTransformer) Transform(ctx context.Context, p mapping.Provider, old backup.IssueLink) (*target.IssueLink, error) {
	sourceID, ok, err := t.resolver.ResolveIssue(ctx, p, resolve.IssueRef{OldID: old.SourceID, Key: old.SourceKey})
	if err != nil {
		return nil, fmt.Errorf("issue link %s: source: %w", old.ID, err)
	}

	if !ok {
		return nil, nil
	}

	destinationID, ok, err := t.resolver.ResolveIssue(ctx, p, resolve.IssueRef{OldID: old.DestinationID, Key: old.DestinationKey})
	if err != nil {
		return nil, fmt.Errorf("issue link %s: destination: %w", old.ID, err)
	}

	if !ok {
		return nil, nil
	}

	r := newRefs(p, t.sink, entity.KindIssueLink, old.ID)

	return &target.IssueLink{
		LinkTypeID:    r.optional("link_type", entity.KindIssueLinkType, old.LinkTypeID),
		SourceID:      sourceID,
		DestinationID: destinationID,
		Sequence:      common.Clone(old.Sequence),
	}, nil
}
