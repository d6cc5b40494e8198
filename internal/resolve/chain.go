package resolve

import (
	"context"
	"fmt"

	"projimport/internal/entity"
	"projimport/internal/mapping"
)

// IssueRef is an exported reference to an issue: its old id and, when the
// export carries it, its human-readable issue key.
type IssueRef struct {
	OldID string
	Key   string
}

// String returns the key when known, the old id otherwise.
func (r IssueRef) String() string {
	if r.Key != "" {
		return r.Key
	}

	return r.OldID
}

// IssueResolver is one tier of the fallback chain.
type IssueResolver interface {
	ResolveIssue(ctx context.Context, p mapping.Provider, ref IssueRef) (newID string, ok bool, err error)
}

// Chain tries its tiers in order. The first tier reporting ok wins; the first
// error stops the chain.
type Chain []IssueResolver

// ResolveIssue implements IssueResolver.
func (c Chain) ResolveIssue(ctx context.Context, p mapping.Provider, ref IssueRef) (string, bool, error) {
	for i, tier := range c {
		newID, ok, err := tier.ResolveIssue(ctx, p, ref)
		if err != nil {
			return "", false, fmt.Errorf("resolver tier %d: %w", i, err)
		}

		if ok {
			return newID, true, nil
		}
	}

	return "", false, nil
}

// Mapped resolves through the in-project Mapping Provider.
type Mapped struct{}

// ResolveIssue implements IssueResolver.
func (Mapped) ResolveIssue(_ context.Context, p mapping.Provider, ref IssueRef) (string, bool, error) {
	newID, ok := p.MappedID(entity.KindIssue, ref.OldID)

	return newID, ok, nil
}

// ByKey resolves by issue key against the destination system.
type ByKey struct {
	Lookup KeyLookup
}

// ResolveIssue implements IssueResolver.
func (b ByKey) ResolveIssue(ctx context.Context, _ mapping.Provider, ref IssueRef) (string, bool, error) {
	if ref.Key == "" || b.Lookup == nil {
		return "", false, nil
	}

	return b.Lookup.IssueIDByKey(ctx, ref.Key)
}

// Default returns the two-tier chain: in-project mapping, then lookup by key.
// A nil lookup yields a mapping-only chain.
func Default(lookup KeyLookup) Chain {
	if lookup == nil {
		return Chain{Mapped{}}
	}

	return Chain{Mapped{}, ByKey{Lookup: lookup}}
}
