// Package resolve implements the fallback chain used to resolve issue
// references that may point outside the imported project.
//
// A Chain is an ordered list of IssueResolver tiers; the first tier that
// resolves a reference wins. The usual chain is
//
//	resolve.Chain{resolve.Mapped{}, resolve.ByKey{Lookup: lookup}}
//
// where Mapped consults the in-project mapping and ByKey looks the issue key
// up in the live destination system. A miss in every tier is a normal
// outcome, not an error: errors are reserved for lookups that failed to run.
package resolve
