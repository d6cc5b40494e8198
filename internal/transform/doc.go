// Package transform holds the entity transformers: one per entity kind, each
// turning an Old Record into an import-ready New Record expressed in the
// destination identifier space.
//
// Every transformer follows the same steps. Required references are resolved
// first; the first one that does not resolve is reported at error level and
// the transformer returns nil ("no record"). Optional references are then
// resolved; one that does not resolve is left unset and reported at warning
// level, and the record is still produced. An optional reference that is
// already empty in the Old Record stays empty without a report. Scalar fields
// are copied, pointer fields are cloned, so a New Record shares nothing with
// its Old Record.
//
// Transformers hold no mutable state. They may be called concurrently as long
// as the Mapping Provider and the diagnostics sink allow concurrent use.
// Unresolvable references are never errors; the only errors returned are
// failed issue lookups (IssueLinkTransformer) and field-type strategy
// failures (CustomFieldValueTransformer).
package transform
