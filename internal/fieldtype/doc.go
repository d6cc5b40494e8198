// Package fieldtype holds the field-type strategies that compute the
// transformed payload of a custom field value.
//
// A strategy owns the payload semantics of one custom field data type; the
// custom-field value transformer owns the envelope (issue, field, ownership)
// and selects the strategy from a Registry by the field-type key of the
// field. Keys follow the exporting system's naming, for example
//
//	com.atlassian.jira.plugin.system.customfieldtypes:select
//
// Strategies report "no meaningful value" by returning an empty Result;
// errors are reserved for values the strategy cannot interpret at all.
package fieldtype
