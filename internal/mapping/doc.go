// Package mapping provides the Mapping Provider contract consumed by the
// transformers, its in-memory implementation, and the YAML mapping file that
// persists a fully resolved mapping between runs.
//
// The mapping is produced by a separate resolution/validation pass. By the
// time any transformer runs it is complete: an absent entry means the old
// identifier was never seen, was orphaned or was intentionally excluded, and
// transformers treat that as a normal outcome.
//
// # Schema Overview
//
//	version: "1"
//	mappings:
//	  issue:
//	    "10000": "20000"
//	  user:
//	    fred: fred.smith
//	custom_fields:
//	  "10400":
//	    type: com.atlassian.jira.plugin.system.customfieldtypes:select
//	  "10500":
//	    ignored: true
//	issue_types:
//	  "10000": "1"    # old issue id -> old issue type id
//
// Kind names under mappings are the entity kind names ("issue-type",
// "custom-field-option", ...). Custom fields flagged ignored produce no
// values at all. issue_types gives the custom-field transformer the
// issue-type context of each exported issue.
//
// # Concurrency
//
// Table supports concurrent reads. The driver appends entries between passes
// as the persistence layer assigns new identifiers; transformers never write.
package mapping
