package diagnostic

// Code classifies a diagnostic.
type Code string

const (
	// CodeRequiredUnresolved: a required reference did not resolve; no record.
	CodeRequiredUnresolved Code = "required_reference_unresolved"
	// CodeOptionalDropped: an optional reference did not resolve; field unset.
	CodeOptionalDropped Code = "optional_reference_dropped"
	// CodeAssociationTypeMismatch: an association was handed to a transformer
	// of another specialization.
	CodeAssociationTypeMismatch Code = "association_type_mismatch"
	// CodeValueDropped: the field type produced no value after transformation.
	CodeValueDropped Code = "custom_field_value_dropped"
	// CodeIssueTypeContextMissing: the owning issue's issue type is unknown,
	// the field type gets no issue-type context.
	CodeIssueTypeContextMissing Code = "issue_type_context_missing"

	// Mapping file validation codes.
	CodeUnknownKind        Code = "unknown_kind"
	CodeEmptyID            Code = "empty_id"
	CodeDuplicateID        Code = "duplicate_id"
	CodeMappingIsNil       Code = "mapping_is_nil"
	CodeUnknownField       Code = "unknown_custom_field"
	CodeUnsupportedVersion Code = "unsupported_version"
)
