package mapping

import (
	"fmt"
	"maps"
	"slices"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
)

// Validate checks a mapping file structurally. It doesn't re-run reference
// resolution; it only catches files the transformers could not use as-is.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeMappingIsNil, entity.KindUnknown, "", "mapping file is nil")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeUnsupportedVersion, entity.KindUnknown, "",
			fmt.Sprintf("unsupported mapping file version %q", f.Version))
	}

	for _, name := range sortedKeys(f.Mappings) {
		kind, err := entity.ParseKind(name)
		if err != nil {
			res.AddError(diagnostic.CodeUnknownKind, entity.KindUnknown, name, err.Error())
			continue
		}

		validateKind(res, kind, f.Mappings[name])
	}

	fieldMap := f.Mappings[entity.KindCustomField.String()]

	for _, fieldID := range sortedKeys(f.CustomFields) {
		def := f.CustomFields[fieldID]
		if def.Ignored {
			continue
		}

		if def.Type == "" {
			res.AddError(diagnostic.CodeUnknownField, entity.KindCustomField, fieldID,
				"custom field has no type and is not ignored")
		}

		if _, ok := fieldMap[fieldID]; !ok {
			res.AddWarning(diagnostic.CodeUnknownField, entity.KindCustomField, fieldID,
				"custom field is defined but has no mapping")
		}
	}

	for _, issueID := range sortedKeys(f.IssueTypes) {
		if f.IssueTypes[issueID] == "" {
			res.AddWarning(diagnostic.CodeEmptyID, entity.KindIssueType, issueID, "issue has an empty issue type")
		}
	}

	return res
}

// validateKind checks the entries of one kind. Records created by the import
// itself must map to distinct new ids; reference kinds may legitimately fold
// several old ids onto one (e.g. two exported users merged into one).
func validateKind(res *diagnostic.Diagnostics, kind entity.Kind, byKind map[string]string) {
	seen := make(map[string]string, len(byKind))
	distinct := kind == entity.KindProject || kind >= entity.KindIssue

	for _, oldID := range sortedKeys(byKind) {
		newID := byKind[oldID]

		if oldID == "" {
			res.AddError(diagnostic.CodeEmptyID, kind, "", "empty old id")
			continue
		}

		if newID == "" || !distinct {
			continue
		}

		if prev, ok := seen[newID]; ok {
			res.AddWarning(diagnostic.CodeDuplicateID, kind, oldID,
				fmt.Sprintf("maps to %s, already the target of %s", newID, prev))

			continue
		}

		seen[newID] = oldID
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
