package entity

import "fmt"

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies an entity kind, both for mapping lookups and for the records
// the transformers produce.
type Kind int

const (
	KindUnknown Kind = iota // unknown

	// Reference kinds: already present in the destination, only ever looked up.
	KindProject           // project
	KindUser              // user
	KindIssueType         // issue-type
	KindStatus            // status
	KindPriority          // priority
	KindResolution        // resolution
	KindSecurityLevel     // security-level
	KindComponent         // component
	KindVersion           // version
	KindCustomField       // custom-field
	KindCustomFieldOption // custom-field-option
	KindIssueLinkType     // issue-link-type
	KindProjectRole       // project-role

	// Record kinds: transformed and persisted by the import.
	KindIssue            // issue
	KindComment          // comment
	KindWorklog          // worklog
	KindChangeGroup      // change-group
	KindChangeItem       // change-item
	KindIssueLink        // issue-link
	KindNodeAssociation  // node-association
	KindVoter            // voter
	KindWatcher          // watcher
	KindLabel            // label
	KindAttachment       // attachment
	KindCustomFieldValue // custom-field-value

	kindTotal = int(iota)
)

// Kinds returns every known kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindTotal-1)
	for k := KindProject; int(k) < kindTotal; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// Valid reports whether k is a declared kind other than KindUnknown.
func (k Kind) Valid() bool {
	return k > KindUnknown && int(k) < kindTotal
}

// ParseKind returns the kind whose name is s (e.g. "issue-link-type").
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("unknown entity kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
