package fieldtype

import (
	"projimport/internal/backup"
	"projimport/internal/entity"
	"projimport/internal/mapping"
)

// KeyPrefix is the namespace of the built-in field types.
const KeyPrefix = "com.atlassian.jira.plugin.system.customfieldtypes:"

// Built-in field-type keys.
const (
	TextField       = KeyPrefix + "textfield"
	TextArea        = KeyPrefix + "textarea"
	ReadOnly        = KeyPrefix + "readonlyfield"
	Float           = KeyPrefix + "float"
	DatePicker      = KeyPrefix + "datepicker"
	DateTime        = KeyPrefix + "datetime"
	URL             = KeyPrefix + "url"
	Labels          = KeyPrefix + "labels"
	Select          = KeyPrefix + "select"
	Radio           = KeyPrefix + "radiobuttons"
	MultiSelect     = KeyPrefix + "multiselect"
	Checkboxes      = KeyPrefix + "multicheckboxes"
	CascadingSelect = KeyPrefix + "cascadingselect"
	Version         = KeyPrefix + "version"
	MultiVersion    = KeyPrefix + "multiversion"
	UserPicker      = KeyPrefix + "userpicker"
	MultiUserPicker = KeyPrefix + "multiuserpicker"
	Project         = KeyPrefix + "project"
)

// Default returns a registry holding every built-in strategy.
func Default() *Registry {
	r := NewRegistry()

	for _, key := range []string{TextField, TextArea, ReadOnly, Float, DatePicker, DateTime, URL, Labels} {
		r.MustRegister(key, PassThrough{})
	}

	for _, key := range []string{Select, Radio, MultiSelect, Checkboxes} {
		r.MustRegister(key, MapID{Kind: entity.KindCustomFieldOption})
	}

	r.MustRegister(CascadingSelect, Cascading{})
	r.MustRegister(Version, MapID{Kind: entity.KindVersion})
	r.MustRegister(MultiVersion, MapID{Kind: entity.KindVersion})
	r.MustRegister(UserPicker, MapID{Kind: entity.KindUser})
	r.MustRegister(MultiUserPicker, MapID{Kind: entity.KindUser})
	r.MustRegister(Project, MapID{Kind: entity.KindProject})

	return r
}

// PassThrough keeps values that carry no references.
type PassThrough struct{}

// MappedValue implements Strategy.
func (PassThrough) MappedValue(_ mapping.Provider, _ Context, v backup.CustomFieldValue) (Result, error) {
	return Result{Value: v.Value.Raw(), ParentKey: v.ParentKey}, nil
}

// MapID treats the value as an id of Kind. Unmapped ids drop the value.
type MapID struct {
	Kind entity.Kind
}

// MappedValue implements Strategy.
func (m MapID) MappedValue(p mapping.Provider, _ Context, v backup.CustomFieldValue) (Result, error) {
	newID, ok := p.MappedID(m.Kind, v.Value.Raw())
	if !ok {
		return Result{}, nil
	}

	return Result{Value: newID}, nil
}

// Cascading handles two-level selects: the value is an option id and
// ParentKey, when set, is the id of the parent option. Both must map.
type Cascading struct{}

// MappedValue implements Strategy.
func (Cascading) MappedValue(p mapping.Provider, _ Context, v backup.CustomFieldValue) (Result, error) {
	option, ok := p.MappedID(entity.KindCustomFieldOption, v.Value.Raw())
	if !ok {
		return Result{}, nil
	}

	if v.ParentKey == "" {
		return Result{Value: option}, nil
	}

	parent, ok := p.MappedID(entity.KindCustomFieldOption, v.ParentKey)
	if !ok {
		return Result{}, nil
	}

	return Result{Value: option, ParentKey: parent}, nil
}
