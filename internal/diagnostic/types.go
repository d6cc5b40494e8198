package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"projimport/internal/common"
	"projimport/internal/entity"
)

// Sink receives diagnostics. Implementations must be safe for concurrent use:
// the driver may transform records of one kind in parallel.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard is a Sink that drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Tee returns a Sink reporting to every non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	live := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}

	return SinkFunc(func(d Diagnostic) {
		for _, s := range live {
			s.Report(d)
		}
	})
}

// Diagnostic represents a single reported event.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Kind is the entity kind of the record being transformed.
	Kind entity.Kind
	// OwnerKey identifies the record being transformed (issue key or old id).
	OwnerKey string
	// Field names the reference that failed to resolve (if any).
	Field string
	// Message is the human-readable description.
	Message string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Kind != entity.KindUnknown {
		prefix = append(prefix, "["+d.Kind.String()+"]")
	}

	if d.OwnerKey != "" {
		prefix = append(prefix, d.OwnerKey)
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics collects diagnostics by severity. The zero value is ready to
// use and safe for concurrent use.
type Diagnostics struct {
	mu       sync.Mutex
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Report implements Sink.
func (d *Diagnostics) Report(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, kind entity.Kind, ownerKey, message string) {
	d.Report(Diagnostic{Severity: SeverityError, Code: code, Kind: kind, OwnerKey: ownerKey, Message: message})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, kind entity.Kind, ownerKey, message string) {
	d.Report(Diagnostic{Severity: SeverityWarning, Code: code, Kind: kind, OwnerKey: ownerKey, Message: message})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, kind entity.Kind, ownerKey, message string) {
	d.Report(Diagnostic{Severity: SeverityInfo, Code: code, Kind: kind, OwnerKey: ownerKey, Message: message})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Len returns the number of collected diagnostics of every severity.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns a snapshot of every collected diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	return all
}

// Merge appends every diagnostic of other to d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil || other == d {
		return
	}

	for _, diag := range other.All() {
		d.Report(diag)
	}
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Errors) == 0 {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
