package entity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPayload is returned when a value cannot be stored in a payload slot.
var ErrInvalidPayload = errors.New("invalid payload value")

// PayloadKind names the typed slot a custom field value occupies.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadString
	PayloadNumber
	PayloadDate
	PayloadText
)

// String returns the slot name used in fixtures and diagnostics.
func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "none"
	case PayloadString:
		return "string"
	case PayloadNumber:
		return "number"
	case PayloadDate:
		return "date"
	case PayloadText:
		return "text"
	default:
		return "PayloadKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Payload is a custom field value stored in exactly one of four typed slots.
// The zero value is the empty payload.
type Payload struct {
	kind PayloadKind
	str  string
	num  float64
	date time.Time
}

// StringValue returns a payload in the string slot.
func StringValue(s string) Payload { return Payload{kind: PayloadString, str: s} }

// NumberValue returns a payload in the number slot.
func NumberValue(n float64) Payload { return Payload{kind: PayloadNumber, num: n} }

// DateValue returns a payload in the date slot.
func DateValue(t time.Time) Payload { return Payload{kind: PayloadDate, date: t} }

// TextValue returns a payload in the (unbounded) text slot.
func TextValue(s string) Payload { return Payload{kind: PayloadText, str: s} }

// Kind returns the populated slot.
func (p Payload) Kind() PayloadKind { return p.kind }

// IsEmpty reports whether no slot is populated.
func (p Payload) IsEmpty() bool { return p.kind == PayloadNone }

// Str returns the string slot, or "" when another slot is populated.
func (p Payload) Str() string {
	if p.kind != PayloadString {
		return ""
	}

	return p.str
}

// Text returns the text slot, or "" when another slot is populated.
func (p Payload) Text() string {
	if p.kind != PayloadText {
		return ""
	}

	return p.str
}

// Number returns the number slot and whether it is populated.
func (p Payload) Number() (float64, bool) { return p.num, p.kind == PayloadNumber }

// Date returns the date slot and whether it is populated.
func (p Payload) Date() (time.Time, bool) { return p.date, p.kind == PayloadDate }

// Raw renders the populated slot as text: numbers without trailing zeros,
// dates as RFC 3339 with nanoseconds. The empty payload renders as "".
func (p Payload) Raw() string {
	switch p.kind {
	case PayloadString, PayloadText:
		return p.str
	case PayloadNumber:
		return strconv.FormatFloat(p.num, 'f', -1, 64)
	case PayloadDate:
		return p.date.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Replace returns a payload in the same slot as p holding raw, parsed the way
// Raw renders it. An empty raw value yields the empty payload.
func (p Payload) Replace(raw string) (Payload, error) {
	if raw == "" {
		return Payload{}, nil
	}

	switch p.kind {
	case PayloadString:
		return StringValue(raw), nil
	case PayloadText:
		return TextValue(raw), nil
	case PayloadNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %q is not a number: %w", ErrInvalidPayload, raw, err)
		}

		return NumberValue(n), nil
	case PayloadDate:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %q is not a date: %w", ErrInvalidPayload, raw, err)
		}

		return DateValue(t), nil
	default:
		return Payload{}, fmt.Errorf("%w: empty payload has no slot for %q", ErrInvalidPayload, raw)
	}
}

// Equal reports whether both payloads occupy the same slot with equal values.
func (p Payload) Equal(o Payload) bool {
	if p.kind != o.kind {
		return false
	}

	switch p.kind {
	case PayloadNumber:
		return p.num == o.num
	case PayloadDate:
		return p.date.Equal(o.date)
	default:
		return p.str == o.str
	}
}

// payloadYAML is the fixture form: exactly one of the keys is set.
type payloadYAML struct {
	String *string    `yaml:"string,omitempty"`
	Number *float64   `yaml:"number,omitempty"`
	Date   *time.Time `yaml:"date,omitempty"`
	Text   *string    `yaml:"text,omitempty"`
}

// UnmarshalYAML accepts a mapping with one of string, number, date or text.
func (p *Payload) UnmarshalYAML(node *yaml.Node) error {
	var raw payloadYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	set := 0
	*p = Payload{}

	if raw.String != nil {
		*p = StringValue(*raw.String)
		set++
	}

	if raw.Number != nil {
		*p = NumberValue(*raw.Number)
		set++
	}

	if raw.Date != nil {
		*p = DateValue(*raw.Date)
		set++
	}

	if raw.Text != nil {
		*p = TextValue(*raw.Text)
		set++
	}

	if set > 1 {
		return fmt.Errorf("%w: line %d: more than one slot populated", ErrInvalidPayload, node.Line)
	}

	return nil
}

// MarshalYAML writes the populated slot only.
func (p Payload) MarshalYAML() (any, error) {
	var out payloadYAML

	switch p.kind {
	case PayloadString:
		out.String = &p.str
	case PayloadText:
		out.Text = &p.str
	case PayloadNumber:
		out.Number = &p.num
	case PayloadDate:
		out.Date = &p.date
	}

	return out, nil
}
