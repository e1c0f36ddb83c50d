// Package form describes entity forms declaratively and runs the single modal that edits them.
package form

import (
	"strings"

	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindTextArea FieldKind = "textarea"
)

// TextAreaMaxLength caps free-text fields such as descriptions and request items.
const TextAreaMaxLength = 2000

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Kind      FieldKind `json:"kind"`
	Options   []Option  `json:"options,omitempty"`
	Value     string    `json:"value"`
	Required  bool      `json:"required"`
	MaxLength int       `json:"maxLength,omitempty"`
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Descriptor is a whole form: what it edits and the ordered fields it shows.
type Descriptor struct {
	Title    string        `json:"title"`
	Kind     document.Kind `json:"kind"`
	Mode     Mode          `json:"mode"`
	TargetID string        `json:"targetId,omitempty"`
	Fields   []Field       `json:"fields"`
}

// Field returns the named field.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Values maps field names to trimmed submitted values.
type Values map[string]string

// Collect reads every declared field present in input. Undeclared keys are ignored and declared
// fields missing from input are skipped.
func Collect(d Descriptor, input map[string]string) Values {
	values := make(Values, len(d.Fields))
	for _, f := range d.Fields {
		raw, ok := input[f.Name]
		if !ok {
			continue
		}
		values[f.Name] = strings.TrimSpace(raw)
	}
	return values
}

func (v Values) Get(name string) string {
	return v[name]
}

// Ref turns an empty value into a null reference.
func (v Values) Ref(name string) *string {
	return document.Ref(v[name])
}

func optionValues(options []Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Value)
	}
	return out
}

// referenceOptions builds select options from records, led by a blank "none" option.
func referenceOptions[T any](items []T, value func(T) string, label func(T) string) []Option {
	options := make([]Option, 0, len(items)+1)
	options = append(options, Option{Value: "", Label: "-"})
	for _, item := range items {
		options = append(options, Option{Value: value(item), Label: label(item)})
	}
	return options
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// withCurrent appends value as an extra option when a stored status predates the option list.
func withCurrent(options []Option, value string) []Option {
	if value == "" || hasOption(options, value) {
		return options
	}
	out := make([]Option, 0, len(options)+1)
	out = append(out, options...)
	return append(out, Option{Value: value, Label: value})
}

// refValue drops a reference whose target no longer exists.
func refValue(options []Option, id *string) string {
	value := document.Deref(id)
	if !hasOption(options, value) {
		return ""
	}
	return value
}
