package genai

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Shape describes the JSON object the model is expected to produce: a
// mapping from field name to a field description that is rendered into the
// formatting instructions appended to every prompt.
type Shape map[string]Field

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldEnum
	fieldNested
)

// Field is one slot of an expected output shape. It is either free-form
// text (with a literal hint shown to the model, e.g. "string" or "array"),
// an enumerated classification over a fixed set of choices, or a nested
// shape.
type Field struct {
	kind    fieldKind
	hint    string
	choices []string
	nested  Shape
}

// Text declares a free-form field. The hint is passed to the model verbatim.
func Text(hint string) Field {
	return Field{kind: fieldText, hint: hint}
}

// Enum declares a classification field: the generated value must be one of
// the given choices.
func Enum(choices ...string) Field {
	return Field{kind: fieldEnum, choices: choices}
}

// Nested declares a field whose value is itself a shaped object.
func Nested(shape Shape) Field {
	return Field{kind: fieldNested, nested: shape}
}

// Choices returns the allowed values of an enum field, or nil.
func (f Field) Choices() []string {
	if f.kind != fieldEnum {
		return nil
	}
	return f.choices
}

// MarshalJSON renders the field the way the model sees it in the prompt:
// text fields as their hint, enum fields as the choice list, nested fields
// as the nested shape.
func (f Field) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case fieldEnum:
		return marshalNoEscape(f.choices)
	case fieldNested:
		return marshalNoEscape(f.nested)
	default:
		return marshalNoEscape(f.hint)
	}
}

// render returns the shape as the JSON text embedded in the formatting
// instructions. Angle-bracket placeholders must reach the model verbatim,
// so HTML escaping is turned off.
func (s Shape) render() string {
	rendered, err := marshalNoEscape(s)
	if err != nil {
		return "{}"
	}
	return string(rendered)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// placeholderRe matches angle-bracket placeholders like <topic>. A key or
// hint containing one marks a slot whose name or content the model must
// invent; such keys are exempt from presence validation.
var placeholderRe = regexp.MustCompile(`<.*?>`)

func (s Shape) hasEnum() bool {
	for _, f := range s {
		switch f.kind {
		case fieldEnum:
			return true
		case fieldNested:
			if f.nested.hasEnum() {
				return true
			}
		}
	}
	return false
}

func (s Shape) hasPlaceholders() bool {
	for key, f := range s {
		if placeholderRe.MatchString(key) || placeholderRe.MatchString(f.hint) {
			return true
		}
		if f.kind == fieldNested && f.nested.hasPlaceholders() {
			return true
		}
	}
	return false
}

func isPlaceholderKey(key string) bool {
	return placeholderRe.MatchString(key)
}
