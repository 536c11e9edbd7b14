package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// Schema is the structural validator derived from a field set. It has no
// knowledge of persisted state and never performs I/O.
type Schema struct {
	v      *validator.Validate
	fields []compiledField
}

type compiledField struct {
	Field
	required bool
	rule     string // validator tags applied to non-empty values
}

// NewSchema compiles the field rules. Select and radio fields gain a oneof
// rule from their options; numeric fields gain gte/lte from Min/Max. An
// unknown validator tag is reported here rather than at request time.
func NewSchema(fields Fields) (*Schema, error) {
	s := &Schema{v: validator.New()}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.New("schema: field without a name")
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		cf := compile(f)
		if err := s.dryRun(cf); err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", f.Name, err)
		}
		s.fields = append(s.fields, cf)
	}
	return s, nil
}

// MustSchema is NewSchema for package-level form definitions.
func MustSchema(fields Fields) *Schema {
	s, err := NewSchema(fields)
	if err != nil {
		panic(err)
	}
	return s
}

func compile(f Field) compiledField {
	cf := compiledField{Field: f}
	var tags []string
	for _, tag := range splitRule(f.Rule) {
		switch tag {
		case "required":
			cf.required = true
		case "omitempty":
		default:
			tags = append(tags, tag)
		}
	}
	if f.Type.choice() && len(f.Options) > 0 && !hasTag(tags, "oneof") {
		values := make([]string, len(f.Options))
		for i, o := range f.Options {
			values[i] = o.Value
		}
		tags = append(tags, "oneof="+strings.Join(values, " "))
	}
	if f.Type.numeric() {
		if f.Min != nil && !hasTag(tags, "gte") {
			tags = append(tags, "gte="+strconv.FormatFloat(*f.Min, 'f', -1, 64))
		}
		if f.Max != nil && !hasTag(tags, "lte") {
			tags = append(tags, "lte="+strconv.FormatFloat(*f.Max, 'f', -1, 64))
		}
	}
	cf.rule = strings.Join(tags, ",")
	return cf
}

// dryRun runs the rule once so a malformed tag fails at startup.
func (s *Schema) dryRun(cf compiledField) (err error) {
	if cf.rule == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid rule %q: %v", cf.rule, r)
		}
	}()
	var sample any = ""
	if cf.Type.numeric() {
		sample = float64(0)
	}
	_ = s.v.Var(sample, cf.rule)
	return nil
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() Fields {
	out := make(Fields, len(s.fields))
	for i, cf := range s.fields {
		out[i] = cf.Field
	}
	return out
}

// Validate checks raw against every field and returns the normalised values.
// On failure the map holds the first violated rule's message per field.
// Rules other than presence apply only to non-empty values; keys that are
// not declared fields are dropped.
func (s *Schema) Validate(raw domain.Values) (domain.Values, domain.FieldErrors) {
	out := make(domain.Values, len(s.fields))
	errs := make(domain.FieldErrors)

	for _, f := range s.fields {
		value, present, msg := coerce(f, raw[f.Name])
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		if !present {
			if f.required {
				errs[f.Name] = f.message("required", "")
			} else if raw.Has(f.Name) && !f.Type.numeric() {
				out[f.Name] = ""
			}
			continue
		}
		if f.rule != "" {
			if err := s.v.Var(value, f.rule); err != nil {
				errs[f.Name] = f.failure(err)
				continue
			}
		}
		out[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// coerce converts a transport value into the field's Go type. present is
// false for missing or empty input.
func coerce(f compiledField, raw any) (value any, present bool, msg string) {
	switch v := raw.(type) {
	case nil:
		return nil, false, ""
	case []string:
		if len(v) == 0 {
			return nil, false, ""
		}
		raw = v[0]
	}

	if f.Type.numeric() {
		switch v := raw.(type) {
		case float64:
			return v, true, ""
		case int:
			return float64(v), true, ""
		case string:
			t := strings.TrimSpace(v)
			if t == "" {
				return nil, false, ""
			}
			n, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, false, f.message("number", "")
			}
			return n, true, ""
		default:
			return nil, false, f.message("number", "")
		}
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, false, ""
		}
		return v, true, ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, ""
	case bool:
		return strconv.FormatBool(v), true, ""
	default:
		return nil, false, f.message("string", "")
	}
}

func (f compiledField) failure(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return f.message(ve[0].Tag(), ve[0].Param())
	}
	return f.message("", "")
}

// message returns the configured message for tag or a default one.
func (f compiledField) message(tag, param string) string {
	if m, ok := f.Messages[tag]; ok {
		return m
	}
	label := f.Label
	if label == "" {
		label = f.Name
	}
	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "number":
		return label + " must be a number"
	case "string":
		return label + " must be text"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, param)
	case "gte", "gt":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "lte", "lt":
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	default:
		return label + " is invalid"
	}
}

func splitRule(rule string) []string {
	if strings.TrimSpace(rule) == "" {
		return nil
	}
	parts := strings.Split(rule, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name || strings.HasPrefix(t, name+"=") {
			return true
		}
	}
	return false
}
