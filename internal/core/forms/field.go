package forms

import "strings"

// FieldType is the UI control used to render a field.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeEmail    FieldType = "email"
	TypePassword FieldType = "password"
	TypeNumber   FieldType = "number"
	TypeSlider   FieldType = "slider"
	TypeSelect   FieldType = "select"
	TypeRadio    FieldType = "radio"
	TypeFile     FieldType = "file"
	TypeHidden   FieldType = "hidden"
)

func (t FieldType) numeric() bool { return t == TypeNumber || t == TypeSlider }

func (t FieldType) choice() bool { return t == TypeSelect || t == TypeRadio }

// Option is one choice of a select or radio field.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Field declares one input of a form. Rule uses validator tag syntax
// ("required,email", "omitempty,max=100") and Messages maps a tag to the
// message reported when that tag fails.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Default     any               `json:"defaultValue"`
	Rule        string            `json:"rule,omitempty"`
	Messages    map[string]string `json:"-"`
	Min         *float64          `json:"min,omitempty"`
	Max         *float64          `json:"max,omitempty"`
	Step        *float64          `json:"step,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Accept      string            `json:"accept,omitempty"`
}

// Fields is an ordered field set.
type Fields []Field

// Lookup returns the field named name.
func (fs Fields) Lookup(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// Omit returns a copy without the named fields.
func (fs Fields) Omit(names ...string) Fields {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := make(Fields, 0, len(fs))
	for _, f := range fs {
		if _, ok := skip[f.Name]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// With returns a copy with extra prepended; a field with the same name is replaced.
func (fs Fields) With(extra ...Field) Fields {
	names := make([]string, len(extra))
	for i, f := range extra {
		names[i] = f.Name
	}
	out := make(Fields, 0, len(fs)+len(extra))
	out = append(out, extra...)
	return append(out, fs.Omit(names...)...)
}

// Float is a convenience for the optional numeric bounds.
func Float(v float64) *float64 { return &v }

// Relaxed returns a copy in which no field is required, for partial updates.
func (fs Fields) Relaxed() Fields {
	out := make(Fields, len(fs))
	for i, f := range fs {
		var tags []string
		for _, tag := range splitRule(f.Rule) {
			if tag != "required" {
				tags = append(tags, tag)
			}
		}
		f.Rule = strings.Join(tags, ",")
		out[i] = f
	}
	return out
}
