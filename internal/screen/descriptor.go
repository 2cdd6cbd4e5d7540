package screen

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/service/backend"
	"encoding/json"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindPassword FieldKind = "password"
	KindFile     FieldKind = "file"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Options  []Option  `json:"options,omitempty"`
}

// Values are raw form values keyed by field name.
type Values map[string]string

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Files holds the uploads chosen in a form. A field the user left alone is absent.
type Files map[string]entity.Upload

// Row is one record prepared for display.
type Row map[string]interface{}

// Descriptor configures a Controller for one resource.
type Descriptor[T any] struct {
	Name     string
	Title    string
	Fields   []Field
	Defaults Values
	Detail   bool

	ID      func(T) int64
	Prefill func(T) Values
	// Payload builds the request body. editing is true for updates.
	Payload func(values Values, files Files, editing bool) *backend.Payload
	Row     func(T) Row
}

func (d Descriptor[T]) row(record T) Row {
	if d.Row != nil {
		return d.Row(record)
	}
	row := Row{}
	data, err := json.Marshal(record)
	if err != nil {
		return row
	}
	_ = json.Unmarshal(data, &row)
	return row
}

func (d Descriptor[T]) defaults() Values {
	return d.Defaults.Clone()
}

// detailFields drops inputs that make no sense on a read-only view.
func (d Descriptor[T]) detailFields() []Field {
	fields := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Kind == KindFile || f.Kind == KindPassword {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}
