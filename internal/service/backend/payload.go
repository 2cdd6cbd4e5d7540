package backend

import (
	"HayatAdmin/entity"
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Field struct {
	Name  string
	Value interface{}
}

type attachment struct {
	name   string
	upload entity.Upload
}

// Payload is the body of a create or update call. Field order is kept so that
// multipart bodies are written in a stable order.
type Payload struct {
	fields []Field
	files  []attachment
}

func NewPayload() *Payload {
	return &Payload{}
}

// Set adds a field or replaces the value of an existing one.
func (p *Payload) Set(name string, value interface{}) *Payload {
	for i := range p.fields {
		if p.fields[i].Name == name {
			p.fields[i].Value = value
			return p
		}
	}
	p.fields = append(p.fields, Field{Name: name, Value: value})
	return p
}

func (p *Payload) Attach(name string, upload entity.Upload) *Payload {
	for i := range p.files {
		if p.files[i].name == name {
			p.files[i].upload = upload
			return p
		}
	}
	p.files = append(p.files, attachment{name: name, upload: upload})
	return p
}

func (p *Payload) Value(name string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	for _, f := range p.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (p *Payload) Fields() []Field {
	if p == nil {
		return nil
	}
	return p.fields
}

func (p *Payload) encodeJSON() ([]byte, error) {
	if p != nil && len(p.files) > 0 {
		return nil, ErrFilesNotSupported
	}
	body := make(map[string]interface{})
	for _, f := range p.Fields() {
		body[f.Name] = f.Value
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

func (p *Payload) encodeMultipart() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range p.Fields() {
		if err := w.WriteField(f.Name, formValue(f.Value)); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
	}

	if p != nil {
		for _, a := range p.files {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
				quoteEscaper.Replace(a.name), quoteEscaper.Replace(a.upload.Filename)))
			h.Set("Content-Type", mimetype.Detect(a.upload.Content).String())

			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create part %s: %w", a.name, err)
			}
			if _, err = part.Write(a.upload.Content); err != nil {
				return nil, "", fmt.Errorf("failed to write part %s: %w", a.name, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func formValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
