package backend

import (
	"HayatAdmin/internal/lib/sl"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingMultipart
)

func (e Encoding) String() string {
	if e == EncodingMultipart {
		return "multipart"
	}
	return "json"
}

// Descriptor binds a resource name to its collection path and body encoding.
// The encoding never depends on what a payload happens to contain.
type Descriptor struct {
	Name     string
	BasePath string
	Encoding Encoding
}

type Resource[T any] struct {
	client *Client
	desc   Descriptor
	log    *slog.Logger
}

func NewResource[T any](client *Client, desc Descriptor) *Resource[T] {
	base := desc.BasePath
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	desc.BasePath = base

	return &Resource[T]{
		client: client,
		desc:   desc,
		log:    client.log.With(slog.String("resource", desc.Name)),
	}
}

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s%d/", r.desc.BasePath, id)
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	body, err := r.client.do(ctx, http.MethodGet, r.desc.BasePath, nil, "")
	if err != nil {
		return nil, err
	}

	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s list: %w", r.desc.Name, err)
	}

	r.log.With(
		slog.Int("size", len(items)),
	).Debug("list")

	return items, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload *Payload) (T, error) {
	return r.write(ctx, http.MethodPost, r.desc.BasePath, payload)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, payload *Payload) (T, error) {
	return r.write(ctx, http.MethodPatch, r.itemPath(id), payload)
}

// Delete treats a record that is already gone as deleted.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, "")
	if IsNotFound(err) {
		r.log.With(slog.Int64("id", id)).Debug("delete: record already gone")
		return nil
	}
	return err
}

func (r *Resource[T]) write(ctx context.Context, method, path string, payload *Payload) (T, error) {
	var zero T

	body, contentType, err := r.encode(payload)
	if err != nil {
		return zero, err
	}

	resp, err := r.client.do(ctx, method, path, body, contentType)
	if err != nil {
		return zero, err
	}

	// the backend accepted the write, so an echo that does not fit T is not a failure
	record, err := decodeOne[T](resp)
	if err != nil {
		r.log.With(
			slog.String("method", method),
			sl.Err(err),
		).Warn("unreadable response record")

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// fields that did decode, the id among them, are kept
			return record, nil
		}
		return zero, nil
	}
	return record, nil
}

func (r *Resource[T]) encode(payload *Payload) (io.Reader, string, error) {
	switch r.desc.Encoding {
	case EncodingMultipart:
		buf, contentType, err := payload.encodeMultipart()
		if err != nil {
			return nil, "", err
		}
		return buf, contentType, nil
	default:
		data, err := payload.encodeJSON()
		if err != nil {
			r.log.With(sl.Err(err)).Error("encode json payload")
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
