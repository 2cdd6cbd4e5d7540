package screens

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/screen"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type SubmitRequest struct {
	Values map[string]interface{} `json:"values"`
}

func Submit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")
		resource := chi.URLParam(r, "resource")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("resource", resource),
		)

		values, files, err := readForm(w, r)
		if err != nil {
			logger.Error("failed to read form", sl.Err(err))
			if statusFor(err) == http.StatusRequestEntityTooLarge {
				renderFailure(w, r, err, nil)
				return
			}
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		frame, err := handler.Submit(r.Context(), resource, values, files)
		if err != nil {
			logger.With(sl.Err(err)).Error("submit form")
			renderFailure(w, r, err, &frame)
			return
		}

		logger.Debug("form submitted", slog.Int("count", frame.Count))
		render.JSON(w, r, response.Ok(frame))
	}
}

// readForm accepts either a JSON body or a multipart form with the chosen files.
func readForm(w http.ResponseWriter, r *http.Request) (screen.Values, screen.Files, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readMultipart(r)
	}

	values := make(screen.Values)
	if r.ContentLength == 0 {
		return values, nil, nil
	}

	var req SubmitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, entity.MaxFileSize))
	// numbers keep their literal form, e.g. a mobile number must not become 9.87654321e+09
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, fmt.Errorf("%w: limit is %d MB", entity.ErrBodyTooLarge, entity.MaxFileSize>>20)
		}
		return nil, nil, fmt.Errorf("decode body: %w", err)
	}
	for k, v := range req.Values {
		values[k] = formValue(v)
	}
	return values, nil, nil
}

func formValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func readMultipart(r *http.Request) (screen.Values, screen.Files, error) {
	if err := r.ParseMultipartForm(entity.MaxFileSize); err != nil {
		return nil, nil, fmt.Errorf("parse multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	values := make(screen.Values)
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	files := make(screen.Files)
	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		up, err := readUpload(headers[0])
		if err != nil {
			return nil, nil, err
		}
		if up.Size() > 0 {
			files[name] = up
		}
	}
	return values, files, nil
}

func readUpload(fh *multipart.FileHeader) (entity.Upload, error) {
	if fh.Size > entity.MaxFileSize {
		return entity.Upload{}, entity.FileTooLargeError(fh.Filename, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return entity.Upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return entity.Upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return entity.Upload{Filename: fh.Filename, Content: content}, nil
}
