package screens

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func statusFor(err error) int {
	var validation *screen.ValidationError
	var backendErr *backend.StatusError
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrFileTooLarge), errors.Is(err, entity.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrUnknownResource), errors.Is(err, screen.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, screen.ErrInvalidState), errors.Is(err, screen.ErrNoDetail), errors.Is(err, entity.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, screen.ErrRefresh), errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// renderFailure answers with the error and, when the screen is known, its frame.
func renderFailure(w http.ResponseWriter, r *http.Request, err error, frame *screen.Frame) {
	render.Status(r, statusFor(err))

	var validation *screen.ValidationError
	if errors.As(err, &validation) {
		render.JSON(w, r, response.ErrorWith(err.Error(), validation.Fields))
		return
	}
	if frame != nil && frame.Resource != "" {
		render.JSON(w, r, response.ErrorWith(err.Error(), frame))
		return
	}
	render.JSON(w, r, response.Error(err.Error()))
}

var errBadID = errors.New("invalid record id")

func recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
