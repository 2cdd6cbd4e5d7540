package screens

import (
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/screen"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func OpenCreate(log *slog.Logger, handler Core) http.HandlerFunc {
	return navigate(log, "open create", func(r *http.Request, resource string) (screen.Frame, error) {
		return handler.OpenCreate(resource)
	})
}

func OpenEdit(log *slog.Logger, handler Core) http.HandlerFunc {
	return navigate(log, "open edit", func(r *http.Request, resource string) (screen.Frame, error) {
		id, err := recordID(r)
		if err != nil {
			return screen.Frame{}, errBadID
		}
		return handler.OpenEdit(resource, id)
	})
}

func OpenDetail(log *slog.Logger, handler Core) http.HandlerFunc {
	return navigate(log, "open detail", func(r *http.Request, resource string) (screen.Frame, error) {
		id, err := recordID(r)
		if err != nil {
			return screen.Frame{}, errBadID
		}
		return handler.OpenDetail(resource, id)
	})
}

func Cancel(log *slog.Logger, handler Core) http.HandlerFunc {
	return navigate(log, "cancel", func(r *http.Request, resource string) (screen.Frame, error) {
		return handler.Cancel(resource)
	})
}

func navigate(log *slog.Logger, op string, fn func(r *http.Request, resource string) (screen.Frame, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")
		resource := chi.URLParam(r, "resource")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("resource", resource),
			slog.String("op", op),
		)

		frame, err := fn(r, resource)
		if err == errBadID {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid record id"))
			return
		}
		if err != nil {
			logger.Debug("navigation failed", sl.Err(err))
			renderFailure(w, r, err, &frame)
			return
		}

		logger.Debug("view changed", slog.String("view", frame.View.String()))
		render.JSON(w, r, response.Ok(frame))
	}
}
