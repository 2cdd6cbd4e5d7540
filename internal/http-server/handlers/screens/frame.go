package screens

import (
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func GetFrame(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")
		resource := chi.URLParam(r, "resource")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("resource", resource),
		)

		frame, err := handler.Frame(resource)
		if err != nil {
			logger.Debug("get frame", sl.Err(err))
			renderFailure(w, r, err, nil)
			return
		}

		render.JSON(w, r, response.Ok(frame))
	}
}

func Mount(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")
		resource := chi.URLParam(r, "resource")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("resource", resource),
		)

		frame, err := handler.Mount(r.Context(), resource)
		if err != nil {
			logger.Error("mount screen", sl.Err(err))
			renderFailure(w, r, err, &frame)
			return
		}

		logger.Debug("screen mounted", slog.Int("count", frame.Count))
		render.JSON(w, r, response.Ok(frame))
	}
}
