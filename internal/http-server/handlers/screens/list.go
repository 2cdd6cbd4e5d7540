package screens

import (
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		screens := handler.Screens()

		logger.Debug("screens listed", slog.Int("count", len(screens)))
		render.JSON(w, r, response.Ok(screens))
	}
}
