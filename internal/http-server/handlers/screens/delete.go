package screens

import (
	"HayatAdmin/internal/lib/api/cont"
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/screen"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type DeleteResponse struct {
	Deleted bool         `json:"deleted"`
	Frame   screen.Frame `json:"frame"`
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.screen")
		resource := chi.URLParam(r, "resource")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("resource", resource),
		)

		id, err := recordID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid record id"))
			return
		}
		logger = logger.With(slog.Int64("id", id))

		ctx := cont.PutConfirmed(r.Context(), confirmed(r))

		deleted, frame, err := handler.Delete(ctx, resource, id)
		if err != nil {
			logger.Error("delete record", sl.Err(err))
			renderFailure(w, r, err, &frame)
			return
		}

		res := response.Ok(DeleteResponse{Deleted: deleted, Frame: frame})
		if !deleted {
			logger.Debug("delete not confirmed")
			res.Message = "Delete cancelled: confirmation required"
		}
		render.JSON(w, r, res)
	}
}

func confirmed(r *http.Request) bool {
	answer := r.URL.Query().Get("confirm")
	if answer == "" {
		answer = r.Header.Get("X-Confirm")
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}
