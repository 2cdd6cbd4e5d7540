package audit

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/api/response"
	"HayatAdmin/internal/lib/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const defaultLimit = 50

type Core interface {
	AuditLog(ctx context.Context, resource string, limit int64) ([]entity.AuditEntry, error)
}

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.audit")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		resource := r.URL.Query().Get("resource")
		limit := int64(defaultLimit)
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil || n <= 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid limit"))
				return
			}
			limit = n
		}

		entries, err := handler.AuditLog(r.Context(), resource, limit)
		if err != nil {
			logger.Error("failed to list audit", sl.Err(err))
			switch {
			case errors.Is(err, entity.ErrAuditDisabled):
				render.Status(r, http.StatusServiceUnavailable)
			case errors.Is(err, entity.ErrUnknownResource):
				render.Status(r, http.StatusNotFound)
			default:
				render.Status(r, http.StatusInternalServerError)
			}
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		logger.Debug("audit listed", slog.Int("count", len(entries)))
		render.JSON(w, r, response.Ok(entries))
	}
}
