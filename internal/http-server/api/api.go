package api

import (
	"HayatAdmin/internal/config"
	"HayatAdmin/internal/http-server/handlers/audit"
	"HayatAdmin/internal/http-server/handlers/errors"
	"HayatAdmin/internal/http-server/handlers/screens"
	"HayatAdmin/internal/http-server/middleware/logger"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/ws"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	screens.Core
	audit.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, hub),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	if hub != nil {
		router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, log, w, r)
		})
	}

	router.Group(func(r chi.Router) {
		if conf.Listen.Timeout > 0 {
			r.Use(middleware.Timeout(conf.Listen.Timeout))
		}
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/screens", func(r chi.Router) {
				r.Get("/", screens.List(log, handler))
				r.Route("/{resource}", func(r chi.Router) {
					r.Get("/", screens.GetFrame(log, handler))
					r.Post("/mount", screens.Mount(log, handler))
					r.Post("/create", screens.OpenCreate(log, handler))
					r.Post("/edit/{id}", screens.OpenEdit(log, handler))
					r.Post("/view/{id}", screens.OpenDetail(log, handler))
					r.Post("/submit", screens.Submit(log, handler))
					r.Post("/cancel", screens.Cancel(log, handler))
					r.Delete("/{id}", screens.Delete(log, handler))
				})
			})
			v1.Get("/audit", audit.List(log, handler))
		})
	})

	return router
}
