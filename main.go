package main

import (
	"HayatAdmin/impl/core"
	"HayatAdmin/internal/config"
	"HayatAdmin/internal/database"
	"HayatAdmin/internal/http-server/api"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/lib/logger"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/resources"
	"HayatAdmin/internal/service/backend"
	"HayatAdmin/internal/ws"
	"context"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting hayat admin", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	client := backend.NewClient(conf.Backend.BaseURL, conf.Backend.Timeout, lg)
	lg.With(
		slog.String("url", conf.Backend.BaseURL),
		slog.String("media", conf.MediaURL()),
	).Info("backend client initialized")
	for name, origin := range conf.ResourceOrigins() {
		lg.With(
			slog.String("resource", name),
			slog.String("origin", origin),
		).Debug("resource origin override")
	}

	registry := resources.NewRegistry(client, resources.Options{
		Resolver:            imageurl.New(conf.MediaURL()),
		CounsellorSchool:    conf.Defaults.CounsellorSchool,
		TestimonialCategory: conf.Defaults.TestimonialCategory,
		Origins:             conf.ResourceOrigins(),
	}, core.ConfirmFromContext, lg)

	handler := core.New(registry, lg)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			sl.Secret("password", conf.Mongo.Password),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	ctx := context.Background()

	hub := ws.NewHub(lg.With(sl.Module("ws")))
	hub.SetHandler(handler)
	go hub.Run(ctx)
	handler.SetBroadcaster(hub)

	handler.Init(ctx)

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
