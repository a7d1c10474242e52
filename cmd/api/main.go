package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/bookverse/bookverse/pkg/config"
	"github.com/bookverse/bookverse/pkg/database"
	"github.com/bookverse/bookverse/pkg/kvstore"
	"github.com/bookverse/bookverse/pkg/library"
	"github.com/bookverse/bookverse/pkg/migrations"
	"github.com/bookverse/bookverse/pkg/search"
	"github.com/bookverse/bookverse/pkg/server"
	"github.com/bookverse/bookverse/pkg/settings"
	"github.com/bookverse/bookverse/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting bookverse", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	kv, err := kvstore.Open(cfg, db)
	if err != nil {
		log.Err(err).Fatal("storage error")
	}
	log.Info("storage opened", logger.Data{"driver": cfg.StorageDriver})

	gate := settings.NewGate(kv, settings.Defaults{
		APIKey:            cfg.TMDBAPIKey,
		CapabilityEnabled: cfg.TMDBEnabled,
	})
	if err := gate.Load(ctx); err != nil {
		log.Err(err).Fatal("settings error")
	}

	store := library.NewStore(kv)
	items, err := store.Load(ctx)
	if err != nil {
		// The store starts empty; saving over unreadable data is the user's
		// call, so keep serving.
		log.Err(err).Error("library could not be loaded")
	}
	log.Info("library loaded", logger.Data{"items": len(items)})

	searchers, describer := search.NewProviders(cfg)
	searchService := search.NewService(cfg, searchers, describer)

	srv, err := server.New(cfg, store, gate, searchService)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		log.Info("server started", logger.Data{"addr": listener.Addr().String()})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	if err := kv.Close(); err != nil {
		log.Err(err).Error("storage close error")
	}

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
