package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hondanaapp/hondana/pkg/config"
	"github.com/hondanaapp/hondana/pkg/database"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/hondanaapp/hondana/pkg/migrations"
	"github.com/hondanaapp/hondana/pkg/server"
	"github.com/hondanaapp/hondana/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting hondana", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	if err := initDataDir(cfg.DataDir); err != nil {
		log.Err(err).Fatal("data directory error")
	}
	log.Info("data directory initialized", logger.Data{"path": cfg.DataDir})

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

	broker := events.NewBroker()

	srv, err := server.New(cfg, db, broker)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", srv.Addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		if err := writePortFile(actualPort); err != nil {
			log.Err(err).Error("failed to write port file")
		}

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

	broker.Close()
	log.Info("event broker closed")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}

// initDataDir creates the data directories and verifies write permissions.
func initDataDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "avatars"), 0755); err != nil {
		return errors.Wrapf(err, "failed to create data directory: %s", dir)
	}

	testFile := filepath.Join(dir, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return errors.Wrapf(err, "data directory is not writable: %s", dir)
	}
	f.Close()

	if err := os.Remove(testFile); err != nil {
		return errors.Wrapf(err, "failed to clean up write test file: %s", testFile)
	}

	return nil
}

// writePortFile writes the server's actual port to tmp/api.port for the
// frontend dev server. Skips silently if tmp/ doesn't exist.
func writePortFile(port int) error {
	if _, err := os.Stat("tmp"); os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile("tmp/api.port", []byte(strconv.Itoa(port)), 0600)
}
