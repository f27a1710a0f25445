package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stride/internal/config"
	"stride/internal/db"
	httpx "stride/internal/http"
	"stride/internal/logger"
)

func main() {
	cfg, _ := config.Load()

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		zl.Fatalw("database connect failed", "path", cfg.DatabasePath, "err", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		zl.Fatalw("migration failed", "err", err)
	}

	r := httpx.NewRouter(cfg, gdb, zl)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Infow("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatalw("server stopped", "err", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
