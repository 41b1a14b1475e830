package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daybook/internal/config"
	httpx "daybook/internal/http"
	"daybook/internal/seed"
	"daybook/internal/store"
)

func main() {
	cfg := config.Load()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		if err := pg.AutoMigrateAndIndexes(); err != nil {
			log.Fatal(err)
		}
		st = pg
	} else {
		st = store.NewMemory()
	}

	ctx := context.Background()
	switch {
	case cfg.SeedFile != "":
		data, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			log.Fatal(err)
		}
		if err := seed.Apply(ctx, st, data); err != nil {
			log.Fatal(err)
		}
		log.Printf("seeded from %s\n", cfg.SeedFile)
	case cfg.DatabaseURL == "":
		// the in-memory store starts empty every run; give it the demo tour
		if err := seed.Apply(ctx, st, seed.Demo()); err != nil {
			log.Fatal(err)
		}
	}

	r := httpx.NewRouter(cfg, st)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
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
