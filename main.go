package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/AlainJulien/portfolio/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg Config) error {
	gin.SetMode(cfg.Mode)

	db := openStore(cfg.DatabasePath)
	if db != nil {
		defer db.Close()
	}

	a := newApp(cfg, db)
	r, err := a.router()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return a.sessions.run(ctx)
	})
	if db != nil {
		g.Go(func() error {
			return pruneLoop(ctx, db, cfg.PreferenceRetention)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore falls back to per-session memory when the database is unusable.
func openStore(path string) *store.SQLite {
	db, err := store.Open(path)
	if err != nil {
		log.Printf("Preferences will not survive restarts: %v", err)
		return nil
	}
	return db
}

func pruneLoop(ctx context.Context, db *store.SQLite, retention time.Duration) error {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := db.Prune(ctx, retention); err != nil && ctx.Err() == nil {
			log.Printf("Error pruning preferences: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
