package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachpay/config"
	"coachpay/internal/database"
	"coachpay/internal/router"
	"coachpay/pkg/monthkey"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedDefaults(db)

	engine, deps := router.Setup(cfg, db)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// The leaderboard is materialized, not recomputed per read: refresh the
	// current month on an interval so dashboards stay warm.
	stopRefresh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Leaderboard.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := deps.Ranking.Recompute(monthkey.Current()); err != nil {
					log.Printf("[ranking] scheduled recompute: %v", err)
				}
			case <-stopRefresh:
				return
			}
		}
	}()

	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	close(stopRefresh)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
