package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"providerhub.org/internal/config"
	"providerhub.org/internal/httpapi"
	"providerhub.org/internal/identity"
	"providerhub.org/internal/migrations"
	"providerhub.org/internal/obs"
	"providerhub.org/internal/provider"
)

var version = "1.0.0"

func main() {
	obs.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := provider.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := migrations.Up(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	tokens, err := identity.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}
	ident, err := identity.NewService(identity.NewPostgresStore(db), tokens)
	if err != nil {
		log.Fatalf("identity service: %v", err)
	}
	providers, err := provider.NewService(provider.NewPostgresRepository(db))
	if err != nil {
		log.Fatalf("provider service: %v", err)
	}

	if cfg.Bootstrap.AdminEmail != "" {
		if err := ident.EnsureAdminClaim(ctx, cfg.Bootstrap.AdminEmail); err != nil {
			log.Fatalf("bootstrap admin claim: %v", err)
		}
	}

	api := httpapi.New(
		httpapi.ReadyProbe{DB: db},
		version,
		providers,
		ident,
		httpapi.WithDocs(!cfg.Production()),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting providerhub-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Println("Stopped")
}
