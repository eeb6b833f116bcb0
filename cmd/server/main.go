package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"ewastewatch/internal/adapters/cloudinary"
	httpadapter "ewastewatch/internal/adapters/http"
	"ewastewatch/internal/adapters/memory"
	pg "ewastewatch/internal/adapters/postgres"
	"ewastewatch/internal/adapters/verifier"
	"ewastewatch/internal/adapters/ws"
	"ewastewatch/internal/config"
	"ewastewatch/internal/ports"
	dashsvc "ewastewatch/internal/services/dashboard"
	hotspotsvc "ewastewatch/internal/services/hotspots"
	reportsvc "ewastewatch/internal/services/reports"
	subsvc "ewastewatch/internal/services/submissions"
	"ewastewatch/internal/workers/refresher"
	"ewastewatch/internal/workers/verifyrunner"
)

// staleJobGrace is how long past VERIFY_TIMEOUT a running job may go
// unfinished before workers assume its owner died and requeue it.
const staleJobGrace = 30 * time.Second

// repositories is the storage the services run on: Postgres when
// DATABASE_URL is set, in-process maps otherwise.
type repositories interface {
	ports.ReportRepository
	ports.DraftRepository
	ports.HotspotRepository
	ports.ImageStore
	ports.JobRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos repositories
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory storage")
		repos = memory.New()
	} else {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("db migrate error: %v", err)
		}
		repos = db
	}

	var images ports.ImageStore = repos
	if cfg.CloudinaryURL != "" {
		store, err := cloudinary.NewFromURL(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
		images = store
		log.Printf("storing report photos in cloudinary")
	}

	clock := clockwork.NewRealClock()
	var v ports.Verifier
	if cfg.VerifierURL != "" {
		v = verifier.NewHTTP(cfg.VerifierURL)
		log.Printf("verifier: %s", cfg.VerifierURL)
	} else {
		v = verifier.NewSimulated(clock, cfg.SimulatedVerifyDelay, time.Now().UnixNano())
		log.Printf("verifier: simulated (%s delay)", cfg.SimulatedVerifyDelay)
	}

	hub := ws.NewHub(httpadapter.EncodeEvent)
	hotspots := hotspotsvc.New(repos, repos, hub, cfg.Hotspots, clock)
	submissions := subsvc.New(subsvc.Deps{
		Drafts:    repos,
		Images:    images,
		Jobs:      repos,
		Verifier:  v,
		Refresher: hotspots,
		Events:    hub,
	}, subsvc.Options{
		Threshold:       cfg.VerifyThreshold,
		VerifyTimeout:   cfg.VerifyTimeout,
		LocationTimeout: cfg.LocationTimeout,
		Clock:           clock,
	})
	reports := reportsvc.New(repos, hotspots, hub, clock)
	dashboard := dashsvc.New(repos, hotspots, clock, cfg.RecentReportsLimit)

	srv := httpadapter.New(httpadapter.Deps{
		Submissions: submissions,
		Reports:     reports,
		Hotspots:    hotspots,
		Dashboard:   dashboard,
		Jobs:        repos,
		Processor:   submissions,
	})
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)
	r.Handle("/ws/dashboard", hub.Handler(ws.CheckOrigin(cfg.AllowedOriginDomains, cfg.Development())))
	r.Mount("/", srv.Routes())

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	if cfg.VerifyWorkers > 0 {
		g.Go(func() error {
			verifyrunner.Run(gctx, repos, submissions, cfg.VerifyWorkers, cfg.VerifyPollInterval, cfg.VerifyTimeout+staleJobGrace)
			return nil
		})
		log.Printf("verify workers started: %d", cfg.VerifyWorkers)
	}
	g.Go(func() error {
		refresher.Run(gctx, clock, hotspots, cfg.HotspotRefreshInterval)
		return nil
	})
	g.Go(func() error {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
