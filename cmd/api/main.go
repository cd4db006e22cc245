package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/recruit-pipeline/internal/config"
	"github.com/xavierca1/recruit-pipeline/internal/infra/database"
	"github.com/xavierca1/recruit-pipeline/internal/infra/http/handlers"
	"github.com/xavierca1/recruit-pipeline/internal/infra/http/middleware"
	"github.com/xavierca1/recruit-pipeline/internal/infra/http/router"
	"github.com/xavierca1/recruit-pipeline/internal/infra/mail"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
	"github.com/xavierca1/recruit-pipeline/internal/infra/worker"
	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[DB] %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("[DB] migration failed: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[QUEUE] %v", err)
	}
	defer rabbitMQ.Close()

	// 1. Repositories and stores
	candidateRepo := database.NewCandidateRepository(db)
	snapshots := usecase.NewSnapshotStore(candidateRepo)
	settings := usecase.NewSettingsStore(cfg.Automation)
	ledger := mail.NewLedger()

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Ch)
	var outbox mail.Outbox = &mail.WriterOutbox{W: os.Stdout}
	if cfg.MailOutboxDir != "" {
		outbox = mail.DirOutbox{Dir: cfg.MailOutboxDir}
	}
	sender := mail.NewOutboxSender(cfg.MailFrom, outbox, ledger)

	// 3. Use cases
	stages := usecase.NewChangeStageUseCase(candidateRepo, producer, settings, snapshots, middleware.StageTransitions{})
	candidates := handlers.NewCandidateHandler(
		usecase.NewCreateCandidateUseCase(candidateRepo, producer, settings, snapshots),
		usecase.NewUpdateCandidateUseCase(candidateRepo, snapshots, stages),
		stages,
		usecase.NewDeleteCandidateUseCase(candidateRepo, snapshots),
		usecase.NewGetCandidateUseCase(candidateRepo),
		usecase.NewListCandidatesUseCase(snapshots),
		usecase.NewListByStageUseCase(candidateRepo),
	)
	dashboard := handlers.NewDashboardHandler(usecase.NewDashboardUseCase(snapshots))
	automation := handlers.NewAutomationHandler(usecase.NewAutomationUseCase(candidateRepo, producer, settings, ledger))

	// 4. Router
	handler := router.New(router.Handlers{
		Health:     handlers.NewHealthHandler(db, rabbitMQ.Conn),
		Candidates: candidates,
		Dashboard:  dashboard,
		Automation: automation,
	}, router.Options{
		AllowedOrigins: cfg.CORSOrigins,
		Limiter:        middleware.NewWriteLimiter(cfg.WritesPerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 5. Background work
	stopRefresher := worker.NewSnapshotRefresher(snapshots, cfg.RefreshInterval, middleware.ObservePipeline).Start(ctx)
	defer stopRefresher()

	notifications := queue.NewWorker(rabbitMQ.Ch, sender)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[HTTP] recruiting pipeline listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return notifications.Start(gctx, queue.QueueName)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("[MAIN] stopped with error: %v", err)
	}
	log.Println("[MAIN] shutdown complete")
}
