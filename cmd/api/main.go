package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulse-cx/insight/internal/application"
	appanalysis "github.com/pulse-cx/insight/internal/application/analysis"
	apptasks "github.com/pulse-cx/insight/internal/application/tasks"
	"github.com/pulse-cx/insight/internal/config"
	"github.com/pulse-cx/insight/internal/domain/report"
	"github.com/pulse-cx/insight/internal/domain/reviews"
	infraanalysis "github.com/pulse-cx/insight/internal/infra/analysis"
	aiclient "github.com/pulse-cx/insight/internal/infra/ai"
	openaiclient "github.com/pulse-cx/insight/internal/infra/ai/openai"
	"github.com/pulse-cx/insight/internal/infra/crawler"
	mysqldb "github.com/pulse-cx/insight/internal/infra/db/mysql"
	postgresdb "github.com/pulse-cx/insight/internal/infra/db/postgres"
	"github.com/pulse-cx/insight/internal/infra/httpserver"
	minioStore "github.com/pulse-cx/insight/internal/infra/storage"
	"github.com/pulse-cx/insight/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// report store, driver per config
	var (
		db      *sql.DB
		reports report.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		reports = postgresdb.NewReportRepository(db)
	case "mysql", "":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		reports = mysqldb.NewReportRepository(db)
	default:
		log.Fatalf("unknown database driver %q", cfg.Database.Driver)
	}
	defer db.Close()

	// raw batch archive; optional
	var archive reviews.Archive
	checks := map[string]middleware.Checker{
		"database": &middleware.DatabaseChecker{DB: db},
	}
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
		checks["object_store"] = &middleware.ObjectStoreChecker{
			Client: store.Client(),
			Bucket: cfg.Minio.BucketName,
		}
	}

	// headless browser, shared by both platform crawlers
	browser, err := crawler.NewBrowser(cfg.Crawler.Headless)
	if err != nil {
		log.Fatalf("browser init error: %v", err)
	}
	defer browser.Close()

	collector := crawler.NewCollector(browser, crawler.Config{
		MaxReviews: cfg.Crawler.MaxReviews,
		NavTimeout: cfg.CrawlerNavTimeout(),
	})

	// AI clients
	chat := openaiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	embedder := infraanalysis.NewOpenAIEmbedder(chat.Client, cfg.OpenAI.EmbeddingModel)
	assigner := infraanalysis.NewAssigner(embedder)
	synth := aiclient.NewSynthesizer(chat)

	tracker := apptasks.NewTracker()
	svc := &appanalysis.Service{
		Collector: collector,
		Assigner:  assigner,
		Synth:     synth,
		Reports:   reports,
		Archive:   archive,
		Tracker:   tracker,
		Clock:     application.SystemClock{},
	}

	handler := httpserver.NewRouter(svc, tracker, reports, synth, middleware.HealthHandler(checks))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.RequestLogger(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
