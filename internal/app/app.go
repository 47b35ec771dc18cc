package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"bankmail-ledger-go/internal/config"
	"bankmail-ledger-go/internal/db"
	"bankmail-ledger-go/internal/googleauth"
	"bankmail-ledger-go/internal/handlers"
	"bankmail-ledger-go/internal/ledger"
	"bankmail-ledger-go/internal/mail"
	"bankmail-ledger-go/internal/metrics"
	"bankmail-ledger-go/internal/registry"
	"bankmail-ledger-go/internal/scheduler"
	"bankmail-ledger-go/internal/server"
	"bankmail-ledger-go/internal/sync"
)

// Run initializes and starts the application
func Run() error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting Bank Mail Ledger Sync Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	dbConn, err := db.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	m := metrics.NewMetrics()
	reg := registry.New(dbConn)
	tokens := googleauth.NewExchanger(cfg.Google)

	var mailOpener mail.Opener
	if cfg.Mail.UseIMAP {
		mailOpener = mail.NewIMAPOpener(&cfg.Mail)
		logrus.Info("Using IMAP for mail retrieval")
	} else {
		mailOpener = mail.NewGmailOpener()
		logrus.Info("Using Gmail API for mail retrieval")
	}

	orchestrator := sync.NewOrchestrator(reg, tokens, mailOpener, ledger.NewSheetsOpener(), m, &cfg.Sync, &cfg.Mail)

	sched := scheduler.NewScheduler(&cfg.Sync, orchestrator)

	h := handlers.NewHandlers(dbConn, reg, orchestrator, sched, m)
	router := server.SetupRouter(h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logrus.Errorf("Failed to stop scheduler: %v", err)
	}
	sched.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	logrus.Info("Server stopped gracefully")
	return nil
}
