package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"storefront-service/internal/api"
	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/site"
	"storefront-service/internal/store"
	"storefront-service/pkg/logger"
	"storefront-service/web"
)

const (
	defaultAppName = "storefront-service"
)

func main() {
	// A missing .env is fine; the environment may be set some other way.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: defaultAppName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
	if envErr != nil {
		log.Info(".env file not found, relying on system environment")
	}
	log.Info("configuration loaded", "catalog_source", cfg.Catalog.Source, "log_level", cfg.LogLevel)

	// --- Catalog source ---
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	source, err := store.Open(openCtx, store.Options{
		Kind:     cfg.Catalog.Source,
		DataPath: cfg.Catalog.DataPath,
		DSN:      cfg.Postgres.DSN(),
	})
	cancelOpen()
	if err != nil {
		log.Error("failed to open catalog source", "error", err)
		os.Exit(1)
	}
	svc := catalog.NewService(source, cfg.Catalog.ReadTimeout)

	// --- HTTP handler ---
	meta, err := site.Default()
	if err != nil {
		log.Error("failed to load site metadata", "error", err)
		os.Exit(1)
	}
	renderer, err := api.NewRenderer(web.Templates(), log)
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	httpAPIHandler := api.NewHTTPHandler(svc, api.Options{
		Renderer:       renderer,
		Meta:           meta,
		Static:         web.Static(),
		AllowedOrigins: cfg.HttpServer.AllowedOrigins,
		Logger:         log,
	})
	if err := httpAPIHandler.Validate(); err != nil {
		log.Error("invalid HTTP handler", "error", err)
		os.Exit(1)
	}

	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, log, cfg.HttpServer.RequestTimeout)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server ListenAndServe error", "error", err)
			os.Exit(1)
		}
		log.Info("HTTP server has stopped")
	}()

	// --- gRPC health ---
	healthCtx, stopHealth := context.WithCancel(context.Background())
	reporter := api.NewHealthReporter(svc, cfg.Catalog.ReadTimeout, log)
	go reporter.Run(healthCtx, cfg.Catalog.HealthInterval)

	var grpcServer *grpc.Server
	if cfg.GrpcServer.Enabled {
		grpcServer = setupGRPCServer(log, reporter)
		grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
		if err != nil {
			log.Error("failed to listen for gRPC", "port", cfg.GrpcServer.Port, "error", err)
			os.Exit(1)
		}

		go func() {
			log.Info("gRPC server listening", "port", cfg.GrpcServer.Port)
			if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				log.Error("gRPC server Serve error", "error", err)
				os.Exit(1)
			}
			log.Info("gRPC server has stopped")
		}()
	}

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(log, httpServer, grpcServer, stopHealth, source, shutdownComplete)

	<-shutdownComplete
	log.Info("service shutdown sequence finished")
}

func setupBaseMiddleware(router *chi.Mux, log *slog.Logger, requestTimeout time.Duration) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))
	log.Debug("base HTTP middleware registered")
}

func setupGRPCServer(log *slog.Logger, reporter *api.HealthReporter) *grpc.Server {
	s := grpc.NewServer()

	reporter.Register(s)
	log.Info("gRPC health check service registered", "service", api.CatalogServiceName)

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)
	log.Info("gRPC reflection service registered")

	return s
}

func waitForShutdown(
	log *slog.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	stopHealth context.CancelFunc,
	source store.CatalogSource,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	log.Info("received signal, starting graceful shutdown", "signal", receivedSignal.String())

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Health reports NOT_SERVING from here on.
	stopHealth()

	stoppedGrpc := make(chan struct{})
	if grpcServer != nil {
		log.Info("attempting to gracefully shut down gRPC server")
		go func() {
			grpcServer.GracefulStop()
			close(stoppedGrpc)
		}()
	} else {
		close(stoppedGrpc)
	}

	log.Info("attempting to gracefully shut down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server graceful shutdown failed", "error", err)
	} else {
		log.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		log.Info("gRPC server stopped")
	case <-shutdownCtx.Done():
		log.Warn("gRPC server graceful shutdown timed out, forcing stop", "error", shutdownCtx.Err())
		if grpcServer != nil {
			grpcServer.Stop()
		}
	}

	if err := source.Close(); err != nil {
		log.Warn("error closing catalog source", "error", err)
	}

	log.Info("graceful shutdown sequence completed")
}
