package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skotchmaster/cartshop/internal/config"
	"github.com/Skotchmaster/cartshop/internal/db"
	"github.com/Skotchmaster/cartshop/internal/events"
	"github.com/Skotchmaster/cartshop/internal/httpserver"
	"github.com/Skotchmaster/cartshop/internal/logging"
	"github.com/Skotchmaster/cartshop/internal/repo"
	"github.com/Skotchmaster/cartshop/internal/search"
	"github.com/Skotchmaster/cartshop/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(initCtx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		prod, err := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		publisher = prod
		logger.Info("cart events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	store := repo.New(gdb)
	catalogSvc := &service.CatalogService{Repo: store}
	cartSvc := &service.CartService{Repo: store}

	catalogHandler := &httpserver.CatalogHTTP{Svc: catalogSvc}
	if cfg.SearchEnabled() {
		sc, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalogHandler.Search = sc
		if cfg.ReindexOnStart {
			reindex(store, sc, logger)
		}
	}

	e := httpserver.New(logger, &httpserver.Deps{
		CatalogHandler: catalogHandler,
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Events: publisher},
		Store:          store,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}

func reindex(store *repo.GormRepo, sc *search.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := store.GetProducts(ctx)
	if err != nil {
		logger.Error("reindex_failed", "error", err)
		return
	}
	if err := sc.IndexProducts(ctx, products); err != nil {
		logger.Error("reindex_failed", "error", err)
		return
	}
	logger.Info("reindex_done", "products", len(products))
}
