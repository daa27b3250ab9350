package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/config"
	"github.com/oggyb/mentormatch/internal/db"
	"github.com/oggyb/mentormatch/internal/logger"
	"github.com/oggyb/mentormatch/internal/server"
	"github.com/oggyb/mentormatch/internal/service/auth"
	"github.com/oggyb/mentormatch/internal/service/chat"
	"github.com/oggyb/mentormatch/internal/service/forum"
	"github.com/oggyb/mentormatch/internal/service/matchmaking"
	"github.com/oggyb/mentormatch/internal/service/profile"
	"github.com/oggyb/mentormatch/internal/service/project"
	"github.com/oggyb/mentormatch/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	sessions := session.NewRedisStore(cfg)
	defer sessions.Close()
	if err := sessions.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	appCtx := app.New(cfg, database, sessions, log)

	if cfg.IsDevelopment() {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	authService := auth.NewService(appCtx)
	match := matchmaking.NewRegistrar(appCtx)

	router := server.NewRouter(appCtx, authService,
		auth.NewRegistrar(authService),
		profile.NewRegistrar(appCtx),
		match,
		project.NewRegistrar(appCtx),
		forum.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	)
	httpServer := server.NewHTTPServer(appCtx, router)
	grpcServer := server.NewGRPCServer(
		[]grpc.UnaryServerInterceptor{auth.UnaryServerInterceptor(authService)},
		match,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting gRPC server", "addr", cfg.GRPC.Host+":"+cfg.GRPC.Port)
		return server.ServeGRPC(cfg, grpcServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
