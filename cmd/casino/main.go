package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/catalog"
	"github.com/danielpatrickdp/slot-bandit/internal/config"
	"github.com/danielpatrickdp/slot-bandit/internal/logging"
	"github.com/danielpatrickdp/slot-bandit/internal/random"
	"github.com/danielpatrickdp/slot-bandit/internal/rpc"
	"github.com/danielpatrickdp/slot-bandit/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// #region main
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "casino: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	seed, err := random.SeedOr(cfg.Seed)
	if err != nil {
		return err
	}
	cat, err := catalog.Open(cfg.CatalogDSN, seed)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	c, err := casino.New(cfg.Arms,
		casino.WithRepository(cat),
		casino.WithTrialCap(cfg.TrialCap),
		casino.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build casino: %w", err)
	}
	session := server.NewSession(c)

	log.WithFields(logrus.Fields{
		"casino_id": c.ID().String(),
		"arms":      cfg.Arms,
		"trial_cap": cfg.TrialCap,
		"catalog":   cfg.CatalogDSN,
		"http":      cfg.HTTPAddr,
		"grpc":      cfg.GRPCAddr,
	}).Info("casino server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg, session, log)
}
// #endregion main

// #region serve
// serve runs the HTTP and gRPC front ends until ctx ends or one fails.
func serve(ctx context.Context, cfg config.Config, session *server.Session, log *logrus.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(server.NewHandlers(session, log)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	rpc.Register(grpcSrv, rpc.NewService(session, log))
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("casino server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
// #endregion serve
