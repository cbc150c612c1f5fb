package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/polymap/internal/cli"
	"github.com/dmitrijs2005/polymap/internal/config"
	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/metrics"
	"github.com/dmitrijs2005/polymap/internal/netx"
	"github.com/dmitrijs2005/polymap/internal/session"
	"github.com/dmitrijs2005/polymap/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	rs, err := store.OpenSQLite(ctx, cfg.DBPath, logger)
	if err != nil {
		logger.Error(ctx, "open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	mt := metrics.New()
	metricsDone := serveMetrics(ctx, cfg.MetricsAddr, mt.Handler(), logger)

	shutdown := func() {
		cancel()
		<-metricsDone
		_ = rs.Close()
	}

	// The REPL blocks on terminal input, so a signal shuts down from here.
	finished := make(chan struct{})
	go func() {
		select {
		case <-sigCtx.Done():
			logger.Info(ctx, "signal received, shutting down")
			shutdown()
			os.Exit(130)
		case <-finished:
		}
	}()

	mgr := session.NewManager(rs, logger,
		session.WithDelay(cfg.LoginDelay),
		session.WithMetrics(mt),
	)

	app := cli.NewApp(mgr, rs, logger, mt, os.Stdin, os.Stdout)
	app.Run(ctx)

	close(finished)
	shutdown()
}

// serveMetrics serves h on addr until ctx is done. The returned channel is
// closed once the server has stopped; it is closed at once when addr is
// empty.
func serveMetrics(ctx context.Context, addr string, h http.Handler, logger logging.Logger) <-chan struct{} {
	done := make(chan struct{})
	if addr == "" {
		close(done)
		return done
	}

	logger.Info(ctx, "serving metrics", "addr", addr)
	go func() {
		defer close(done)
		if err := netx.ListenAndServe(ctx, addr, h); err != nil {
			logger.Error(ctx, "metrics server", "addr", addr, "error", err)
		}
	}()
	return done
}
