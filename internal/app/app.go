package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"time"

	"gatefall/server/internal/battle"
	"gatefall/server/internal/net"
	"gatefall/server/internal/telemetry"
	"gatefall/server/logging"
	"gatefall/server/logging/sinks"
)

const shutdownGrace = 5 * time.Second

// Run assembles the server from cfg and blocks until ctx is cancelled:
// structured logging router, catalog, battle session, fixed-tick loop, and
// the HTTP/websocket gateway.
func Run(ctx context.Context, cfg Config) error {
	stdLogger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	logger := telemetry.WrapLogger(stdLogger)

	router, closeSinks, err := buildRouter(cfg)
	if err != nil {
		return fmt.Errorf("build logging router: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := router.Close(shutdownCtx); err != nil {
			stdLogger.Printf("logging router close: %v", err)
		}
		closeSinks()
	}()

	catalog := battle.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = battle.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
		}
	}

	session, err := battle.NewSession(cfg.Battle, catalog, battle.Deps{
		Publisher: router,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	gateway := net.NewGateway(nil, net.GatewayConfig{Logger: logger})
	loop := battle.NewLoop(session, battle.LoopConfig{TickRate: cfg.TickRate}, battle.LoopHooks{
		AfterStep: gateway.Broadcast,
	})
	gateway.Attach(loop)

	stop := make(chan struct{})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(stop)
	}()

	server := &nethttp.Server{
		Addr:              cfg.ListenAddr,
		Handler:           gateway.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		stdLogger.Printf("listening on %s (tick rate %d)", cfg.ListenAddr, cfg.TickRate)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		close(stop)
		<-loopDone
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		stdLogger.Printf("http shutdown: %v", err)
	}
	close(stop)
	<-loopDone
	return nil
}

func buildRouter(cfg Config) (*logging.Router, func(), error) {
	logCfg := logging.DefaultConfig()
	logCfg.Fields = map[string]any{"service": "gatefall"}
	if cfg.LogJSONPath != "" {
		logCfg.EnabledSinks = append(logCfg.EnabledSinks, "json")
		logCfg.JSONFilePath = cfg.LogJSONPath
	}

	available := map[string]logging.Sink{
		"console": sinks.NewConsole(os.Stdout),
	}
	closeFile := func() {}
	if logCfg.JSONFilePath != "" {
		file, err := os.OpenFile(logCfg.JSONFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open json log %s: %w", logCfg.JSONFilePath, err)
		}
		available["json"] = sinks.NewJSON(file)
		closeFile = func() { _ = file.Close() }
	}

	router, err := logging.NewRouter(logging.SystemClock{}, logCfg, available)
	if err != nil {
		closeFile()
		return nil, nil, err
	}
	return router, closeFile, nil
}
