package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/app"
    "github.com/willvelida/tic-tac-toe/internal/config"
    "github.com/willvelida/tic-tac-toe/internal/player"
    "github.com/willvelida/tic-tac-toe/internal/web"
)

func main() {
    if err := run(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func run() error {
    configPath := flag.String("config", "", "path to a YAML config file")
    addr := flag.String("addr", "", "listen address, overrides config and environment")
    flag.Parse()

    cfg, err := config.Load(*configPath)
    if err != nil {
        return err
    }
    if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
        return err
    }
    if *addr != "" {
        cfg.Addr = *addr
    }
    if err := cfg.Validate(); err != nil {
        return err
    }
    tier, err := cfg.Tier()
    if err != nil {
        return err
    }

    log, err := cfg.NewLogger()
    if err != nil {
        return err
    }
    defer func() { _ = log.Sync() }()

    svc := app.NewService(
        app.WithLogger(log.Named("app")),
        app.WithRand(ai.NewRand(cfg.Seed)),
        app.WithThinkDelay(player.Delay{Min: cfg.ThinkDelay.Min, Max: cfg.ThinkDelay.Max}),
    )
    server := &http.Server{
        Addr:              cfg.Addr,
        Handler:           web.NewServer(svc, log.Named("web"), web.Config{DefaultTier: tier}),
        ReadHeaderTimeout: 10 * time.Second,
    }

    serverErr := make(chan error, 1)
    go func() {
        log.Info("listening", zap.String("addr", cfg.Addr), zap.Stringer("default_tier", tier))
        if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            serverErr <- err
        }
        close(serverErr)
    }()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    select {
    case <-ctx.Done():
        log.Info("shutdown signal received")
    case err, ok := <-serverErr:
        if ok {
            return fmt.Errorf("serve: %w", err)
        }
    }

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := server.Shutdown(shutdownCtx); err != nil {
        log.Warn("graceful shutdown failed", zap.Error(err))
        return server.Close()
    }
    return nil
}
