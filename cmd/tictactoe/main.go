package main

import (
    "context"
    "flag"
    "fmt"
    "os"
    "os/signal"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/config"
    "github.com/willvelida/tic-tac-toe/internal/player"
    "github.com/willvelida/tic-tac-toe/internal/terminal"
)

func main() {
    configPath := flag.String("config", "", "path to a YAML config file")
    flag.Parse()

    if err := run(*configPath); err != nil {
        fmt.Fprintln(os.Stderr, "Fatal error:", err)
        os.Exit(1)
    }
}

func run(configPath string) error {
    cfg, err := config.Load(configPath)
    if err != nil {
        return err
    }
    if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
        return err
    }
    // The console owns stdout; logs only surface problems.
    if _, ok := os.LookupEnv("TTT_LOG_LEVEL"); !ok && configPath == "" {
        cfg.LogLevel = "error"
    }
    if err := cfg.Validate(); err != nil {
        return err
    }
    log, err := cfg.NewLogger()
    if err != nil {
        return err
    }
    defer func() { _ = log.Sync() }()

    // A blocked stdin read cannot observe a context, so an interrupt exits directly.
    interrupt := make(chan os.Signal, 1)
    signal.Notify(interrupt, os.Interrupt)
    go func() {
        <-interrupt
        _ = log.Sync()
        fmt.Println("\nThanks for playing Tic-Tac-Toe! Goodbye!")
        os.Exit(130)
    }()

    rng := ai.NewRand(cfg.Seed)
    ui := terminal.New(os.Stdin, os.Stdout, rng)
    delay := player.Delay{Min: cfg.ThinkDelay.Min, Max: cfg.ThinkDelay.Max}
    return terminal.NewController(ui, ai.NewEngine(rng), rng, delay, log).Run(context.Background())
}
