package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/deltasync/internal/client/api"
	"github.com/iudanet/deltasync/internal/client/cli"
	"github.com/iudanet/deltasync/internal/client/iocli"
	"github.com/iudanet/deltasync/internal/client/storage/boltdb"
	"github.com/iudanet/deltasync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "deltasync-client.db", "Path to local database")
	token := flag.String("token", os.Getenv("DELTASYNC_TOKEN"), "Identity token issued for the client")
	verbose := flag.Bool("verbose", false, "Log synchronization details to stderr")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, nil, nil).PrintUsage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// watch работает до Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL, *token)
	syncService := sync.NewService(apiClient, boltStorage, logger)
	c := cli.New(stdio, apiClient, syncService, boltStorage)

	err = c.Run(ctx, args[0], args[1:])

	if cerr := boltStorage.Close(); cerr != nil {
		logger.Error("failed to close database", "error", cerr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			c.PrintUsage()
		}
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("DeltaSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
