// Package cli реализует команды консольного клиента синхронизации.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/deltasync/internal/client/api"
	"github.com/iudanet/deltasync/internal/client/iocli"
	"github.com/iudanet/deltasync/internal/client/storage"
	"github.com/iudanet/deltasync/internal/client/sync"
)

// ErrUsage неверные аргументы команды
var ErrUsage = errors.New("invalid command usage")

type Cli struct {
	io          iocli.IO
	apiClient   api.ClientAPI
	syncService sync.Service
	store       storage.StateStorage
}

func New(io iocli.IO, apiClient api.ClientAPI, syncService sync.Service, store storage.StateStorage) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		syncService: syncService,
		store:       store,
	}
}

// Run выполняет команду; args не содержат имени команды
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "init":
		return c.runInit(ctx, args)
	case "sync":
		return c.runSync(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "quality":
		return c.runQuality(ctx)
	case "health":
		return c.runHealth(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("DeltaSync Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  deltasync-client [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version            Show version information")
	c.io.Println("  --server URL         Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH            Path to local database (default: deltasync-client.db)")
	c.io.Println("  --token TOKEN        Identity token (or DELTASYNC_TOKEN)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  init <client-id>     Register the client and reset local state")
	c.io.Println("  sync <type> [id]     Fetch and apply the delta for an entity or a whole type")
	c.io.Println("  list <type>          Show locally applied entities")
	c.io.Println("  quality              Show connection quality report")
	c.io.Println("  health               Show server and system health")
	c.io.Println("  watch                Apply deltas pushed over WebSocket until interrupted")
	c.io.Println()
	c.io.Println("Entity types: user, broker, market, notification")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  deltasync-client init terminal-1")
	c.io.Println("  deltasync-client sync market")
	c.io.Println("  deltasync-client sync user 42")
	c.io.Println("  deltasync-client --server https://sync.example.com watch")
}
