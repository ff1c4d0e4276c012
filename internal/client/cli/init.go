package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/deltasync/internal/client/storage"
	"github.com/iudanet/deltasync/internal/validation"
)

func (c *Cli) runInit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: init <client-id>", ErrUsage)
	}
	clientID := args[0]
	if err := validation.ValidateClientID(clientID); err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	current, err := c.store.GetClientID(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load client id: %w", err)
	default:
		c.io.Printf("Local state belongs to client %q.\n", current)
		answer, err := c.io.ReadInput("Re-initialize and drop it? [y/N]: ")
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	vc, err := c.syncService.Init(ctx, clientID)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	c.io.Println("✓ Client initialized")
	c.io.Printf("Client ID:    %s\n", clientID)
	c.io.Printf("Vector clock: %s\n", formatVersions(vc.Versions))
	return nil
}
