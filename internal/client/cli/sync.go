package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/validation"
)

func (c *Cli) runSync(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: sync <type> [id]", ErrUsage)
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	var id string
	if len(args) == 2 {
		id = args[1]
	}

	c.io.Println("=== Synchronization ===")

	result, err := c.syncService.Sync(ctx, entityType, id)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("Received deltas:  %d\n", result.Received)
	c.io.Printf("Applied locally:  %d\n", result.Applied)
	if result.Deleted > 0 {
		c.io.Printf("Deleted locally:  %d\n", result.Deleted)
	}
	c.io.Printf("Delivery mode:    %s\n", result.Mode)

	if result.Mode == "DEGRADED" {
		c.io.Println()
		c.io.Println("⚠️  Server delivers this client by polling, run sync periodically.")
	}
	return nil
}

func parseEntityType(s string) (models.EntityType, error) {
	entityType := models.EntityType(s)
	if err := validation.ValidateEntityType(entityType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return entityType, nil
}
