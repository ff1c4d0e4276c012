package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("Watching deltas, press Ctrl+C to stop...")

	applied := 0
	err := c.syncService.Watch(ctx, func(d models.StateDelta) {
		applied++
		c.io.Printf("[%s] %s/%s: %d change(s)\n",
			time.Now().Format(time.TimeOnly), d.EntityType, d.EntityID, len(d.Changes))
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	c.io.Printf("Stopped, %d delta(s) applied.\n", applied)
	return nil
}
