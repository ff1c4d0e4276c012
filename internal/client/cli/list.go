package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: list <type>", ErrUsage)
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}

	docs, err := c.store.ListEntities(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	if len(docs) == 0 {
		c.io.Printf("No %s entities synchronized yet.\n", entityType)
		return nil
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c.io.Printf("=== %s (%d) ===\n", entityType, len(ids))
	for _, id := range ids {
		data, err := json.Marshal(docs[id])
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", id, err)
		}
		c.io.Printf("%s  %s\n", id, data)
	}
	return nil
}
