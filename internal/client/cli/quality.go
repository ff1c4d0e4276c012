package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

func (c *Cli) runQuality(ctx context.Context) error {
	clientID, err := c.syncService.ClientID(ctx)
	if err != nil {
		return err
	}

	report, err := c.apiClient.QualityReport(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get quality report: %w", err)
	}

	c.io.Println("=== Connection Quality ===")
	c.io.Printf("Client ID:      %s\n", clientID)
	c.io.Printf("Delivery mode:  %s\n", report.Mode)

	if report.Metrics == nil {
		c.io.Println()
		c.io.Println("No quality samples recorded yet.")
		return nil
	}

	m := report.Metrics
	c.io.Printf("Quality score:  %.1f\n", m.QualityScore)
	c.io.Printf("Avg latency:    %.1f ms\n", m.AvgLatency)
	c.io.Printf("Jitter:         %.1f ms\n", m.Jitter)
	c.io.Printf("Packet loss:    %.2f%%\n", m.PacketLoss*100)
	c.io.Printf("Stability:      %.2f\n", m.ConnectionStability)
	c.io.Printf("Reconnections:  %d\n", m.ReconnectionAttempts)
	if len(m.FallbackReasons) > 0 {
		c.io.Printf("Fallback:       %s\n", strings.Join(m.FallbackReasons, "; "))
	}

	if report.Bandwidth != nil {
		c.io.Printf("Bandwidth:      %.1f%% reduction (target %.0f%%)\n",
			report.Bandwidth.ActualReduction, report.Bandwidth.TargetReduction)
	}
	return nil
}

func (c *Cli) runHealth(ctx context.Context) error {
	health, err := c.apiClient.Health(ctx)
	if err != nil {
		return fmt.Errorf("server is unavailable: %w", err)
	}

	c.io.Println("=== Server Health ===")
	c.io.Printf("Status:   %s\n", health.Status)
	if health.Version != "" {
		c.io.Printf("Version:  %s\n", health.Version)
	}

	sys, err := c.apiClient.SystemHealth(ctx)
	if err != nil {
		c.io.Printf("\nWarning: failed to get system health: %v\n", err)
		return nil
	}

	c.io.Println()
	c.io.Printf("Clients:          %d\n", sys.TotalClients)
	c.io.Printf("Polling fallback: %d\n", sys.ClientsInFallback)
	c.io.Printf("Connected:        %d\n", sys.ActiveConnections)
	c.io.Printf("Avg quality:      %.1f\n", sys.AverageQualityScore)
	c.io.Printf("Alerts last hour: %d\n", sys.AlertsLastHour)
	return nil
}

func formatVersions(versions map[string]uint64) string {
	keys := make([]string, 0, len(versions))
	for k := range versions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, versions[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
