package handlers

import (
	"context"
	"time"

	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/statesync"
)

//go:generate moq -out sync_service_mock.go . SyncService
//go:generate moq -out quality_service_mock.go . QualityService

// SyncService операции синхронизации, доступные через HTTP
type SyncService interface {
	InitializeClient(ctx context.Context, clientID string) (*models.VectorClock, error)
	CleanupClient(ctx context.Context, clientID string) error
	CalculateStateDelta(ctx context.Context, req statesync.DeltaRequest) ([]models.StateDelta, error)
	BatchSyncEntities(ctx context.Context, clientID string, refs []statesync.EntityRef) ([]models.StateDelta, error)
	BroadcastStateDelta(ctx context.Context, d models.StateDelta, targets []string) (statesync.BroadcastResult, error)
	DeliveryMode(ctx context.Context, clientID string) fallback.State
	InvalidateEntityCache(entityType models.EntityType, id string) (int, error)
	ResolveConflict(conflictType string, states []models.VersionedState) (*models.Resolution, error)
}

// QualityService операции мониторинга качества соединения
type QualityService interface {
	RecordLatency(ctx context.Context, clientID string, latencyMs float64) (*models.ConnectionQualityMetrics, error)
	RecordPacketLoss(ctx context.Context, clientID string, lost, sent int64) (*models.ConnectionQualityMetrics, error)
	RecordBandwidthUsage(ctx context.Context, clientID string, bytesSent, bytesReceived int64) error
	GetQualityMetrics(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error)
	QualityReport(ctx context.Context, clientID string) (statesync.QualityReport, error)
	GetSystemHealthMetrics(ctx context.Context) (models.SystemHealthMetrics, error)
	GetAlerts(ctx context.Context, clientID string, since time.Time) ([]models.ConnectionQualityAlert, error)
	FallbackHistory(ctx context.Context, clientID string) ([]fallback.Transition, error)
	DeactivateFallback(ctx context.Context, clientID, reason string) (bool, error)
}
