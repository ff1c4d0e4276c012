package models

// ConnectionQualityMetrics текущая оценка качества соединения клиента.
// Пересчитывается на каждом замере задержки или потерь.
type ConnectionQualityMetrics struct {
	FallbackReasons      []string `json:"fallback_reasons"`
	ClientID             string   `json:"client_id"`
	AvgLatency           float64  `json:"avg_latency"`           // AvgLatency средняя задержка, мс
	PacketLoss           float64  `json:"packet_loss"`           // PacketLoss доля потерь [0,1]
	Jitter               float64  `json:"jitter"`                // Jitter джиттер, мс
	BandwidthUtilization float64  `json:"bandwidth_utilization"` // BandwidthUtilization утилизация канала, %
	ConnectionStability  float64  `json:"connection_stability"`  // ConnectionStability стабильность [0,1]
	QualityScore         float64  `json:"quality_score"`         // QualityScore итоговая оценка [0,100]
	ReconnectionAttempts int64    `json:"reconnection_attempts"`
	Uptime               int64    `json:"uptime"` // Uptime время с момента подключения, мс
	LastUpdated          int64    `json:"last_updated"`
	UsingPollingFallback bool     `json:"using_polling_fallback"`
}

// AdaptiveThresholds пороги клиента, выведенные из истории его соединения.
type AdaptiveThresholds struct {
	ClientID          string  `json:"client_id"`
	LatencyThreshold  float64 `json:"latency_threshold"`
	PacketLossLimit   float64 `json:"packet_loss_limit"`
	JitterThreshold   float64 `json:"jitter_threshold"`
	StabilityMinimum  float64 `json:"stability_minimum"`
	FallbackScore     float64 `json:"fallback_score"`
	RecoveryScore     float64 `json:"recovery_score"`
	PingIntervalMs    int64   `json:"ping_interval_ms"`
	MinPingIntervalMs int64   `json:"min_ping_interval_ms"`
	MaxPingIntervalMs int64   `json:"max_ping_interval_ms"`
	ComputedAt        int64   `json:"computed_at"`
}

// AlertSeverity уровень важности алерта.
type AlertSeverity string

// Уровни алертов
const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Типы алертов качества соединения
const (
	AlertHighLatency         = "high_latency"
	AlertPacketLoss          = "packet_loss"
	AlertHighJitter          = "high_jitter"
	AlertLowStability        = "low_stability"
	AlertLowQuality          = "low_quality"
	AlertFallbackActivated   = "fallback_activated"
	AlertFallbackDeactivated = "fallback_deactivated"
	AlertBandwidthBelowGoal  = "bandwidth_below_target"
)

// ConnectionQualityAlert запись журнала алертов.
type ConnectionQualityAlert struct {
	Metrics   *ConnectionQualityMetrics `json:"metrics,omitempty"`
	ID        string                    `json:"id"`
	ClientID  string                    `json:"client_id"`
	AlertType string                    `json:"alert_type"`
	Severity  AlertSeverity             `json:"severity"`
	Message   string                    `json:"message"`
	Timestamp int64                     `json:"timestamp"`
	Resolved  bool                      `json:"resolved"`
}

// RuntimeStats метрики процесса для агрегированного здоровья системы.
type RuntimeStats struct {
	CPUPercent       float64 `json:"cpu_percent"`
	MemoryRSSBytes   uint64  `json:"memory_rss_bytes"`
	HostMemoryUsed   float64 `json:"host_memory_used_percent"`
	Load1            float64 `json:"load1"`
	Goroutines       int     `json:"goroutines"`
	CollectionFailed bool    `json:"collection_failed,omitempty"`
}

// SystemHealthMetrics агрегированное состояние всех клиентов.
type SystemHealthMetrics struct {
	Runtime             RuntimeStats `json:"runtime"`
	TotalClients        int          `json:"total_clients"`
	ActiveConnections   int          `json:"active_connections"`
	ClientsInFallback   int          `json:"clients_in_fallback"`
	AlertsLastHour      int          `json:"alerts_last_hour"`
	AverageQualityScore float64      `json:"average_quality_score"`
	Timestamp           int64        `json:"timestamp"`
}
