package api

// LatencyRequest замер задержки клиента
type LatencyRequest struct {
	ClientID  string  `json:"client_id"`
	LatencyMs float64 `json:"latency_ms"`
}

// PacketLossRequest отчет о потерях пакетов
type PacketLossRequest struct {
	ClientID string `json:"client_id"`
	Lost     int64  `json:"lost"`
	Sent     int64  `json:"sent"`
}

// BandwidthRequest отчет о трафике клиента
type BandwidthRequest struct {
	ClientID      string `json:"client_id"`
	BytesSent     int64  `json:"bytes_sent"`
	BytesReceived int64  `json:"bytes_received"`
}

// DeactivateFallbackRequest ручное возвращение клиента на push-доставку
type DeactivateFallbackRequest struct {
	ClientID string `json:"client_id"`
	Reason   string `json:"reason,omitempty"`
}

// DeactivateFallbackResponse сообщает, изменился ли режим
type DeactivateFallbackResponse struct {
	Changed bool `json:"changed"`
}
