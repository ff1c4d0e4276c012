package models

// ChangeType тип изменения поля.
type ChangeType string

// Допустимые типы изменений
const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// StateChange изменение одного листового поля сущности.
// Field задается dot-path, например "preferences.notifications.email".
type StateChange struct {
	OldValue   any        `json:"old_value,omitempty"`
	NewValue   any        `json:"new_value,omitempty"`
	Field      string     `json:"field"`
	ChangeType ChangeType `json:"change_type"`
	Timestamp  int64      `json:"timestamp"`
}

// StateDelta результат синхронизации одной сущности для клиента.
type StateDelta struct {
	VectorClock  *VectorClock  `json:"vector_clock"`
	LamportClock *LamportClock `json:"lamport_clock"`
	EntityType   EntityType    `json:"entity_type"`
	EntityID     string        `json:"entity_id"`
	Changes      []StateChange `json:"changes"`
	Timestamp    int64         `json:"timestamp"`
}

// BandwidthValidationResult результат проверки экономии трафика.
type BandwidthValidationResult struct {
	ClientID        string  `json:"client_id"`
	ActualReduction float64 `json:"actual_reduction"` // ActualReduction фактическое сокращение, %
	TargetReduction float64 `json:"target_reduction"` // TargetReduction целевое сокращение, %
	FullSize        int64   `json:"full_size"`
	DeltaSize       int64   `json:"delta_size"`
	Timestamp       int64   `json:"timestamp"`
	IsValid         bool    `json:"is_valid"`
}

// ClientError одна зафиксированная ошибка синхронизации клиента.
type ClientError struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// ClientErrorStats статистика ошибок клиента. Хранится только в памяти.
type ClientErrorStats struct {
	Errors          []ClientError `json:"errors"`
	TotalOperations int64         `json:"total_operations"`
	ErrorCount      int64         `json:"error_count"`
	LastReset       int64         `json:"last_reset"`
	LastSyncTime    int64         `json:"last_sync_time"`
}
