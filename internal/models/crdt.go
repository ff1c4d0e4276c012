package models

// ServerNodeID идентификатор участника "сервер" в логических часах.
const ServerNodeID = "server"

// VectorClock представляет векторные часы клиента.
// Versions хранит последнюю увиденную версию каждого участника (peer).
type VectorClock struct {
	Versions       map[string]uint64 `json:"versions"`        // Versions последняя увиденная версия по каждому участнику
	ClientID       string            `json:"client_id"`       // ClientID идентификатор клиента-владельца
	NodeID         string            `json:"node_id"`         // NodeID идентификатор узла, выдавшего часы
	Timestamp      int64             `json:"timestamp"`       // Timestamp время последнего изменения (unix ms)
	LamportCounter uint64            `json:"lamport_counter"` // LamportCounter значение часов Лампорта на момент изменения
}

// Clone создает глубокую копию векторных часов.
func (vc *VectorClock) Clone() *VectorClock {
	if vc == nil {
		return nil
	}

	versions := make(map[string]uint64, len(vc.Versions))
	for k, v := range vc.Versions {
		versions[k] = v
	}

	return &VectorClock{
		Versions:       versions,
		ClientID:       vc.ClientID,
		NodeID:         vc.NodeID,
		Timestamp:      vc.Timestamp,
		LamportCounter: vc.LamportCounter,
	}
}

// LamportClock представляет сохраненное состояние часов Лампорта участника.
type LamportClock struct {
	NodeID    string `json:"node_id"`   // NodeID участник, которому принадлежат часы
	Counter   uint64 `json:"counter"`   // Counter монотонно возрастающий счетчик
	Timestamp int64  `json:"timestamp"` // Timestamp время последнего события (unix ms)
}

// VersionedState одна из конкурирующих версий состояния сущности.
type VersionedState struct {
	State          Document `json:"state"`
	NodeID         string   `json:"node_id"`
	LamportCounter uint64   `json:"lamport_counter"`
	Timestamp      int64    `json:"timestamp"`
}

// IsNewerThan сравнивает две версии по правилу LWW.
// 1. Больший LamportCounter выигрывает
// 2. При равных счетчиках выигрывает лексикографически меньший NodeID
func (s *VersionedState) IsNewerThan(other *VersionedState) bool {
	if s.LamportCounter != other.LamportCounter {
		return s.LamportCounter > other.LamportCounter
	}
	return s.NodeID < other.NodeID
}

// ResolutionStrategy стратегия разрешения конфликта.
type ResolutionStrategy string

// StrategyLastWriteWins единственная поддерживаемая стратегия.
const StrategyLastWriteWins ResolutionStrategy = "LAST_WRITE_WINS"

// Resolution результат разрешения конфликта.
type Resolution struct {
	MergedState  Document           `json:"merged_state"`
	ConflictType string             `json:"conflict_type"`
	Strategy     ResolutionStrategy `json:"strategy"`
	WinnerNodeID string             `json:"winner_node_id"`
	Reasoning    string             `json:"reasoning"`
	Timestamp    int64              `json:"timestamp"`
}
