package crdt

import (
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// ErrNoStates returned when Resolve is called without candidate states.
var ErrNoStates = errors.New("no states to resolve")

// Resolve выбирает победителя среди конкурирующих версий по правилу LWW.
// Побеждает наибольший LamportCounter, при равенстве - наименьший NodeID.
// Порядок полный и детерминированный, поэтому независимые реплики
// при одинаковом наборе версий выбирают одного и того же победителя.
// Функция чистая: состояние не сливается по полям, только выбирается.
func Resolve(conflictType string, states []models.VersionedState) (*models.Resolution, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}

	winner := &states[0]
	for i := 1; i < len(states); i++ {
		if states[i].IsNewerThan(winner) {
			winner = &states[i]
		}
	}

	ties := 0
	for i := range states {
		if states[i].LamportCounter == winner.LamportCounter {
			ties++
		}
	}

	reasoning := fmt.Sprintf("selected state from node %q with highest lamport counter %d among %d candidates",
		winner.NodeID, winner.LamportCounter, len(states))
	if ties > 1 {
		reasoning += fmt.Sprintf("; %d-way tie on counter broken by smallest node id", ties)
	}

	return &models.Resolution{
		ConflictType: conflictType,
		Strategy:     models.StrategyLastWriteWins,
		MergedState:  winner.State,
		WinnerNodeID: winner.NodeID,
		Reasoning:    reasoning,
		Timestamp:    time.Now().UnixMilli(),
	}, nil
}
