package crdt

import (
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// ErrInvalidClock returned when a vector clock fails structural validation.
var ErrInvalidClock = errors.New("invalid vector clock")

// Ordering результат сравнения двух векторных часов.
type Ordering int

// Возможные отношения между векторными часами
const (
	Equal Ordering = iota
	Before
	After
	Concurrent
)

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "equal"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "concurrent"
	}
}

// NewVectorClock создает обнуленные векторные часы клиента.
func NewVectorClock(clientID, nodeID string) *models.VectorClock {
	return &models.VectorClock{
		ClientID:  clientID,
		NodeID:    nodeID,
		Versions:  make(map[string]uint64),
		Timestamp: time.Now().UnixMilli(),
	}
}

// ValidateVectorClock проверяет структурную корректность часов.
// Counters are unsigned so non-negativity holds by construction; JSON payloads
// carrying negative numbers fail to decode and are handled as corruption upstream.
func ValidateVectorClock(vc *models.VectorClock) error {
	if vc == nil {
		return fmt.Errorf("%w: nil clock", ErrInvalidClock)
	}
	if vc.ClientID == "" {
		return fmt.Errorf("%w: empty client_id", ErrInvalidClock)
	}
	if vc.NodeID == "" {
		return fmt.Errorf("%w: empty node_id", ErrInvalidClock)
	}
	if vc.Timestamp < 0 {
		return fmt.Errorf("%w: negative timestamp", ErrInvalidClock)
	}
	if vc.Versions == nil {
		return fmt.Errorf("%w: missing versions", ErrInvalidClock)
	}
	for peer := range vc.Versions {
		if peer == "" {
			return fmt.Errorf("%w: empty peer id in versions", ErrInvalidClock)
		}
	}
	return nil
}

// MergeVector сливает other в vc (поэлементный максимум).
// Операция коммутативна и идемпотентна.
func MergeVector(vc, other *models.VectorClock) {
	if other == nil {
		return
	}
	if vc.Versions == nil {
		vc.Versions = make(map[string]uint64, len(other.Versions))
	}
	for peer, v := range other.Versions {
		if v > vc.Versions[peer] {
			vc.Versions[peer] = v
		}
	}
	if other.LamportCounter > vc.LamportCounter {
		vc.LamportCounter = other.LamportCounter
	}
	if other.Timestamp > vc.Timestamp {
		vc.Timestamp = other.Timestamp
	}
}

// CompareVector определяет причинное отношение a к b.
func CompareVector(a, b *models.VectorClock) Ordering {
	aLess, bLess := false, false

	peers := make(map[string]struct{}, len(a.Versions)+len(b.Versions))
	for p := range a.Versions {
		peers[p] = struct{}{}
	}
	for p := range b.Versions {
		peers[p] = struct{}{}
	}

	for p := range peers {
		av, bv := a.Versions[p], b.Versions[p]
		if av < bv {
			aLess = true
		}
		if bv < av {
			bLess = true
		}
	}

	switch {
	case aLess && bLess:
		return Concurrent
	case aLess:
		return Before
	case bLess:
		return After
	default:
		return Equal
	}
}
