package crdt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/models"
)

func TestValidateVectorClock(t *testing.T) {
	valid := func() *models.VectorClock {
		return &models.VectorClock{
			ClientID:  "c1",
			NodeID:    models.ServerNodeID,
			Versions:  map[string]uint64{"server": 1},
			Timestamp: 1000,
		}
	}

	tests := []struct {
		mutate  func(vc *models.VectorClock) *models.VectorClock
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(vc *models.VectorClock) *models.VectorClock { return vc }},
		{name: "nil clock", mutate: func(*models.VectorClock) *models.VectorClock { return nil }, wantErr: true},
		{name: "empty client id", mutate: func(vc *models.VectorClock) *models.VectorClock { vc.ClientID = ""; return vc }, wantErr: true},
		{name: "empty node id", mutate: func(vc *models.VectorClock) *models.VectorClock { vc.NodeID = ""; return vc }, wantErr: true},
		{name: "negative timestamp", mutate: func(vc *models.VectorClock) *models.VectorClock { vc.Timestamp = -1; return vc }, wantErr: true},
		{name: "nil versions", mutate: func(vc *models.VectorClock) *models.VectorClock { vc.Versions = nil; return vc }, wantErr: true},
		{name: "empty peer", mutate: func(vc *models.VectorClock) *models.VectorClock { vc.Versions[""] = 1; return vc }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVectorClock(tt.mutate(valid()))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVectorClock_RoundTrip(t *testing.T) {
	vc := NewVectorClock("c1", models.ServerNodeID)
	vc.Versions[models.ServerNodeID] = 7
	vc.Versions["c1"] = 1
	vc.LamportCounter = 8
	require.NoError(t, ValidateVectorClock(vc))

	data, err := json.Marshal(vc)
	require.NoError(t, err)

	var decoded models.VectorClock
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, ValidateVectorClock(&decoded))
	assert.Equal(t, vc, &decoded)
}

func TestVectorClock_NegativeVersionFailsToDecode(t *testing.T) {
	payload := []byte(`{"client_id":"c1","node_id":"server","versions":{"server":-1},"timestamp":1,"lamport_counter":0}`)

	var decoded models.VectorClock
	assert.Error(t, json.Unmarshal(payload, &decoded))
}

func TestMergeVector_CommutativeAndIdempotent(t *testing.T) {
	a := &models.VectorClock{ClientID: "c1", NodeID: "server", Versions: map[string]uint64{"server": 3, "c1": 1}, LamportCounter: 3}
	b := &models.VectorClock{ClientID: "c1", NodeID: "server", Versions: map[string]uint64{"server": 2, "c2": 5}, LamportCounter: 5}

	ab := a.Clone()
	MergeVector(ab, b)
	ba := b.Clone()
	MergeVector(ba, a)

	assert.Equal(t, ab.Versions, ba.Versions)
	assert.Equal(t, map[string]uint64{"server": 3, "c1": 1, "c2": 5}, ab.Versions)
	assert.Equal(t, uint64(5), ab.LamportCounter)

	// Повторное слияние ничего не меняет
	again := ab.Clone()
	MergeVector(again, b)
	assert.Equal(t, ab.Versions, again.Versions)

	// Слияние с nil безопасно
	MergeVector(again, nil)
	assert.Equal(t, ab.Versions, again.Versions)
}

func TestCompareVector(t *testing.T) {
	mk := func(v map[string]uint64) *models.VectorClock {
		return &models.VectorClock{Versions: v}
	}

	tests := []struct {
		a, b     *models.VectorClock
		name     string
		expected Ordering
	}{
		{name: "equal", a: mk(map[string]uint64{"x": 1}), b: mk(map[string]uint64{"x": 1}), expected: Equal},
		{name: "before", a: mk(map[string]uint64{"x": 1}), b: mk(map[string]uint64{"x": 2}), expected: Before},
		{name: "after", a: mk(map[string]uint64{"x": 2, "y": 1}), b: mk(map[string]uint64{"x": 2}), expected: After},
		{name: "concurrent", a: mk(map[string]uint64{"x": 2}), b: mk(map[string]uint64{"y": 1}), expected: Concurrent},
		{name: "both empty", a: mk(nil), b: mk(nil), expected: Equal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareVector(tt.a, tt.b), tt.expected.String())
		})
	}
}
