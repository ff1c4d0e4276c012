package bandwidth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/keystore/memory"
	"github.com/iudanet/deltasync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryStore(t *testing.T) keystore.Store {
	t.Helper()
	s := memory.New(time.Minute)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestReduction(t *testing.T) {
	tests := []struct {
		name  string
		full  int64
		delta int64
		want  float64
	}{
		{name: "ninety percent", full: 1000, delta: 100, want: 90},
		{name: "no saving", full: 500, delta: 500, want: 0},
		{name: "empty full payload", full: 0, delta: 10, want: 0},
		{name: "delta larger than full", full: 100, delta: 150, want: -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Reduction(tt.full, tt.delta), 1e-9)
		})
	}
}

func TestValidator_AboveTarget(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryStore(t)
	alerter := &AlerterMock{}
	v := NewValidator(kv, alerter, nil, testLogger(), 87)

	res := v.Validate(ctx, "c1", 1000, 100)

	assert.True(t, res.IsValid)
	assert.InDelta(t, 90.0, res.ActualReduction, 1e-9)
	assert.Equal(t, 87.0, res.TargetReduction)
	assert.Empty(t, alerter.RaiseAlertCalls())

	stored, err := v.Last(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, res, stored)
}

func TestValidator_BelowTargetRaisesAlert(t *testing.T) {
	ctx := context.Background()
	alerter := &AlerterMock{
		RaiseAlertFunc: func(context.Context, string, string, models.AlertSeverity, string) {},
	}
	v := NewValidator(newMemoryStore(t), alerter, nil, testLogger(), 0)

	res := v.Validate(ctx, "c1", 1000, 400)

	assert.False(t, res.IsValid)
	assert.Equal(t, DefaultTargetReduction, res.TargetReduction)
	require.Len(t, alerter.RaiseAlertCalls(), 1)
	call := alerter.RaiseAlertCalls()[0]
	assert.Equal(t, "c1", call.ClientID)
	assert.Equal(t, models.AlertBandwidthBelowGoal, call.AlertType)
	assert.Equal(t, models.SeverityWarning, call.Severity)
}

func TestValidator_OverwritesPreviousResult(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(newMemoryStore(t), nil, nil, testLogger(), 50)

	v.Validate(ctx, "c1", 100, 90)
	v.Validate(ctx, "c1", 100, 10)

	stored, err := v.Last(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.DeltaSize)
	assert.True(t, stored.IsValid)

	require.NoError(t, v.Forget(ctx, "c1"))
	_, err = v.Last(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Ошибка хранилища не мешает вернуть результат
func TestValidator_StoreFailureIsObservational(t *testing.T) {
	kv := &keystore.StoreMock{
		SetFunc: func(context.Context, string, []byte, time.Duration) error {
			return errors.New("connection refused")
		},
	}
	v := NewValidator(kv, nil, nil, testLogger(), 87)

	res := v.Validate(context.Background(), "c1", 1000, 100)
	assert.True(t, res.IsValid)
	assert.Len(t, kv.SetCalls(), 1)
}

func TestValidator_CorruptedResult(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryStore(t)
	require.NoError(t, kv.Set(ctx, Key("c1"), []byte("{broken"), 0))

	v := NewValidator(kv, nil, nil, testLogger(), 87)
	_, err := v.Last(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = kv.Get(ctx, Key("c1"))
	assert.ErrorIs(t, err, keystore.ErrKeyNotFound)
}
