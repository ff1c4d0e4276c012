package statesync

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStats_Ring(t *testing.T) {
	st := newErrorStats(50)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		st.recordOperation("c1", now)
		st.recordError("c1", opCalculate, fmt.Errorf("failure %d", i), now)
	}

	got, ok := st.get("c1")
	require.True(t, ok)
	assert.Equal(t, int64(60), got.TotalOperations)
	assert.Equal(t, int64(60), got.ErrorCount)
	require.Len(t, got.Errors, 50)
	assert.Equal(t, "failure 10", got.Errors[0].Message)
	assert.Equal(t, "failure 59", got.Errors[49].Message)

	// копия не связана с внутренним состоянием
	got.Errors[0].Message = "changed"
	again, _ := st.get("c1")
	assert.Equal(t, "failure 10", again.Errors[0].Message)
}

func TestErrorStats_Reset(t *testing.T) {
	st := newErrorStats(10)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	st.recordSync("active", now)
	st.recordError("active", opCalculate, errors.New("boom"), now)
	st.recordError("idle", opCalculate, errors.New("boom"), now.Add(-time.Hour))

	left := st.reset(now.Add(time.Minute), 30*time.Minute)
	assert.Equal(t, 1, left)

	got, ok := st.get("active")
	require.True(t, ok)
	assert.Zero(t, got.ErrorCount)
	assert.Empty(t, got.Errors)
	assert.Equal(t, now.Add(time.Minute).UnixMilli(), got.LastReset)

	_, ok = st.get("idle")
	assert.False(t, ok)

	st.forget("active")
	_, ok = st.get("active")
	assert.False(t, ok)
}
