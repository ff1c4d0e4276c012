// Package bandwidth проверяет, насколько дельта-синхронизация сокращает трафик.
package bandwidth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
)

// Значения по умолчанию
const (
	DefaultTargetReduction = 87.0
	DefaultResultTTL       = time.Hour
)

// ErrNotFound returned when no validation result is stored for the client
var ErrNotFound = errors.New("validation result not found")

//go:generate moq -out alerter_mock.go . Alerter

// Alerter принимает алерты валидатора. Реализуется монитором качества.
type Alerter interface {
	RaiseAlert(ctx context.Context, clientID, alertType string, severity models.AlertSeverity, message string)
}

// Key returns the keystore key of the client's last validation result
func Key(clientID string) string {
	return "bandwidth:validation:" + clientID
}

// Validator сравнивает размер дельты с размером полного снимка.
// Только наблюдает: результат не влияет на доставку.
type Validator struct {
	kv      keystore.Store
	alerter Alerter
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
	target  float64
	ttl     time.Duration
}

// NewValidator creates a validator. target <= 0 selects DefaultTargetReduction;
// alerter and m may be nil.
func NewValidator(kv keystore.Store, alerter Alerter, m *metrics.Metrics, logger *slog.Logger, target float64) *Validator {
	if target <= 0 {
		target = DefaultTargetReduction
	}
	return &Validator{
		kv:      kv,
		alerter: alerter,
		metrics: m,
		logger:  logger,
		target:  target,
		ttl:     DefaultResultTTL,
		now:     time.Now,
	}
}

// Reduction returns (full-delta)/full*100, or 0 when full is 0
func Reduction(fullSize, deltaSize int64) float64 {
	if fullSize <= 0 {
		return 0
	}
	return float64(fullSize-deltaSize) / float64(fullSize) * 100
}

// Validate computes the reduction, stores the result and warns when it is
// below target. Storage failures are logged; the result is always returned.
func (v *Validator) Validate(ctx context.Context, clientID string, fullSize, deltaSize int64) models.BandwidthValidationResult {
	reduction := Reduction(fullSize, deltaSize)
	res := models.BandwidthValidationResult{
		ClientID:        clientID,
		ActualReduction: reduction,
		TargetReduction: v.target,
		FullSize:        fullSize,
		DeltaSize:       deltaSize,
		Timestamp:       v.now().UnixMilli(),
		IsValid:         reduction >= v.target,
	}
	v.metrics.ObserveBandwidthReduction(reduction)

	data, err := json.Marshal(res)
	if err == nil {
		err = v.kv.Set(ctx, Key(clientID), data, v.ttl)
	}
	if err != nil {
		v.logger.Error("Failed to store bandwidth validation",
			"client_id", clientID,
			"error", err,
		)
	}

	if !res.IsValid {
		msg := fmt.Sprintf("bandwidth reduction %.1f%% is below target %.1f%%", reduction, v.target)
		v.logger.Warn("Bandwidth reduction below target",
			"client_id", clientID,
			"reduction", reduction,
			"target", v.target,
			"full_size", fullSize,
			"delta_size", deltaSize,
		)
		if v.alerter != nil {
			v.alerter.RaiseAlert(ctx, clientID, models.AlertBandwidthBelowGoal, models.SeverityWarning, msg)
		}
	}

	return res
}

// Last returns the client's most recent validation result
func (v *Validator) Last(ctx context.Context, clientID string) (models.BandwidthValidationResult, error) {
	var res models.BandwidthValidationResult

	data, err := v.kv.Get(ctx, Key(clientID))
	if err != nil {
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return res, ErrNotFound
		}
		return res, fmt.Errorf("failed to get validation result: %w", err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		_ = v.kv.Delete(ctx, Key(clientID))
		return res, ErrNotFound
	}
	return res, nil
}

// Forget drops the stored result
func (v *Validator) Forget(ctx context.Context, clientID string) error {
	return v.kv.Delete(ctx, Key(clientID))
}
