package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/models"
)

func setupTestDB(t *testing.T) *Storage {
	t.Helper()

	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var _ entity.Store = (*Storage)(nil)

func TestStorage_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	u := &models.User{
		ID:           "u1",
		Email:        "ada@example.com",
		DisplayName:  "Ada",
		Role:         "trader",
		Status:       "active",
		PasswordHash: "argon2id$...",
		APIToken:     "tok",
		Preferences: models.UserPreferences{
			Theme:         "dark",
			Language:      "en",
			Notifications: models.NotificationPreferences{Email: true, SMS: true},
		},
		UpdatedAt: time.UnixMilli(1_700_000_000_123),
	}
	require.NoError(t, s.SaveUser(ctx, u))

	got, err := s.FindOne(ctx, models.EntityUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, u.Document(), got.Document())

	// Upsert обновляет существующую запись
	u.Preferences.Theme = "light"
	require.NoError(t, s.Save(ctx, u))
	got, err = s.FindOne(ctx, models.EntityUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, "light", got.(*models.User).Preferences.Theme)
}

func TestStorage_BrokerMarketNotification(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	b := &models.Broker{
		ID: "b1", Name: "Acme FX", Country: "CY", InternalNotes: "watch",
		Regulators: []string{"CySEC", "FCA"}, Platforms: []string{"MT5"},
		Spreads: models.Spreads{Min: 0.1, Avg: 0.8}, Rating: 4.5, IsActive: true,
		UpdatedAt: time.UnixMilli(1000),
	}
	m := &models.Market{
		ID: "m1", Symbol: "EURUSD", Name: "Euro / Dollar", Category: "forex", Status: "open",
		Price: 1.0832, Change24h: -0.12, Volume: 1e6, High: 1.09, Low: 1.08,
		UpdatedAt: time.UnixMilli(2000),
	}
	n := &models.Notification{
		ID: "n1", UserID: "u1", Category: "price_alert", Title: "EURUSD", Body: "crossed 1.08",
		Channel: "push", Priority: 2, Metadata: map[string]string{"symbol": "EURUSD"},
		CreatedAt: time.UnixMilli(3000),
	}
	for _, e := range []models.Entity{b, m, n} {
		require.NoError(t, s.Save(ctx, e))
	}

	for _, e := range []models.Entity{b, m, n} {
		got, err := s.FindOne(ctx, e.Kind(), e.EntityID())
		require.NoError(t, err)
		assert.Equal(t, e.Document(), got.Document(), string(e.Kind()))
	}
}

func TestStorage_FindOneNotFound(t *testing.T) {
	s := setupTestDB(t)

	_, err := s.FindOne(context.Background(), models.EntityMarket, "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestStorage_UnknownType(t *testing.T) {
	s := setupTestDB(t)

	_, err := s.FindOne(context.Background(), models.EntityType("order"), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestStorage_FindMany(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	markets := []*models.Market{
		{ID: "m3", Symbol: "BTCUSD", Category: "crypto", Status: "open", UpdatedAt: time.UnixMilli(300)},
		{ID: "m1", Symbol: "EURUSD", Category: "forex", Status: "open", UpdatedAt: time.UnixMilli(100)},
		{ID: "m2", Symbol: "GBPUSD", Category: "forex", Status: "halted", UpdatedAt: time.UnixMilli(200)},
	}
	for _, m := range markets {
		require.NoError(t, s.SaveMarket(ctx, m))
	}

	tests := []struct {
		filter   entity.Filter
		name     string
		expected []string
		limit    int
	}{
		{name: "all ordered by id", expected: []string{"m1", "m2", "m3"}},
		{name: "limit", limit: 2, expected: []string{"m1", "m2"}},
		{name: "category", filter: entity.Filter{Category: "forex"}, expected: []string{"m1", "m2"}},
		{name: "status and category", filter: entity.Filter{Category: "forex", Status: "open"}, expected: []string{"m1"}},
		{name: "updated after", filter: entity.Filter{UpdatedAfter: time.UnixMilli(150)}, expected: []string{"m2", "m3"}},
		{name: "user filter ignored for markets", filter: entity.Filter{UserID: "u1"}, expected: []string{"m1", "m2", "m3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindMany(ctx, models.EntityMarket, tt.filter, tt.limit)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.EntityID())
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	require.NoError(t, s.SaveMarket(ctx, &models.Market{ID: "m1", Symbol: "EURUSD"}))
	require.NoError(t, s.Delete(ctx, models.EntityMarket, "m1"))
	require.NoError(t, s.Delete(ctx, models.EntityMarket, "m1"))

	_, err := s.FindOne(ctx, models.EntityMarket, "m1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
