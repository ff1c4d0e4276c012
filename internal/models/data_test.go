package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityType_Valid(t *testing.T) {
	for _, et := range EntityTypes {
		assert.True(t, et.Valid(), "%s should be valid", et)
	}
	assert.False(t, EntityType("account").Valid())
	assert.False(t, EntityType("").Valid())
}

func TestUser_Document(t *testing.T) {
	updated := time.UnixMilli(1700000000000)
	u := &User{
		ID:           "u1",
		Email:        "a@example.com",
		DisplayName:  "Alice",
		Role:         "trader",
		Status:       "active",
		PasswordHash: "hash",
		Preferences: UserPreferences{
			Theme:    "dark",
			Language: "en",
			Notifications: NotificationPreferences{
				Email: true,
			},
		},
		UpdatedAt: updated,
	}

	doc := u.Document()
	assert.Equal(t, EntityUser, u.Kind())
	assert.Equal(t, "u1", u.EntityID())
	assert.Equal(t, "Alice", doc["displayName"])
	assert.Equal(t, updated.UnixMilli(), doc["updatedAt"])

	prefs, ok := doc["preferences"].(Document)
	require.True(t, ok, "preferences should be a nested document")
	notifications, ok := prefs["notifications"].(Document)
	require.True(t, ok)
	assert.Equal(t, true, notifications["email"])
	assert.Equal(t, false, notifications["sms"])
}

func TestBroker_Document_ArraysAreLeaves(t *testing.T) {
	b := &Broker{
		ID:         "b1",
		Name:       "Acme FX",
		Regulators: []string{"FCA", "CySEC"},
		Platforms:  []string{},
	}

	doc := b.Document()
	assert.Equal(t, []any{"FCA", "CySEC"}, doc["regulators"])
	assert.Equal(t, []any{}, doc["platforms"])
}

func TestNotification_Document_Metadata(t *testing.T) {
	n := &Notification{
		ID:       "n1",
		UserID:   "u1",
		Metadata: map[string]string{"source": "price-alert"},
	}

	doc := n.Document()
	meta, ok := doc["metadata"].(Document)
	require.True(t, ok)
	assert.Equal(t, "price-alert", meta["source"])
}
