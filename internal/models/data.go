package models

import "time"

// Document представляет снимок сущности в виде дерева полей.
// Значения: скаляры, []any (непрозрачный лист) или вложенный Document.
type Document map[string]any

// EntityType закрытый набор типов синхронизируемых сущностей.
type EntityType string

// Поддерживаемые типы сущностей
const (
	EntityUser         EntityType = "user"
	EntityBroker       EntityType = "broker"
	EntityMarket       EntityType = "market"
	EntityNotification EntityType = "notification"
)

// EntityTypes перечисляет все известные типы сущностей.
var EntityTypes = []EntityType{EntityUser, EntityBroker, EntityMarket, EntityNotification}

// Valid проверяет, что тип сущности известен.
func (t EntityType) Valid() bool {
	switch t {
	case EntityUser, EntityBroker, EntityMarket, EntityNotification:
		return true
	}
	return false
}

// Entity общий интерфейс типизированных сущностей.
// Document задает явную схему полей сущности, без reflection.
type Entity interface {
	Kind() EntityType
	EntityID() string
	Document() Document
}

// NotificationPreferences настройки каналов уведомлений пользователя.
type NotificationPreferences struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// UserPreferences пользовательские настройки.
type UserPreferences struct {
	Theme         string                  `json:"theme"`
	Language      string                  `json:"language"`
	Notifications NotificationPreferences `json:"notifications"`
}

// User представляет пользователя платформы.
type User struct {
	UpdatedAt    time.Time       `json:"updated_at"`
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	DisplayName  string          `json:"display_name"`
	Role         string          `json:"role"`
	Status       string          `json:"status"`
	PasswordHash string          `json:"-"` // PasswordHash никогда не уходит клиентам
	APIToken     string          `json:"-"` // APIToken никогда не уходит клиентам
	Preferences  UserPreferences `json:"preferences"`
}

func (u *User) Kind() EntityType { return EntityUser }
func (u *User) EntityID() string { return u.ID }

// Document возвращает снимок пользователя.
func (u *User) Document() Document {
	return Document{
		"id":           u.ID,
		"email":        u.Email,
		"displayName":  u.DisplayName,
		"role":         u.Role,
		"status":       u.Status,
		"passwordHash": u.PasswordHash,
		"apiToken":     u.APIToken,
		"preferences": Document{
			"theme":    u.Preferences.Theme,
			"language": u.Preferences.Language,
			"notifications": Document{
				"email": u.Preferences.Notifications.Email,
				"push":  u.Preferences.Notifications.Push,
				"sms":   u.Preferences.Notifications.SMS,
			},
		},
		"updatedAt": u.UpdatedAt.UnixMilli(),
	}
}

// Spreads спреды брокера в пунктах.
type Spreads struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
}

// Broker представляет брокера.
type Broker struct {
	UpdatedAt     time.Time `json:"updated_at"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Country       string    `json:"country"`
	InternalNotes string    `json:"-"`
	Regulators    []string  `json:"regulators"`
	Platforms     []string  `json:"platforms"`
	Spreads       Spreads   `json:"spreads"`
	Rating        float64   `json:"rating"`
	IsActive      bool      `json:"is_active"`
}

func (b *Broker) Kind() EntityType { return EntityBroker }
func (b *Broker) EntityID() string { return b.ID }

// Document возвращает снимок брокера.
func (b *Broker) Document() Document {
	return Document{
		"id":            b.ID,
		"name":          b.Name,
		"country":       b.Country,
		"internalNotes": b.InternalNotes,
		"regulators":    stringsToAny(b.Regulators),
		"platforms":     stringsToAny(b.Platforms),
		"spreads": Document{
			"min": b.Spreads.Min,
			"avg": b.Spreads.Avg,
		},
		"rating":    b.Rating,
		"isActive":  b.IsActive,
		"updatedAt": b.UpdatedAt.UnixMilli(),
	}
}

// Market представляет торговый инструмент и его котировку.
type Market struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	Price     float64   `json:"price"`
	Change24h float64   `json:"change_24h"`
	Volume    float64   `json:"volume"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
}

func (m *Market) Kind() EntityType { return EntityMarket }
func (m *Market) EntityID() string { return m.ID }

// Document возвращает снимок рынка.
func (m *Market) Document() Document {
	return Document{
		"id":        m.ID,
		"symbol":    m.Symbol,
		"name":      m.Name,
		"category":  m.Category,
		"status":    m.Status,
		"price":     m.Price,
		"change24h": m.Change24h,
		"volume":    m.Volume,
		"range": Document{
			"high": m.High,
			"low":  m.Low,
		},
		"updatedAt": m.UpdatedAt.UnixMilli(),
	}
}

// Notification представляет уведомление пользователя.
type Notification struct {
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata"`
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Category  string            `json:"category"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Channel   string            `json:"channel"`
	Priority  int64             `json:"priority"`
	Read      bool              `json:"read"`
}

func (n *Notification) Kind() EntityType { return EntityNotification }
func (n *Notification) EntityID() string { return n.ID }

// Document возвращает снимок уведомления.
// Metadata раскладывается во вложенный Document, чтобы изменения были по полям.
func (n *Notification) Document() Document {
	meta := make(Document, len(n.Metadata))
	for k, v := range n.Metadata {
		meta[k] = v
	}

	return Document{
		"id":        n.ID,
		"userId":    n.UserID,
		"category":  n.Category,
		"title":     n.Title,
		"body":      n.Body,
		"channel":   n.Channel,
		"priority":  n.Priority,
		"read":      n.Read,
		"metadata":  meta,
		"createdAt": n.CreatedAt.UnixMilli(),
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
