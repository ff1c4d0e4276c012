package api

import "github.com/iudanet/deltasync/internal/models"

// WSMessageType тип сообщения WebSocket-канала доставки
type WSMessageType string

// Типы сообщений
const (
	WSHello WSMessageType = "hello" // сервер принял подключение
	WSDelta WSMessageType = "delta" // дельта состояния
	WSError WSMessageType = "error"
)

// WSMessage сообщение, отправляемое сервером клиенту
type WSMessage struct {
	Delta     *models.StateDelta `json:"delta,omitempty"`
	Type      WSMessageType      `json:"type"`
	ClientID  string             `json:"client_id,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp int64              `json:"timestamp"`
}
