package quality

import (
	"sync"

	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
)

// DefaultSubscriberBuffer размер буфера подписчика по умолчанию
const DefaultSubscriberBuffer = 64

// EventType тип события монитора.
type EventType string

// Типы событий
const (
	EventQualityUpdated      EventType = "quality_updated"
	EventAlert               EventType = "alert"
	EventFallbackActivated   EventType = "fallback_activated"
	EventFallbackDeactivated EventType = "fallback_deactivated"
)

// Event событие качества соединения для подписчиков.
type Event struct {
	Metrics   *models.ConnectionQualityMetrics
	Alert     *models.ConnectionQualityAlert
	Type      EventType
	ClientID  string
	Reasons   []string
	Timestamp int64
}

type subscriber struct {
	ch   chan Event
	once sync.Once
}

// Bus рассылает события подписчикам. Publish никогда не блокируется:
// если буфер подписчика заполнен, событие отбрасывается.
type Bus struct {
	subs    map[uint64]*subscriber
	metrics *metrics.Metrics
	mu      sync.RWMutex
	nextID  uint64
	closed  bool
}

// NewBus creates an event bus. m may be nil.
func NewBus(m *metrics.Metrics) *Bus {
	return &Bus{
		subs:    make(map[uint64]*subscriber),
		metrics: m,
	}
}

// Subscribe registers a subscriber. The returned cancel func removes it
// and closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	sub := &subscriber{ch: make(chan Event, buffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
	}
	return sub.ch, cancel
}

// Publish delivers ev to every subscriber with free buffer space
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- ev:
		default:
			b.metrics.IncEventsDropped()
		}
	}
}

// Subscribers returns the number of active subscribers
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel; later subscriptions get a closed channel
func (b *Bus) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*subscriber)
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() { close(sub.ch) })
	}
}
