package events

import (
	"sync"
	"time"

	"github.com/robinjoseph08/golib/logger"
)

// Type identifies what changed.
type Type string

const (
	TypeBookAdded         Type = "book.added"
	TypeBookRemoved       Type = "book.removed"
	TypeBookStatusChanged Type = "book.status_changed"
	TypeBookMemoUpdated   Type = "book.memo_updated"
	TypeBooklistCreated   Type = "booklist.created"
	TypeBooklistDeleted   Type = "booklist.deleted"
	TypeHeartbeat         Type = "heartbeat"
)

// Event is a change notification scoped to a single user's data.
type Event struct {
	Type      Type        `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`

	// UserID scopes delivery; only that user's subscriptions receive it.
	UserID int `json:"-"`
}

// subscriberBuffer is the per-subscription channel depth. Publish never
// blocks; events beyond the buffer are dropped for that subscriber.
const subscriberBuffer = 16

// Subscription is a cancellable handle on a user's event stream. Consumers
// must call Cancel when done.
type Subscription struct {
	C <-chan Event

	once   sync.Once
	cancel func()
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Broker fans events out to per-user subscriptions.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]map[chan Event]struct{}
	closed bool
	log    logger.Logger
}

// NewBroker creates a new event broker.
func NewBroker() *Broker {
	return &Broker{
		subs: map[int]map[chan Event]struct{}{},
		log:  logger.New(),
	}
}

// Subscribe registers a new subscription for the given user's events.
func (b *Broker) Subscribe(userID int) *Subscription {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return &Subscription{C: ch, cancel: func() {}}
	}

	if b.subs[userID] == nil {
		b.subs[userID] = map[chan Event]struct{}{}
	}
	b.subs[userID][ch] = struct{}{}

	return &Subscription{
		C: ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[userID][ch]; !ok {
				return
			}
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			close(ch)
		},
	}
}

// Publish delivers the event to every subscription of its user. Slow
// subscribers have the event dropped rather than blocking the publisher.
func (b *Broker) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for ch := range b.subs[event.UserID] {
		select {
		case ch <- event:
		default:
			b.log.Warn("event dropped for slow subscriber", logger.Data{"type": string(event.Type), "user_id": event.UserID})
		}
	}
}

// Close shuts down the broker and closes every subscription channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, chans := range b.subs {
		for ch := range chans {
			close(ch)
		}
	}
	b.subs = map[int]map[chan Event]struct{}{}
}
