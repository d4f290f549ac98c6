// Package network holds the fan-out layer between game sessions and their
// websocket connections.
package network

import (
	"sync"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/api"
)

// Broadcaster routes server responses to per-entity subscriber channels.
// The write pumps consume the channels; a slow consumer drops messages
// rather than blocking the sender.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[domain.EntityID]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[domain.EntityID]chan api.ServerResponse),
	}
}

// Register creates the personal channel for an entity, replacing and
// closing any previous one.
func (b *Broadcaster) Register(id domain.EntityID) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = ch
	return ch
}

// Unregister closes and removes the subscriber.
func (b *Broadcaster) Unregister(id domain.EntityID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo delivers a snapshot to one subscriber, dropping it if the channel
// is full.
func (b *Broadcaster) SendTo(id domain.EntityID, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports the number of connected subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
