// realtime/hub.go
package realtime

import (
	"sync"

	"darkzone-stats-server/utils"

	"github.com/sirupsen/logrus"
)

// ChannelUpdates is the only broadcast channel the service currently has.
const ChannelUpdates = "updates"

// Envelope is the wire frame sent to subscribers.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Subscriber is one connected client's outbox. Broadcasts are push-only and
// fire-and-forget: a subscriber that stops draining its outbox loses frames.
type Subscriber struct {
	send     chan Envelope
	done     chan struct{}
	closeOne sync.Once
	channels map[string]bool
}

// Updates returns the stream of envelopes for this subscriber.
func (s *Subscriber) Updates() <-chan Envelope {
	return s.send
}

// Close marks the subscriber dead. Safe to call more than once.
func (s *Subscriber) Close() {
	s.closeOne.Do(func() { close(s.done) })
}

// Hub is the broadcast registry: it tracks connected subscribers, which
// channels each has joined, and fans updates out to them. All methods are
// safe for concurrent use.
type Hub struct {
	logger *logrus.Entry

	mu          sync.RWMutex
	subscribers map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{
		logger: utils.Logger.WithFields(logrus.Fields{
			"module": "realtime.Hub",
		}),
		subscribers: make(map[string]*Subscriber),
	}
}

// Register adds a connection to the hub. The connection receives nothing
// until it joins a channel via Subscribe.
func (h *Hub) Register(id string) *Subscriber {
	sub := &Subscriber{
		send:     make(chan Envelope, 16),
		done:     make(chan struct{}),
		channels: make(map[string]bool),
	}

	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()

	h.logger.WithField("client_id", id).Debug("registered")
	return sub
}

// Unregister drops a connection. Called on disconnect, which is also the
// only way to leave a channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		sub.Close()
	}
	h.logger.WithField("client_id", id).Debug("unregistered")
}

// Subscribe joins a connection to a named channel.
func (h *Hub) Subscribe(id, channel string) {
	h.mu.Lock()
	if sub, ok := h.subscribers[id]; ok {
		sub.channels[channel] = true
	}
	h.mu.Unlock()

	h.logger.WithFields(logrus.Fields{
		"client_id": id,
		"channel":   channel,
	}).Debug("subscribed")
}

// Broadcast fans an event out to every subscriber of the channel. Dead
// subscribers found along the way are swept from the registry; slow ones
// have the frame dropped rather than blocking the tick.
func (h *Hub) Broadcast(channel, event string, data interface{}) {
	env := Envelope{Event: event, Data: data}
	var deadIDs []string

	h.mu.RLock()
	for id, sub := range h.subscribers {
		if !sub.channels[channel] {
			continue
		}
		// liveness first: a closed subscriber with outbox capacity must be
		// swept, not handed the frame
		select {
		case <-sub.done:
			deadIDs = append(deadIDs, id)
			continue
		default:
		}
		select {
		case sub.send <- env:
		default:
			h.logger.WithField("client_id", id).Debug("outbox full, frame dropped")
		}
	}
	h.mu.RUnlock()

	if len(deadIDs) == 0 {
		return
	}

	h.mu.Lock()
	for _, id := range deadIDs {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	h.logger.WithField("count", len(deadIDs)).Debug("swept dead subscribers")
}

// SubscriberCount returns the number of registered connections.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
