package apiserver

import (
	"sync"

	"github.com/hogfinance/hogpool/core/types"
)

const subscriberBuffer = 256

// eventHub fans events out to websocket subscribers. A subscriber that falls
// a full buffer behind misses events instead of blocking the publisher.
type eventHub struct {
	sync.Mutex
	subs map[chan *types.Event]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{
		subs: map[chan *types.Event]struct{}{},
	}
}

func (h *eventHub) subscribe() chan *types.Event {
	h.Lock()
	defer h.Unlock()
	ch := make(chan *types.Event, subscriberBuffer)
	h.subs[ch] = struct{}{}
	return ch
}

func (h *eventHub) unsubscribe(ch chan *types.Event) {
	h.Lock()
	defer h.Unlock()
	if _, has := h.subs[ch]; has {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *eventHub) publish(ev *types.Event) {
	h.Lock()
	defer h.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Warn("publish", "dropped", ev.Type, "height", ev.Height)
		}
	}
}

func (h *eventHub) count() int {
	h.Lock()
	defer h.Unlock()
	return len(h.subs)
}

func (h *eventHub) close() {
	h.Lock()
	defer h.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
