package toast

import (
	"sync"
	"sync/atomic"

	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
)

// Hub tracks connected clients and fans toasts out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	down    int32

	dropped func() // drop accounting callback, may be nil
}

func NewHub(dropped func()) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		dropped: dropped,
	}
}

func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	// Checked under the lock: Close holds it while sweeping clients, so an
	// Add racing Close either lands before the sweep or sees down here.
	if atomic.LoadInt32(&h.down) == 1 {
		h.mu.Unlock()
		client.Close()
		return
	}
	h.clients[client.ID] = client
	h.mu.Unlock()
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[id]; ok {
		client.Close()
		delete(h.clients, id)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the toast to every connected client and returns how many
// deliveries were dropped.
func (h *Hub) Broadcast(t *ctypes.Toast) int {
	if atomic.LoadInt32(&h.down) == 1 {
		return 0
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	drops := 0
	for _, c := range clients {
		if !c.Send(t) {
			drops++
			if h.dropped != nil {
				h.dropped()
			}
		}
	}
	return drops
}

// Close shuts the hub and every client; further Adds are rejected.
func (h *Hub) Close() {
	atomic.StoreInt32(&h.down, 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
	}
}
