package toast

import (
	"sync/atomic"
	"time"

	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
)

// Client is one connected SSE consumer with a buffered toast queue. Toasts
// are fire-and-forget: when the queue is full the toast is dropped for this
// client rather than blocking the broadcaster.
type Client struct {
	ID          string
	ConnectedAt time.Time

	queue  chan *ctypes.Toast
	closed int32
}

func NewClient(id string, queueSize int) *Client {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Client{
		ID:          id,
		ConnectedAt: time.Now(),
		queue:       make(chan *ctypes.Toast, queueSize),
	}
}

// Send enqueues a toast without blocking. It reports false when the client
// is closed or its queue is full.
func (c *Client) Send(t *ctypes.Toast) bool {
	if atomic.LoadInt32(&c.closed) == 1 {
		return false
	}
	select {
	case c.queue <- t:
		return true
	default:
		return false
	}
}

// Queue is the receive side consumed by the SSE handler.
func (c *Client) Queue() <-chan *ctypes.Toast {
	return c.queue
}

func (c *Client) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// Close is idempotent; the queue is closed exactly once.
func (c *Client) Close() {
	if atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		close(c.queue)
	}
}
