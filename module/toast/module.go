// Package toast is the notification module: it accepts toast publishes,
// carries them over the bus, and streams them to connected clients via SSE.
package toast

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dfdavila2/workingWithDataInLWC/config"
	"github.com/dfdavila2/workingWithDataInLWC/core"
	"github.com/dfdavila2/workingWithDataInLWC/external/metrics"
	"github.com/dfdavila2/workingWithDataInLWC/external/redisserver"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
)

type Config struct {
	ClientQueueSize int           `env:"TOAST_CLIENT_QUEUE_SIZE" default:"16"`
	Heartbeat       time.Duration `env:"TOAST_HEARTBEAT" default:"15s"`
}

type Module struct {
	engine  *gin.Engine
	bus     *redisserver.Redis
	metrics *metrics.Metrics
	logger  core.Logger
	cfg     Config

	hub       *Hub
	publisher Publisher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewModule(engine *gin.Engine, bus *redisserver.Redis, m *metrics.Metrics) *Module {
	return &Module{
		engine:  engine,
		bus:     bus,
		metrics: m,
	}
}

func (t *Module) Setup(ctx core.AppContext) error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}
	t.cfg = cfg
	t.logger = ctx.Logger()

	t.hub = NewHub(func() {
		if t.metrics != nil {
			t.metrics.ToastsDropped.Inc()
		}
	})
	t.publisher = NewBusPublisher(t.bus)
	return nil
}

func (t *Module) Start(ctx context.Context) error {
	t.engine.GET("/api/toasts/stream", t.stream)
	t.engine.POST("/api/toasts", t.publish)

	loopCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.wg.Add(1)
	go t.consume(loopCtx)

	t.logger.Info("toast module started")
	return nil
}

func (t *Module) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
	t.hub.Close()
	t.logger.Info("toast module stopped")
	return nil
}

func (t *Module) Health(ctx context.Context) error {
	return nil
}

// Publisher is the injected notification capability other modules use.
func (t *Module) Publisher() Publisher {
	return t.publisher
}

// consume reads toasts off the bus and fans them out to SSE clients.
func (t *Module) consume(ctx context.Context) {
	defer t.wg.Done()

	pubsub := t.bus.Subscribe(ctx, Channel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var toast ctypes.Toast
			if err := json.Unmarshal([]byte(msg.Payload), &toast); err != nil {
				t.logger.Warn("dropping malformed toast", core.Field{Key: "error", Value: err})
				continue
			}
			if drops := t.hub.Broadcast(&toast); drops > 0 {
				t.logger.Warn("toast dropped for slow clients",
					core.Field{Key: "toast_id", Value: toast.ID},
					core.Field{Key: "drops", Value: drops})
			}
		}
	}
}

// publish accepts a toast over HTTP and puts it on the bus.
func (t *Module) publish(c *gin.Context) {
	var toast ctypes.Toast
	if err := c.BindJSON(&toast); err != nil {
		c.JSON(http.StatusBadRequest,
			ctypes.NewErrorResponse(ctypes.CodeBindingError, "error binding request", err.Error()))
		return
	}

	if err := t.publisher.Publish(c.Request.Context(), toast); err != nil {
		c.JSON(http.StatusInternalServerError,
			ctypes.NewErrorResponse(ctypes.CodeInternalError, "failed to publish toast", err.Error()))
		return
	}

	if t.metrics != nil {
		variant := toast.Variant
		if variant == "" {
			variant = ctypes.VariantInfo
		}
		t.metrics.ToastsPublished.WithLabelValues(variant).Inc()
	}

	c.JSON(http.StatusAccepted, ctypes.NewResponse(ctypes.CodeOK, "toast accepted", nil))
}

// stream is the SSE endpoint clients hold open for toasts.
func (t *Module) stream(c *gin.Context) {
	client := NewClient(uuid.NewString(), t.cfg.ClientQueueSize)
	t.hub.Add(client)
	defer t.hub.Remove(client.ID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	heartbeat := time.NewTicker(t.cfg.Heartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case toast, ok := <-client.Queue():
			if !ok {
				return false
			}
			c.SSEvent("toast", toast)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
