// Package contacts is the record module: contact creation, the list query
// backing the contact table, and a summary fed by a refresh-on-write
// subscription.
package contacts

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/dfdavila2/workingWithDataInLWC/core"
	"github.com/dfdavila2/workingWithDataInLWC/external/metrics"
	"github.com/dfdavila2/workingWithDataInLWC/module/toast"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/lds"
)

type Module struct {
	engine    *gin.Engine
	store     Store
	publisher toast.Publisher
	metrics   *metrics.Metrics
	logger    core.Logger

	// listSub re-fires the list query after every write; observers get the
	// fresh result or the failure payload.
	listSub *lds.Subscription[[]Contact]
	count   atomic.Int64
}

func NewModule(engine *gin.Engine, store Store, publisher toast.Publisher, m *metrics.Metrics) *Module {
	return &Module{
		engine:    engine,
		store:     store,
		publisher: publisher,
		metrics:   m,
	}
}

func (m *Module) Setup(ctx core.AppContext) error {
	m.logger = ctx.Logger()

	m.listSub = lds.NewSubscription(m.store.List)
	m.listSub.Subscribe(func(result lds.Result[[]Contact]) {
		if result.Failed() {
			// Reduced by the toast helper; the raw error stays in the logs.
			m.logger.Error("contact list refresh failed", core.Field{Key: "error", Value: result.Err})
			m.notify(context.Background(), toast.Error("Error loading contacts", result.Err))
			return
		}
		m.count.Store(int64(len(result.Data)))
	})

	return nil
}

func (m *Module) Start(ctx context.Context) error {
	m.engine.GET("/api/contacts", m.list)
	m.engine.POST("/api/contacts", m.create)
	m.engine.GET("/api/contacts/summary", m.summary)
	m.engine.GET("/api/contacts/:id", m.get)

	m.listSub.Refresh(ctx)
	m.logger.Info("contacts module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	return nil
}

func (m *Module) Health(ctx context.Context) error {
	return nil
}

// notify raises a toast; a failing notification is logged, never surfaced,
// so it cannot become a secondary failure on the request path.
func (m *Module) notify(ctx context.Context, t ctypes.Toast) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, t); err != nil {
		m.logger.Warn("failed to publish toast",
			core.Field{Key: "title", Value: t.Title},
			core.Field{Key: "error", Value: err})
	}
}

// CreateRequest is the record-creation form payload.
type CreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Validate returns per-field error messages, keyed the way the error
// payload's fieldErrors mapping expects.
func (r CreateRequest) Validate() map[string][]string {
	fields := make(map[string][]string)

	if strings.TrimSpace(r.FirstName) == "" {
		fields["FirstName"] = append(fields["FirstName"], "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["LastName"] = append(fields["LastName"], "Last name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["Email"] = append(fields["Email"], "Email is required")
	} else if !strings.Contains(r.Email, "@") {
		fields["Email"] = append(fields["Email"], "Email is invalid")
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
