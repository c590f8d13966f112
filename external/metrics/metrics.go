// Package metrics is the prometheus external: a private registry, the domain
// counters, and a /metrics route on the shared gin engine.
package metrics

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dfdavila2/workingWithDataInLWC/core"
)

type Metrics struct {
	engine   *gin.Engine
	logger   core.Logger
	registry *prometheus.Registry

	ContactsCreated prometheus.Counter
	ContactFetches  prometheus.Counter
	ToastsPublished *prometheus.CounterVec
	ToastsDropped   prometheus.Counter
}

func New(engine *gin.Engine) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		engine:   engine,
		registry: registry,
		ContactsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacts_created_total",
			Help: "Contacts created through the record-creation endpoint.",
		}),
		ContactFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_list_fetches_total",
			Help: "Contact list queries served.",
		}),
		ToastsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toasts_published_total",
			Help: "Toasts published to the bus, by variant.",
		}, []string{"variant"}),
		ToastsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toasts_dropped_total",
			Help: "Toasts dropped because a client queue was full.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ContactsCreated,
		m.ContactFetches,
		m.ToastsPublished,
		m.ToastsDropped,
	)

	return m
}

func (m *Metrics) Setup(ctx core.AppContext) error {
	m.logger = ctx.Logger().WithComponent("metrics")
	return nil
}

func (m *Metrics) Start(ctx context.Context) error {
	m.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))
	m.logger.Info("metrics endpoint registered")
	return nil
}

func (m *Metrics) Stop(ctx context.Context) error {
	return nil
}

func (m *Metrics) Health(ctx context.Context) error {
	if m.registry == nil {
		return fmt.Errorf("metrics registry not initialized")
	}
	return nil
}
