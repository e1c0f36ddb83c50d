package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrconsole_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrconsole_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	documentChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrconsole_document_changes_total",
		Help: "Committed document changes by entity kind and action",
	}, []string{"kind", "action"})

	storeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hrconsole_store_fallbacks_total",
		Help: "Loads that fell back to the default document",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func ObserveDocumentChange(kind, action string) {
	documentChanges.WithLabelValues(kind, action).Inc()
}

// ObserveStoreFallback counts a load whose stored value could not be used.
func ObserveStoreFallback() {
	storeFallbacks.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// EventHandler counts every entity and session event published on the bus.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleEntityEvent(_ context.Context, event events.Event) error {
	entityEvent, ok := event.(*events.EntityEvent)
	if !ok {
		return fmt.Errorf("expected EntityEvent, got %T", event)
	}
	ObserveDocumentChange(entityEvent.Kind, entityEvent.Action)
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.SubscribeMany(events.AllEntityEventTypes(), h.HandleEntityEvent)
	h.logger.Info("metrics event handlers registered")
}
