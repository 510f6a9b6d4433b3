package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/mediator"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Collector turns mediator hooks into Prometheus metrics.
type Collector struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	publishTotal     *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
}

// New creates a Collector whose metric names start with namespace
// (for example "mediate").
func New(namespace string) *Collector {
	return &Collector{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_total",
				Help:      "Total number of dispatched requests by kind and status",
			},
			[]string{"request", "status"},
		),
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Request pipeline duration distribution",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"request"},
		),
		publishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_total",
				Help:      "Total number of published notifications by kind and status",
			},
			[]string{"notification", "status"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Handler failures by dispatched kind, failure kind and whether an error handler handled them",
			},
			[]string{"dispatched", "failure", "handled"},
		),
	}
}

// Register registers all mediator metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.dispatchTotal,
		c.dispatchDuration,
		c.publishTotal,
		c.failuresTotal,
	}

	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Options returns the hooks that feed c.
func (c *Collector) Options() []mediator.Option {
	return []mediator.Option{
		mediator.WithOnDispatch(c.observeDispatch),
		mediator.WithOnPublish(c.observePublish),
		mediator.WithOnFailure(c.observeFailure),
	}
}

func (c *Collector) observeDispatch(_ context.Context, request kind.Kind, d time.Duration, err error) {
	c.dispatchTotal.WithLabelValues(request.String(), status(err)).Inc()
	c.dispatchDuration.WithLabelValues(request.String()).Observe(d.Seconds())
}

func (c *Collector) observePublish(_ context.Context, notification kind.Kind, _ int, _ time.Duration, err error) {
	c.publishTotal.WithLabelValues(notification.String(), status(err)).Inc()
}

func (c *Collector) observeFailure(_ context.Context, dispatched, failure kind.Kind, handled bool) {
	c.failuresTotal.WithLabelValues(dispatched.String(), failure.String(), strconv.FormatBool(handled)).Inc()
}

func status(err error) string {
	if err != nil {
		return statusError
	}

	return statusSuccess
}
