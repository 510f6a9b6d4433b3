// Package prometheus exports mediator activity as Prometheus metrics by
// installing dispatch, publish and failure hooks.
//
// Use with mediator.New(logger, collector.Options()...).
package prometheus
