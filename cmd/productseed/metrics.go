package main

import (
	"productseed/internal/metrics"
	"productseed/internal/metrics/datadog"
	"productseed/internal/metrics/prompush"
)

// setupMetrics installs the selected backend and returns the flush to defer.
// A backend that fails to initialize leaves the nop backend in place.
func (a *app) setupMetrics(job string) func() {
	log := a.log.WithField("metrics_backend", a.metricsBackend)

	var (
		b   metrics.Backend
		err error
	)
	switch a.metricsBackend {
	case "pushgateway":
		b, err = prompush.NewBackend(job, a.pushgatewayURL)
		log = log.WithField("url", a.pushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       a.statsdAddr,
			Namespace:  "productseed.",
			GlobalTags: []string{"job:" + job},
		})
		log = log.WithField("addr", a.statsdAddr)
	case "", "none":
		log.Debug("metrics disabled")
		return func() {}
	default:
		log.Warn("unknown metrics backend; metrics disabled")
		return func() {}
	}
	if err != nil {
		log.WithError(err).Warn("metrics backend init failed; using nop")
		return func() {}
	}

	metrics.SetBackend(b)
	log.Debug("metrics enabled")
	return func() {
		if err := metrics.Flush(); err != nil {
			log.WithError(err).Warn("metrics flush failed")
		}
	}
}
