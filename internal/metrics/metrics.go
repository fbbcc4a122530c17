package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sssd",
			Subsystem: "lifecycle",
			Name:      "actions_total",
			Help:      "Number of dispatched lifecycle actions.",
		}, []string{"action"},
	)
	terminations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sssd",
			Subsystem: "lifecycle",
			Name:      "terminations_total",
			Help:      "Number of termination requests sent to sibling instances.",
		}, []string{"result"},
	)
	daemonSpawns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sssd",
			Subsystem: "lifecycle",
			Name:      "daemon_spawns_total",
			Help:      "Number of detached instance launches.",
		}, []string{"result"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	for _, c := range []prometheus.Collector{actions, terminations, daemonSpawns} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves the default gatherer.
func Handler() http.Handler { return promhttp.Handler() }

// The helpers below no-op until Register has succeeded.

func IncAction(action string) {
	if regOK.Load() {
		actions.WithLabelValues(action).Inc()
	}
}

func IncTermination(ok bool) {
	if regOK.Load() {
		terminations.WithLabelValues(result(ok)).Inc()
	}
}

func IncDaemonSpawn(ok bool) {
	if regOK.Load() {
		daemonSpawns.WithLabelValues(result(ok)).Inc()
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
