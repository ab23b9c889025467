package xdg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// instructionsTotal counts instructions by kind and by how far they got.
	instructionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xdgtxn_instructions_total",
		Help: "Toplevel instructions by kind and outcome (ready, cancel, applied).",
	}, []string{"kind", "outcome"})

	// configureRequestsTotal counts instructions that had to wait for the client.
	configureRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xdgtxn_configure_requests_total",
		Help: "Configure round trips started by toplevel instructions.",
	}, []string{"kind"})

	// surfaceLocksTotal counts lock operations on surfaces.
	surfaceLocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xdgtxn_surface_locks_total",
		Help: "Surface lock operations by discipline (soft, hard) and op (acquire, release).",
	}, []string{"discipline", "op"})
)

func countLocks(discipline, op string, n int) {
	if n > 0 {
		surfaceLocksTotal.WithLabelValues(discipline, op).Add(float64(n))
	}
}
