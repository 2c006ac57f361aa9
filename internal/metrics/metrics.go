// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// GateDecisions counts edge gate outcomes by decision
	// (pass, login_page, login_redirect, root_redirect, admin_redirect).
	GateDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propertypinoy",
		Name:      "gate_decisions_total",
		Help:      "Admin gate decisions by outcome.",
	}, []string{"decision"})

	UserCreations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propertypinoy",
		Name:      "user_creations_total",
		Help:      "Admin user creation attempts by outcome.",
	}, []string{"outcome"})

	ContactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propertypinoy",
		Name:      "contact_submissions_total",
		Help:      "Contact form submissions by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(GateDecisions, UserCreations, ContactSubmissions)
}
