package httpclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ssrfguard_requests_total",
			Help: "Outbound requests by policy outcome",
		},
		[]string{"outcome"},
	)

	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ssrfguard_rejections_total",
			Help: "Rejected outbound requests by rejection reason",
		},
		[]string{"reason"},
	)
)

func recordAllowed() {
	requestsTotal.WithLabelValues("allowed").Inc()
}

func recordRejection(err error) {
	requestsTotal.WithLabelValues("rejected").Inc()

	reason := urlpolicy.ReasonOf(err)
	if reason == "" {
		// Empty or unparsable URLs carry no rejection reason.
		reason = "invalid_input"
	}
	rejectionsTotal.WithLabelValues(string(reason)).Inc()
}
