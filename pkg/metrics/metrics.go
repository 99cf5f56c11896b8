package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsSubmitted counts job submissions relayed upstream, per provider.
	JobsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wewear_jobs_submitted_total",
		Help: "Job submissions relayed to a provider.",
	}, []string{"provider", "outcome"})

	// Polls counts status fetches issued by stream sessions.
	Polls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wewear_status_polls_total",
		Help: "Status polls issued on behalf of event-stream subscribers.",
	}, []string{"provider", "outcome"})

	// Downloads counts download-relay requests.
	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wewear_downloads_total",
		Help: "Result files relayed through the download endpoint.",
	}, []string{"outcome"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
