package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	OutcomeSent        = "sent"
	OutcomeInvalid     = "invalid"
	OutcomeSendFailed  = "send_failed"
	OutcomeRateLimited = "rate_limited"
	OutcomeSpam        = "spam"
)

var (
	once sync.Once

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftstatic",
			Name:      "form_submissions_total",
			Help:      "Form submissions by form and outcome.",
		},
		[]string{"form", "outcome"},
	)

	dispatchSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swiftstatic",
			Name:      "email_dispatch_seconds",
			Help:      "Time spent handing a notification to the mail provider.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"form"},
	)

	alertFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftstatic",
			Name:      "alert_failures_total",
			Help:      "Operator alerts that could not be delivered.",
		},
		[]string{"channel"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(submissions, dispatchSeconds, alertFailures)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncSubmission(form, outcome string) {
	submissions.WithLabelValues(form, outcome).Inc()
}

func ObserveDispatch(form string, d time.Duration) {
	dispatchSeconds.WithLabelValues(form).Observe(d.Seconds())
}

func IncAlertFailure(channel string) {
	alertFailures.WithLabelValues(channel).Inc()
}
