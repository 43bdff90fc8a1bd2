// Package metrics регистрирует метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests число обработанных HTTP-запросов.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of handled HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration время обработки HTTP-запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// VerificationTransitions переходы процесса верификации.
	VerificationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_transitions_total",
		Help: "Verification workflow transitions.",
	}, []string{"transition"})

	// NotificationsSent отправленные письма по результату обработки.
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Emails handled by notification-sender.",
	}, []string{"result"})
)

// Переходы верификации.
const (
	TransitionSubmitted       = "submitted"
	TransitionApproved        = "approved"
	TransitionAlreadyVerified = "already_verified"
	TransitionRejected        = "rejected"
)
