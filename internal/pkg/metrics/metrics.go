package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Command Metrics
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_commands_total",
			Help: "Total number of session commands by outcome",
		},
		[]string{"command", "status"},
	)

	CommandRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_command_rejections_total",
			Help: "Total number of rejected session commands by reason",
		},
		[]string{"command", "reason"},
	)

	MovementAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankist_movement_amount",
			Help:    "Amounts of movements appended to the ledger",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
		},
		[]string{"type", "currency"},
	)

	// Loan Metrics
	LoansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_loans_total",
			Help: "Total number of loans by lifecycle stage",
		},
		[]string{"status"},
	)

	PendingLoans = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bankist_pending_loans",
			Help: "Number of loans waiting to be granted",
		},
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bankist_active_sessions",
			Help: "Number of logged-in sessions",
		},
	)

	SessionEndsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_session_ends_total",
			Help: "Total number of sessions ended other than by re-login",
		},
		[]string{"reason"},
	)

	// Authentication Metrics
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"},
	)

	AuthTokensGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankist_auth_tokens_generated_total",
			Help: "Total number of JWT tokens generated",
		},
	)

	// Account Metrics
	AccountsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bankist_accounts_total",
			Help: "Total number of active accounts",
		},
	)

	// System Metrics
	SystemInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bankist_system_info",
			Help: "System information",
		},
		[]string{"version", "commit_sha", "go_version"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCommand records an applied session command
func RecordCommand(command string) {
	CommandsTotal.WithLabelValues(command, "applied").Inc()
}

// RecordRejection records a command that failed its guard
func RecordRejection(command, reason string) {
	CommandsTotal.WithLabelValues(command, "rejected").Inc()
	CommandRejections.WithLabelValues(command, reason).Inc()
}

// RecordMovement records a ledger entry amount
func RecordMovement(movementType, currency string, amount float64) {
	MovementAmount.WithLabelValues(movementType, currency).Observe(amount)
}

// RecordLoan records a loan lifecycle step and keeps the pending gauge in sync
func RecordLoan(status string) {
	LoansTotal.WithLabelValues(status).Inc()
	switch status {
	case "requested":
		PendingLoans.Inc()
	case "granted", "canceled":
		PendingLoans.Dec()
	}
}

// RecordSessionStart marks a session as active
func RecordSessionStart() {
	ActiveSessions.Set(1)
}

// RecordSessionEnd marks the session as ended
func RecordSessionEnd(reason string) {
	ActiveSessions.Set(0)
	SessionEndsTotal.WithLabelValues(reason).Inc()
}

// RecordAuthAttempt records authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	AuthAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordAuthTokenGenerated records JWT token generation
func RecordAuthTokenGenerated() {
	AuthTokensGenerated.Inc()
}

// UpdateAccountMetrics sets the number of active accounts
func UpdateAccountMetrics(count int) {
	AccountsTotal.Set(float64(count))
}

// SetSystemInfo sets system information metrics
func SetSystemInfo(version, commitSHA, goVersion string) {
	SystemInfo.WithLabelValues(version, commitSHA, goVersion).Set(1)
}
