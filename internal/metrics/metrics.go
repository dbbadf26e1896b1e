// Package metrics - Prometheus-счётчики казино
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "casino"

var BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "bets_settled_total",
	Help:      "Settled bets by game and result.",
}, []string{"game", "result"})

var Wagered = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "wagered_coins_total",
	Help:      "Coins staked by game.",
}, []string{"game"})

var PaidOut = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "paid_out_coins_total",
	Help:      "Coins returned to players by game, stake included.",
}, []string{"game"})

var Transfers = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "transfers_total",
	Help:      "Completed transfers between accounts.",
})

var DailyClaims = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "daily_claims_total",
	Help:      "Accepted daily reward claims.",
})

var Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "rejections_total",
	Help:      "Rejected ledger operations by reason.",
}, []string{"operation", "reason"})

var ConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "conflict_retries_total",
	Help:      "Atomic units retried after a concurrency conflict.",
})

var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "achievements",
	Name:      "unlocked_total",
	Help:      "Unlocked achievements by key.",
}, []string{"key"})

var SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "sessions",
	Name:      "active",
	Help:      "Live multi-step game sessions.",
})

var SessionTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sessions",
	Name:      "timeouts_total",
	Help:      "Sessions settled by move timeout, by game and policy.",
}, []string{"game", "policy"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})
