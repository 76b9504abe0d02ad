package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	PollsCreated  metrics.Counter
	PollsPassed   metrics.Counter
	PollsRejected metrics.Counter
	PollsExecuted metrics.Counter
	VotesCast     metrics.Counter

	TotalDeposit metrics.Gauge
	TotalShare   metrics.Gauge
}

func (g *GovernanceMetrics) AddPollsCreated(n int) {
	g.PollsCreated.Add(float64(n))
}
func (g *GovernanceMetrics) AddPollsPassed(n int) {
	g.PollsPassed.Add(float64(n))
}
func (g *GovernanceMetrics) AddPollsRejected(n int) {
	g.PollsRejected.Add(float64(n))
}
func (g *GovernanceMetrics) AddPollsExecuted(n int) {
	g.PollsExecuted.Add(float64(n))
}
func (g *GovernanceMetrics) AddVotesCast(n int) {
	g.VotesCast.Add(float64(n))
}
func (g *GovernanceMetrics) SetTotalDeposit(total uint64) {
	g.TotalDeposit.Set(float64(total))
}
func (g *GovernanceMetrics) SetTotalShare(total uint64) {
	g.TotalShare.Set(float64(total))
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		PollsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "polls_created_total",
			Help:      "Total number of created polls.",
		}, []string{}),
		PollsPassed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "polls_passed_total",
			Help:      "Total number of passed polls.",
		}, []string{}),
		PollsRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "polls_rejected_total",
			Help:      "Total number of rejected polls.",
		}, []string{}),
		PollsExecuted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "polls_executed_total",
			Help:      "Total number of executed polls.",
		}, []string{}),
		VotesCast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "votes_cast_total",
			Help:      "Total number of accepted votes.",
		}, []string{}),
		TotalDeposit: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "total_deposit",
			Help:      "Deposits of still-undecided polls.",
		}, []string{}),
		TotalShare: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "total_share",
			Help:      "Total issued governance shares.",
		}, []string{}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		PollsCreated:  discard.NewCounter(),
		PollsPassed:   discard.NewCounter(),
		PollsRejected: discard.NewCounter(),
		PollsExecuted: discard.NewCounter(),
		VotesCast:     discard.NewCounter(),

		TotalDeposit: discard.NewGauge(),
		TotalShare:   discard.NewGauge(),
	}
}
