package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type CampaignMetrics struct {
	Phase      metrics.Gauge
	Generation metrics.Gauge

	Voters    metrics.Gauge
	Proposals metrics.Gauge
	Votes     metrics.Gauge

	OperationsTotal      metrics.Counter
	OperationErrorsTotal metrics.Counter
	TallyDurationSeconds metrics.Histogram
}

func (c *CampaignMetrics) SetPhase(phase uint) {
	c.Phase.Set(float64(phase))
}
func (c *CampaignMetrics) SetGeneration(generation uint64) {
	c.Generation.Set(float64(generation))
}
func (c *CampaignMetrics) SetVoters(num uint64) {
	c.Voters.Set(float64(num))
}
func (c *CampaignMetrics) SetProposals(num uint64) {
	c.Proposals.Set(float64(num))
}
func (c *CampaignMetrics) SetVotes(num uint64) {
	c.Votes.Set(float64(num))
}
func (c *CampaignMetrics) AddOperation(operation string) {
	c.OperationsTotal.With(CampaignOperation, operation).Add(1)
}
func (c *CampaignMetrics) AddOperationError(operation string) {
	c.OperationErrorsTotal.With(CampaignOperation, operation).Add(1)
}
func (c *CampaignMetrics) ObserveTallySeconds(begin time.Time) {
	c.TallyDurationSeconds.Observe(time.Since(begin).Seconds())
}

func PromCampaignMetrics() *CampaignMetrics {
	return &CampaignMetrics{
		Phase: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "phase",
			Help:      "Current phase of the campaign.",
		}, []string{}),
		Generation: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "generation",
			Help:      "Generation of the campaign.",
		}, []string{}),
		Voters: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "voters",
			Help:      "Number of registered voters.",
		}, []string{}),
		Proposals: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "proposals",
			Help:      "Number of registered proposals.",
		}, []string{}),
		Votes: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "votes",
			Help:      "Number of cast votes.",
		}, []string{}),
		OperationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "operations_total",
			Help:      "Total number of applied operations.",
		}, []string{CampaignOperation}),
		OperationErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "operation_errors_total",
			Help:      "Total number of rejected operations.",
		}, []string{CampaignOperation}),
		TallyDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: CampaignSubsystem,
			Name:      "tally_duration_seconds",
			Help:      "Time counting the votes.",
		}, []string{}),
	}
}

func NopCampaignMetrics() *CampaignMetrics {
	return &CampaignMetrics{
		Phase:      discard.NewGauge(),
		Generation: discard.NewGauge(),

		Voters:    discard.NewGauge(),
		Proposals: discard.NewGauge(),
		Votes:     discard.NewGauge(),

		OperationsTotal:      discard.NewCounter(),
		OperationErrorsTotal: discard.NewCounter(),
		TallyDurationSeconds: discard.NewHistogram(),
	}
}
