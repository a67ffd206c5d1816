package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecash_herald"

var (
	latestHeightTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "latest_height_total",
		Help:      "Count of chain tip lookups.",
	}, []string{"network", "status"})

	latestHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "latest_height_duration_seconds",
		Help:      "Duration of chain tip lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	blocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "blocks_total",
		Help:      "Count of handled blocks by outcome.",
	}, []string{"network", "status"})

	blockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "block_duration_seconds",
		Help:      "Duration of heralding one block, lock to mark.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"network", "status"})

	messagesPerBlock = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "messages_per_block",
		Help:      "Number of messages composed per block.",
		Buckets:   prometheus.LinearBuckets(1, 1, 8),
	}, []string{"network"})

	sendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "delivery",
		Name:      "send_total",
		Help:      "Count of herald deliveries by transport.",
	}, []string{"network", "transport", "status"})

	snapshotTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "fetch_total",
		Help:      "Count of token metadata and price snapshot fetches.",
	}, []string{"network", "kind", "status"})
)

// Herald tracks the follower loop and per-block pipeline.
type Herald struct {
	network string
}

// NewHerald constructs a Herald collector.
func NewHerald(network string) *Herald {
	return &Herald{network: orUnknown(network)}
}

// ObserveLatestHeight records a chain tip lookup.
func (m Herald) ObserveLatestHeight(err error, started time.Time) {
	status := statusOf(err)
	latestHeightTotal.WithLabelValues(m.network, status).Inc()
	latestHeightDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveBlock records the outcome of one block: delivered, rejected, skipped or failed.
func (m Herald) ObserveBlock(status string, started time.Time) {
	blocksTotal.WithLabelValues(m.network, status).Inc()
	blockDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

func (m Herald) ObserveMessages(count int) {
	messagesPerBlock.WithLabelValues(m.network).Observe(float64(count))
}

func (m Herald) ObserveDelivery(transport string, err error) {
	sendTotal.WithLabelValues(m.network, transport, statusOf(err)).Inc()
}

func (m Herald) ObserveSnapshot(kind string, err error) {
	snapshotTotal.WithLabelValues(m.network, kind, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
