// Package monitor exposes prometheus and expvar metrics. The Monitor
// satisfies the engine's Observer interface, so every room's game
// reports rolls, auctions, trades and eliminations here.
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlinePlayers prometheus.Gauge
	ActiveRooms   prometheus.Gauge

	MessagesReceived prometheus.Counter
	MessageLatency   prometheus.Histogram

	RollsTotal        prometheus.Counter
	DoublesTotal      prometheus.Counter
	AuctionsTotal     *prometheus.CounterVec
	TradesTotal       prometheus.Counter
	BankruptciesTotal prometheus.Counter
	GamesFinished     prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of online players",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of active rooms",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of messages received",
		}),
		MessageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_latency_seconds",
			Help:      "Message processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		RollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Total dice rolls across all games",
		}),
		DoublesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doubles_total",
			Help:      "Total doubles rolled across all games",
		}),
		AuctionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auctions_total",
			Help:      "Auctions closed, partitioned by outcome",
		}, []string{"outcome"}),
		TradesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Trades settled across all games",
		}),
		BankruptciesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bankruptcies_total",
			Help:      "Players eliminated across all games",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games played to a winner",
		}),
	}

	prometheus.MustRegister(
		m.OnlinePlayers,
		m.ActiveRooms,
		m.MessagesReceived,
		m.MessageLatency,
		m.RollsTotal,
		m.DoublesTotal,
		m.AuctionsTotal,
		m.TradesTotal,
		m.BankruptciesTotal,
		m.GamesFinished,
	)

	return m
}

type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))
	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))

	go http.ListenAndServe(addr, nil)
}

func (m *Monitor) IncOnlinePlayers() {
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.MessagesReceived.Inc()
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

func (m *Monitor) ObserveMessageLatency(duration time.Duration) {
	m.metrics.MessageLatency.Observe(duration.Seconds())
}

// --- engine.Observer ---

func (m *Monitor) RollObserved(total int, isDouble bool) {
	m.metrics.RollsTotal.Inc()
	if isDouble {
		m.metrics.DoublesTotal.Inc()
	}
}

func (m *Monitor) AuctionClosed(sold bool) {
	outcome := "unsold"
	if sold {
		outcome = "sold"
	}
	m.metrics.AuctionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Monitor) TradeSettled() {
	m.metrics.TradesTotal.Inc()
}

func (m *Monitor) PlayerBankrupted(seat int) {
	m.metrics.BankruptciesTotal.Inc()
}

func (m *Monitor) GameEnded(winnerSeat int) {
	m.metrics.GamesFinished.Inc()
}
