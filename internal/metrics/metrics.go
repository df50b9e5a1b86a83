package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PeersConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_peers_connected",
			Help: "Number of currently connected sync peers",
		},
	)
	EventsRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_events_relayed_total",
			Help: "Total number of playback events relayed to other peers",
		},
		[]string{"type"},
	)
	RelayErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_relay_errors_total",
			Help: "Total number of failed event deliveries",
		},
		[]string{"type"},
	)
	VideoRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_requests_total",
			Help: "Total number of video delivery requests",
		},
		[]string{"status"},
	)
	VideoBytesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_bytes_sent_total",
			Help: "Total number of video bytes written to clients",
		},
	)
)

func init() {
	prometheus.MustRegister(PeersConnected)
	prometheus.MustRegister(EventsRelayed)
	prometheus.MustRegister(RelayErrors)
	prometheus.MustRegister(VideoRequests)
	prometheus.MustRegister(VideoBytesSent)
}
