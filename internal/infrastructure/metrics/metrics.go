package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizmatch_http_requests_total",
		Help: "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quizmatch_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizmatch_rooms_created_total",
		Help: "Rooms created since start.",
	})

	RoomsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizmatch_rooms_joined_total",
		Help: "Successful room joins since start.",
	})

	RoomsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizmatch_rooms_swept_total",
		Help: "Expired rooms removed by the background sweep.",
	})

	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quizmatch_rooms_active",
		Help: "Live (non-expired) rooms.",
	})

	QuizzesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizmatch_quizzes_created_total",
		Help: "Quizzes created since start.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
