package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rankRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_rank_requests_total",
		Help: "Ranking requests served, by kind.",
	}, []string{"kind"})

	graphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_graph_nodes",
		Help: "Node count of the currently loaded snapshot.",
	})

	ingestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_ingest_record_errors_total",
		Help: "Dataset records skipped during ingestion.",
	})
)
