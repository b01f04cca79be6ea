package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type queriesVerifiedCounter struct {
	verified prometheus.Counter
}
type queriesFailedCounter struct {
	failed prometheus.Counter
}
type attestationCheckCounter struct {
	success prometheus.Counter
	failure prometheus.Counter
}

func NewQueriesVerifiedCounter() *queriesVerifiedCounter {
	m := &queriesVerifiedCounter{
		verified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zk_queries_verified",
			Help: "Queries whose results passed full verification",
		}),
	}
	_ = prometheus.Register(m.verified)
	return m
}

func NewQueriesFailedCounter() *queriesFailedCounter {
	m := &queriesFailedCounter{
		failed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zk_queries_failed",
			Help: "Queries rejected at any verification stage",
		}),
	}
	_ = prometheus.Register(m.failed)
	return m
}

func NewAttestationCheckCounter() *attestationCheckCounter {
	m := &attestationCheckCounter{
		success: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attestation_check_success",
			Help: "Attestation bundles that verified",
		}),
		failure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attestation_check_failed",
			Help: "Attestation bundles that failed signature or Merkle checks",
		}),
	}
	_ = prometheus.Register(m.success)
	_ = prometheus.Register(m.failure)
	return m
}
