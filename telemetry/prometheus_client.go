package telemetry

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var queriesVerified *queriesVerifiedCounter
var queriesFailed *queriesFailedCounter
var attestationChecks *attestationCheckCounter

func IncrementQueriesVerified() {
	if queriesVerified != nil {
		queriesVerified.verified.Inc()
	}
}

func IncrementQueriesFailed() {
	if queriesFailed != nil {
		queriesFailed.failed.Inc()
	}
}

func IncrementAttestationCheckSuccess() {
	if attestationChecks != nil {
		attestationChecks.success.Inc()
	}
}

func IncrementAttestationCheckFail() {
	if attestationChecks != nil {
		attestationChecks.failure.Inc()
	}
}

// StartClient registers the counters and serves /metrics. Counters are
// no-ops until this runs, so library consumers pay nothing.
func StartClient(listenAddr string) {
	queriesVerified = NewQueriesVerifiedCounter()
	queriesFailed = NewQueriesFailedCounter()
	attestationChecks = NewAttestationCheckCounter()

	http.Handle("/metrics", promhttp.Handler())
	log.Fatalln(http.ListenAndServe(listenAddr, nil))
}
