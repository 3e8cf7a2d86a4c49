package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics defines the interface for recording application metrics.
type Metrics interface {
	IncPlayersCreated()
	IncMatchesRecorded()
	IncCSVImports()
	AddCSVRowErrors(n int)
	IncBackupsExported()
	IncBackupsImported()
	SetStartupTime(seconds float64)
}

// Service holds the Prometheus collectors.
type Service struct {
	PlayersCreated     prometheus.Counter
	MatchesRecorded    prometheus.Counter
	CSVImports         prometheus.Counter
	CSVRowErrors       prometheus.Counter
	BackupsExported    prometheus.Counter
	BackupsImported    prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
