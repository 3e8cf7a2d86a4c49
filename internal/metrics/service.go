package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_players_created_total",
			Help: "The total number of players created, including CSV imports.",
		}),
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_matches_recorded_total",
			Help: "The total number of matches recorded.",
		}),
		CSVImports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_csv_imports_total",
			Help: "The total number of CSV import batches processed.",
		}),
		CSVRowErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_csv_import_row_errors_total",
			Help: "The total number of CSV rows rejected during import.",
		}),
		BackupsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_backups_exported_total",
			Help: "The total number of JSON backups exported.",
		}),
		BackupsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chess_backups_imported_total",
			Help: "The total number of JSON backups imported.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chess_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersCreated,
		s.MatchesRecorded,
		s.CSVImports,
		s.CSVRowErrors,
		s.BackupsExported,
		s.BackupsImported,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersCreated() {
	s.PlayersCreated.Inc()
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncCSVImports() {
	s.CSVImports.Inc()
}

func (s *Service) AddCSVRowErrors(n int) {
	s.CSVRowErrors.Add(float64(n))
}

func (s *Service) IncBackupsExported() {
	s.BackupsExported.Inc()
}

func (s *Service) IncBackupsImported() {
	s.BackupsImported.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
