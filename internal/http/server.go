package http

import (
	"net/http"

	"github.com/bfontes/chess-scorekeeper/internal/config"
	"github.com/bfontes/chess-scorekeeper/internal/metrics"
	"github.com/bfontes/chess-scorekeeper/internal/notifier"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
)

func NewServer(store *tournament.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PUT /players/{id}", Chain(s.EditPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players/{id}", Chain(s.DeletePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/recent", Chain(s.RecentMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.RecordMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking", Chain(s.RankingHandler(), paramsMiddleware))
	s.Router.Handle("GET /report", Chain(s.ReportHandler(), paramsMiddleware))
	s.Router.Handle("GET /preferences", Chain(s.GetPreferencesHandler(), paramsMiddleware))
	s.Router.Handle("PUT /preferences", Chain(s.SetPreferencesHandler(), paramsMiddleware))
	s.Router.Handle("GET /export/backup", Chain(s.ExportBackupHandler(), paramsMiddleware))
	s.Router.Handle("POST /import/backup", Chain(s.ImportBackupHandler(), paramsMiddleware))
	s.Router.Handle("GET /export/players.csv", Chain(s.ExportPlayersCSVHandler(), paramsMiddleware))
	s.Router.Handle("GET /export/report.csv", Chain(s.ExportReportCSVHandler(), paramsMiddleware))
	s.Router.Handle("POST /import/players.csv", Chain(s.ImportPlayersCSVHandler(), paramsMiddleware))
	s.Router.Handle("POST /notify/leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
