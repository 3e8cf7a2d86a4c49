package http

import (
	"net/http"

	"github.com/bfontes/chess-scorekeeper/internal/config"
	"github.com/bfontes/chess-scorekeeper/internal/metrics"
	"github.com/bfontes/chess-scorekeeper/internal/notifier"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
)

// Server is the HTTP presentation adapter over the tournament core.
type Server struct {
	Store          *tournament.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}

type playerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email"`
}

type matchRequest struct {
	Player1ID string `json:"player1Id" validate:"required"`
	Player2ID string `json:"player2Id" validate:"required"`
	Result    string `json:"result" validate:"required,oneof=player1 player2 draw"`
	Date      string `json:"date" validate:"required"`
	Notes     string `json:"notes"`
}

type preferencesRequest struct {
	DarkMode bool   `json:"darkMode"`
	ViewMode string `json:"viewMode" validate:"required,oneof=grid list"`
	SortBy   string `json:"sortBy" validate:"required,oneof=name points wins matches"`
}

// rankingEntry is one row of the ranking table. WinRate carries the
// one-decimal rounding used by this view.
type rankingEntry struct {
	Position int `json:"position"`
	tournament.Player
	WinRate float64 `json:"winRate"`
}

type importBackupResponse struct {
	Players int `json:"players"`
	Matches int `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}
