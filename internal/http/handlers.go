package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/exchange"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// decodeValid decodes the JSON body into v and runs struct validation.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

// writeStoreError maps store sentinel errors onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tournament.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tournament.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, tournament.ErrEmptyName),
		errors.Is(err, tournament.ErrMissingPlayer),
		errors.Is(err, tournament.ErrSamePlayer),
		errors.Is(err, tournament.ErrMissingResult),
		errors.Is(err, tournament.ErrMissingDate):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		if err := s.Store.Clear(); err != nil {
			log.Error("Failed to clear store", "error", err)
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		var players []tournament.Player
		if query != "" {
			players = s.Store.SearchPlayers(query)
		} else {
			players = s.Store.Players()
		}
		if players == nil {
			players = []tournament.Player{}
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := decodeValid(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		player, err := s.Store.AddPlayer(req.Name, req.Email)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncPlayersCreated()
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) EditPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := decodeValid(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		player, err := s.Store.EditPlayer(r.PathValue("id"), req.Name, req.Email)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeletePlayer(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches := s.Store.Matches()
		if matches == nil {
			matches = []tournament.Match{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) RecentMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := tournament.DefaultRecentLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err == nil && parsed > 0 {
				limit = parsed
			} else {
				log.Warn("Invalid 'limit' parameter provided. Using default.", "limit_param", limitStr)
			}
		}
		writeJSON(w, http.StatusOK, tournament.RecentMatches(s.Store.Matches(), limit))
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := decodeValid(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		match, err := s.Store.RecordMatch(req.Player1ID, req.Player2ID, tournament.Result(req.Result), req.Date, req.Notes)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncMatchesRecorded()

		// Notification failures are logged but never fail the mutation.
		player1, _ := s.Store.FindPlayer(match.Player1ID)
		player2, _ := s.Store.FindPlayer(match.Player2ID)
		if err := s.Notifier.SendMatchResult(match, player1, player2); err != nil {
			log.Error("Failed to send match result notification", "error", err, "matchID", match.ID)
		}

		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) RankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranked := tournament.ComputeRanking(s.Store.Players())
		entries := make([]rankingEntry, 0, len(ranked))
		for i, p := range ranked {
			entries = append(entries, rankingEntry{
				Position: i + 1,
				Player:   p,
				WinRate:  tournament.RankingWinRate(p),
			})
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := tournament.ComputeReportStatistics(s.Store.Players(), s.Store.Matches())
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) GetPreferencesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs, err := s.Store.Preferences()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

func (s *Server) SetPreferencesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req preferencesRequest
		if err := decodeValid(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		prefs := tournament.Preferences{DarkMode: req.DarkMode, ViewMode: req.ViewMode, SortBy: req.SortBy}
		if err := s.Store.SetPreferences(prefs); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

func (s *Server) ExportBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, filename, err := exchange.ExportBackup(s.Store.Players(), s.Store.Matches(), time.Now())
		if err != nil {
			log.Error("Failed to export backup", "error", err)
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncBackupsExported()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Error("Failed to write backup response", "error", err)
		}
	}
}

func (s *Server) ImportBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
			return
		}

		backup, err := exchange.ParseBackup(body)
		if err != nil {
			log.Warn("Rejected backup import", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := s.Store.ReplaceAll(backup.Players, backup.Matches); err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncBackupsImported()
		log.Info("Backup imported", "players", len(backup.Players), "matches", len(backup.Matches))
		writeJSON(w, http.StatusOK, importBackupResponse{Players: len(backup.Players), Matches: len(backup.Matches)})
	}
}

func (s *Server) ExportPlayersCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		csv := exchange.ExportPlayersCSV(tournament.ComputeRanking(s.Store.Players()))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\"jogadores-xadrez.csv\"")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, csv)
	}
}

func (s *Server) ExportReportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		csv := exchange.ExportReportCSV(s.Store.Players(), s.Store.Matches(), time.Now())
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\"relatorio-torneio.csv\"")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, csv)
	}
}

func (s *Server) ImportPlayersCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
			return
		}

		rows, err := exchange.ParsePlayersCSV(string(body))
		if err != nil {
			log.Warn("Rejected CSV import", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		summary, err := s.Store.ImportPlayers(rows)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncCSVImports()
		s.Metrics.AddCSVRowErrors(len(summary.Errors))
		log.Info("CSV import finished", "created", summary.Created, "rowErrors", len(summary.Errors))
		writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranked := tournament.ComputeRanking(s.Store.Players())
		if err := s.Notifier.SendLeaderboard(ranked); err != nil {
			log.Error("Failed to send leaderboard notification", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Leaderboard sent!")
	}
}
