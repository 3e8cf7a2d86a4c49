package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bfontes/chess-scorekeeper/internal/config"
	"github.com/bfontes/chess-scorekeeper/internal/database"
	"github.com/bfontes/chess-scorekeeper/internal/kvstore"
	"github.com/bfontes/chess-scorekeeper/internal/metrics"
	"github.com/bfontes/chess-scorekeeper/internal/notifier"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock collaborators.
func setupTestServer(t *testing.T) (*Server, *metrics.Mock, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store, err := tournament.New(kvstore.New(db))
	require.NoError(t, err)

	metricsMock := metrics.NewMock()
	notifierMock := notifier.NewMock()
	server := NewServer(store, metricsMock, metrics.NewMetricsHandler(), config.Config{}, notifierMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, metricsMock, notifierMock, teardown
}

func doJSON(t *testing.T, server *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func addPlayer(t *testing.T, server *Server, name, email string) tournament.Player {
	t.Helper()
	rr := doJSON(t, server, "POST", "/players", fmt.Sprintf(`{"name":%q,"email":%q}`, name, email))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var player tournament.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	return player
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doJSON(t, server, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestAddPlayerHandler(t *testing.T) {
	server, metricsMock, _, teardown := setupTestServer(t)
	defer teardown()

	player := addPlayer(t, server, "Anna", "anna@club.org")
	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "Anna", player.Name)
	assert.Equal(t, 1, metricsMock.PlayersCreatedCount)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/players", `{"name":"anna"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/players", `{"email":"x@y.z"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestEditPlayerHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	player := addPlayer(t, server, "Anna", "")

	rr := doJSON(t, server, "PUT", "/players/"+player.ID, `{"name":"Anna K","email":"ak@club.org"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated tournament.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Anna K", updated.Name)
	assert.Equal(t, "ak@club.org", updated.Email)

	t.Run("unknown player", func(t *testing.T) {
		rr := doJSON(t, server, "PUT", "/players/nope", `{"name":"Ghost"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeletePlayerHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	anna := addPlayer(t, server, "Anna", "")
	boris := addPlayer(t, server, "Boris", "")

	body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"player1","date":"2026-08-30"}`, anna.ID, boris.ID)
	require.Equal(t, http.StatusCreated, doJSON(t, server, "POST", "/matches", body).Code)

	rr := doJSON(t, server, "DELETE", "/players/"+anna.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var matches []tournament.Match
	rr = doJSON(t, server, "GET", "/matches", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	assert.Empty(t, matches, "matches involving the deleted player should be gone")
}

func TestRecordMatchHandler(t *testing.T) {
	server, metricsMock, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	anna := addPlayer(t, server, "Anna", "")
	boris := addPlayer(t, server, "Boris", "")

	body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"player1","date":"2026-08-30","notes":"club night"}`, anna.ID, boris.ID)
	rr := doJSON(t, server, "POST", "/matches", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var match tournament.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &match))
	assert.Equal(t, tournament.ResultPlayer1, match.Result)
	assert.Equal(t, 1, metricsMock.MatchesRecordedCount)

	require.Len(t, notifierMock.SendMatchResultCalls, 1)
	assert.Equal(t, "Anna", notifierMock.SendMatchResultCalls[0].Player1.Name)
	assert.Equal(t, 3, notifierMock.SendMatchResultCalls[0].Player1.Points)

	t.Run("invalid result value", func(t *testing.T) {
		bad := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"white","date":"2026-08-30"}`, anna.ID, boris.ID)
		assert.Equal(t, http.StatusBadRequest, doJSON(t, server, "POST", "/matches", bad).Code)
	})

	t.Run("same player twice", func(t *testing.T) {
		bad := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"draw","date":"2026-08-30"}`, anna.ID, anna.ID)
		assert.Equal(t, http.StatusBadRequest, doJSON(t, server, "POST", "/matches", bad).Code)
	})

	t.Run("unknown opponent", func(t *testing.T) {
		bad := fmt.Sprintf(`{"player1Id":%q,"player2Id":"nope","result":"draw","date":"2026-08-30"}`, anna.ID)
		assert.Equal(t, http.StatusBadRequest, doJSON(t, server, "POST", "/matches", bad).Code)
	})

	t.Run("notifier failure does not fail the request", func(t *testing.T) {
		notifierMock.SendMatchResultErr = fmt.Errorf("slack down")
		good := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"draw","date":"2026-08-31"}`, anna.ID, boris.ID)
		assert.Equal(t, http.StatusCreated, doJSON(t, server, "POST", "/matches", good).Code)
	})
}

func TestListPlayersHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	addPlayer(t, server, "Anna", "anna@club.org")
	addPlayer(t, server, "Boris", "boris@club.org")

	var players []tournament.Player
	rr := doJSON(t, server, "GET", "/players", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 2)

	t.Run("search filter", func(t *testing.T) {
		rr := doJSON(t, server, "GET", "/players?q=bor", "")
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
		require.Len(t, players, 1)
		assert.Equal(t, "Boris", players[0].Name)
	})
}

func TestRankingHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	anna := addPlayer(t, server, "Anna", "")
	boris := addPlayer(t, server, "Boris", "")
	body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"player2","date":"2026-08-30"}`, anna.ID, boris.ID)
	require.Equal(t, http.StatusCreated, doJSON(t, server, "POST", "/matches", body).Code)

	rr := doJSON(t, server, "GET", "/ranking", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []struct {
		Position int     `json:"position"`
		Name     string  `json:"name"`
		WinRate  float64 `json:"winRate"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "Boris", entries[0].Name)
	assert.Equal(t, 100.0, entries[0].WinRate)
}

func TestReportHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	anna := addPlayer(t, server, "Anna", "")
	boris := addPlayer(t, server, "Boris", "")
	body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"player1","date":"2026-08-30"}`, anna.ID, boris.ID)
	require.Equal(t, http.StatusCreated, doJSON(t, server, "POST", "/matches", body).Code)

	rr := doJSON(t, server, "GET", "/report", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats tournament.ReportStatistics
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalPlayers)
	assert.Equal(t, 1, stats.TotalMatches)
	assert.Equal(t, "Anna", stats.CurrentLeader)
}

func TestPreferencesHandlers(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doJSON(t, server, "GET", "/preferences", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var prefs tournament.Preferences
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	assert.Equal(t, "grid", prefs.ViewMode)
	assert.Equal(t, "name", prefs.SortBy)

	rr = doJSON(t, server, "PUT", "/preferences", `{"darkMode":true,"viewMode":"list","sortBy":"points"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "GET", "/preferences", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	assert.True(t, prefs.DarkMode)
	assert.Equal(t, "list", prefs.ViewMode)

	t.Run("rejects unknown view mode", func(t *testing.T) {
		rr := doJSON(t, server, "PUT", "/preferences", `{"viewMode":"mosaic","sortBy":"points"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBackupHandlers(t *testing.T) {
	server, metricsMock, _, teardown := setupTestServer(t)
	defer teardown()

	anna := addPlayer(t, server, "Anna", "anna@club.org")
	boris := addPlayer(t, server, "Boris", "")
	body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":"draw","date":"2026-08-30"}`, anna.ID, boris.ID)
	require.Equal(t, http.StatusCreated, doJSON(t, server, "POST", "/matches", body).Code)

	rr := doJSON(t, server, "GET", "/export/backup", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "xadrez-backup-")
	assert.Equal(t, 1, metricsMock.BackupsExportedCount)
	exported := rr.Body.String()

	require.Equal(t, http.StatusOK, doJSON(t, server, "POST", "/clear", "").Code)

	rr = doJSON(t, server, "POST", "/import/backup", exported)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 1, metricsMock.BackupsImportedCount)

	var players []tournament.Player
	rr = doJSON(t, server, "GET", "/players", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 2)

	t.Run("rejects malformed backup", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/import/backup", `{"players": 42}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCSVHandlers(t *testing.T) {
	server, metricsMock, _, teardown := setupTestServer(t)
	defer teardown()

	csv := "Nome,Email\nAnna,anna@club.org\nBoris,\nAnna,dup@club.org\n"
	rr := doJSON(t, server, "POST", "/import/players.csv", csv)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var summary tournament.ImportSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Created)
	assert.Len(t, summary.Errors, 1)
	assert.Equal(t, 1, metricsMock.CSVImportsCount)
	assert.Equal(t, 1, metricsMock.CSVRowErrorsCount)

	rr = doJSON(t, server, "GET", "/export/players.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Nome,Email,Pontos"))

	rr = doJSON(t, server, "GET", "/export/report.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Relatório do Torneio de Xadrez")

	t.Run("rejects header-only file", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/import/players.csv", "Nome,Email\n")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNotifyLeaderboardHandler(t *testing.T) {
	server, _, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	addPlayer(t, server, "Anna", "")
	rr := doJSON(t, server, "POST", "/notify/leaderboard", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notifierMock.SendLeaderboardCalls, 1)
	assert.Equal(t, "Anna", notifierMock.SendLeaderboardCalls[0][0].Name)
}
