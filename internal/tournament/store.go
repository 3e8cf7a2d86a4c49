package tournament

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/kvstore"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Persistence keys. The whole player and match collections are serialized as
// JSON blobs and rewritten after every mutation.
const (
	keyPlayers  = "chessPlayers"
	keyMatches  = "chessMatches"
	keyDarkMode = "darkMode"
	keyViewMode = "viewMode"
	keySortBy   = "sortBy"
)

// Store owns the in-memory player and match collections, mirrored to the
// key-value store. All reads are served from memory; the KV blobs are loaded
// once at construction and fully rewritten after each successful mutation.
type Store struct {
	mu      sync.RWMutex
	kv      kvstore.KV
	players []Player
	matches []Match

	now   func() time.Time
	newID func() string
}

// New creates a Store and loads both collections from the key-value store.
func New(kv kvstore.KV) (*Store, error) {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	log.Info("Tournament store loaded", "players", len(s.players), "matches", len(s.matches))
	return s, nil
}

func (s *Store) load() error {
	if raw, ok, err := s.kv.Get(keyPlayers); err != nil {
		return fmt.Errorf("failed to read players: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.players); err != nil {
			return fmt.Errorf("failed to decode players: %w", err)
		}
	}
	if raw, ok, err := s.kv.Get(keyMatches); err != nil {
		return fmt.Errorf("failed to read matches: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.matches); err != nil {
			return fmt.Errorf("failed to decode matches: %w", err)
		}
	}
	return nil
}

// persistLocked rewrites both collection blobs. Callers must hold the write
// lock.
func (s *Store) persistLocked() error {
	playersJSON, err := json.Marshal(s.players)
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}
	matchesJSON, err := json.Marshal(s.matches)
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	if err := s.kv.Set(keyPlayers, string(playersJSON)); err != nil {
		return fmt.Errorf("failed to write players: %w", err)
	}
	if err := s.kv.Set(keyMatches, string(matchesJSON)); err != nil {
		return fmt.Errorf("failed to write matches: %w", err)
	}
	return nil
}

// hasNameLocked reports whether another player already uses the name,
// case-insensitively. excludeID skips the record being edited.
func (s *Store) hasNameLocked(name string, excludeID string) bool {
	lower := strings.ToLower(name)
	for _, p := range s.players {
		if p.ID != excludeID && strings.ToLower(p.Name) == lower {
			return true
		}
	}
	return false
}

// AddPlayer creates a player with zeroed statistics. The name is required and
// must be unique case-insensitively.
func (s *Store) AddPlayer(name, email string) (Player, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return Player{}, ErrEmptyName
	}
	if s.hasNameLocked(name, "") {
		return Player{}, ErrDuplicateName
	}

	player := Player{
		ID:        s.newID(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now(),
	}
	s.players = append(s.players, player)
	if err := s.persistLocked(); err != nil {
		s.players = s.players[:len(s.players)-1]
		return Player{}, err
	}
	log.Info("Player added", "playerID", player.ID, "name", player.Name)
	return player, nil
}

// EditPlayer updates a player's name and email. Statistics are never touched
// by an edit. The duplicate check excludes the record being edited.
func (s *Store) EditPlayer(id, name, email string) (Player, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return Player{}, ErrEmptyName
	}
	idx := -1
	for i := range s.players {
		if s.players[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Player{}, ErrPlayerNotFound
	}
	if s.hasNameLocked(name, id) {
		return Player{}, ErrDuplicateName
	}

	prev := s.players[idx]
	s.players[idx].Name = name
	s.players[idx].Email = email
	if err := s.persistLocked(); err != nil {
		s.players[idx] = prev
		return Player{}, err
	}
	log.Info("Player updated", "playerID", id, "name", name)
	return s.players[idx], nil
}

// DeletePlayer removes the player and every match referencing it. Deleting an
// absent player is a no-op.
func (s *Store) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := s.players[:0:0]
	found := false
	for _, p := range s.players {
		if p.ID == id {
			found = true
			continue
		}
		players = append(players, p)
	}
	if !found {
		return nil
	}

	matches := s.matches[:0:0]
	removed := 0
	for _, m := range s.matches {
		if m.Player1ID == id || m.Player2ID == id {
			removed++
			continue
		}
		matches = append(matches, m)
	}

	prevPlayers, prevMatches := s.players, s.matches
	s.players, s.matches = players, matches
	if err := s.persistLocked(); err != nil {
		s.players, s.matches = prevPlayers, prevMatches
		return err
	}
	log.Info("Player deleted", "playerID", id, "cascadedMatches", removed)
	return nil
}

// FindPlayer returns a copy of the player with the given ID.
func (s *Store) FindPlayer(id string) (Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// SearchPlayers returns players whose name or email contains the query,
// case-insensitively. An empty query matches everyone.
func (s *Store) SearchPlayers(query string) []Player {
	lower := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			(p.Email != "" && strings.Contains(strings.ToLower(p.Email), lower)) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Players returns a copy of the roster in insertion order.
func (s *Store) Players() []Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Player(nil), s.players...)
}

// Matches returns a copy of all recorded matches in insertion order.
func (s *Store) Matches() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Match(nil), s.matches...)
}

// RecordMatch appends a match and applies the result to both players'
// counters: the winner gains 3 points, a draw gives both 1, and every
// participant's match count increases by one.
func (s *Store) RecordMatch(player1ID, player2ID string, result Result, date, notes string) (Match, error) {
	notes = strings.TrimSpace(notes)

	s.mu.Lock()
	defer s.mu.Unlock()

	if player1ID == "" || player2ID == "" {
		return Match{}, ErrMissingPlayer
	}
	if player1ID == player2ID {
		return Match{}, ErrSamePlayer
	}
	switch result {
	case ResultPlayer1, ResultPlayer2, ResultDraw:
	default:
		return Match{}, ErrMissingResult
	}
	if date == "" {
		return Match{}, ErrMissingDate
	}

	idx1, idx2 := -1, -1
	for i := range s.players {
		switch s.players[i].ID {
		case player1ID:
			idx1 = i
		case player2ID:
			idx2 = i
		}
	}
	if idx1 == -1 || idx2 == -1 {
		return Match{}, ErrMissingPlayer
	}

	match := Match{
		ID:        s.newID(),
		Player1ID: player1ID,
		Player2ID: player2ID,
		Result:    result,
		Date:      date,
		Notes:     notes,
		CreatedAt: s.now(),
	}

	prev1, prev2 := s.players[idx1], s.players[idx2]
	p1, p2 := &s.players[idx1], &s.players[idx2]
	p1.Matches++
	p2.Matches++
	switch result {
	case ResultPlayer1:
		p1.Wins++
		p1.Points += 3
		p2.Losses++
	case ResultPlayer2:
		p2.Wins++
		p2.Points += 3
		p1.Losses++
	case ResultDraw:
		p1.Draws++
		p1.Points++
		p2.Draws++
		p2.Points++
	}

	s.matches = append(s.matches, match)
	if err := s.persistLocked(); err != nil {
		s.players[idx1], s.players[idx2] = prev1, prev2
		s.matches = s.matches[:len(s.matches)-1]
		return Match{}, err
	}
	log.Info("Match recorded", "matchID", match.ID, "player1", player1ID, "player2", player2ID, "result", result)
	return match, nil
}

// ImportPlayers applies a batch of parsed CSV rows. Rows with an empty name
// or a name/email that already exists are collected as error strings and do
// not abort the rest of the batch. Created players start with zeroed
// statistics. The store is persisted once after the batch.
func (s *Store) ImportPlayers(rows []ImportedPlayer) (ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := ImportSummary{Errors: []string{}}
	added := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		email := strings.TrimSpace(row.Email)
		if name == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: player name is required", row.Line))
			continue
		}
		if s.hasNameLocked(name, "") {
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: a player named %q already exists", row.Line, name))
			continue
		}
		if email != "" && s.hasEmailLocked(email) {
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: a player with email %q already exists", row.Line, email))
			continue
		}
		s.players = append(s.players, Player{
			ID:        s.newID(),
			Name:      name,
			Email:     email,
			CreatedAt: s.now(),
		})
		added++
	}

	if added > 0 {
		if err := s.persistLocked(); err != nil {
			s.players = s.players[:len(s.players)-added]
			return ImportSummary{}, err
		}
	}
	summary.Created = added
	log.Info("Players imported", "created", added, "rowErrors", len(summary.Errors))
	return summary, nil
}

func (s *Store) hasEmailLocked(email string) bool {
	lower := strings.ToLower(email)
	for _, p := range s.players {
		if p.Email != "" && strings.ToLower(p.Email) == lower {
			return true
		}
	}
	return false
}

// ReplaceAll swaps in a full backup of both collections and persists it.
func (s *Store) ReplaceAll(players []Player, matches []Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevPlayers, prevMatches := s.players, s.matches
	s.players = append([]Player(nil), players...)
	s.matches = append([]Match(nil), matches...)
	if err := s.persistLocked(); err != nil {
		s.players, s.matches = prevPlayers, prevMatches
		return err
	}
	log.Info("Store replaced from backup", "players", len(players), "matches", len(matches))
	return nil
}

// Clear empties both collections.
func (s *Store) Clear() error {
	return s.ReplaceAll(nil, nil)
}

// Preferences returns the persisted UI settings, falling back to defaults
// for unset keys.
func (s *Store) Preferences() (Preferences, error) {
	prefs := Preferences{ViewMode: "grid", SortBy: "name"}
	if v, ok, err := s.kv.Get(keyDarkMode); err != nil {
		return Preferences{}, err
	} else if ok {
		prefs.DarkMode = v == "true"
	}
	if v, ok, err := s.kv.Get(keyViewMode); err != nil {
		return Preferences{}, err
	} else if ok {
		prefs.ViewMode = v
	}
	if v, ok, err := s.kv.Get(keySortBy); err != nil {
		return Preferences{}, err
	} else if ok {
		prefs.SortBy = v
	}
	return prefs, nil
}

// SetPreferences persists the UI settings.
func (s *Store) SetPreferences(prefs Preferences) error {
	darkMode := "false"
	if prefs.DarkMode {
		darkMode = "true"
	}
	if err := s.kv.Set(keyDarkMode, darkMode); err != nil {
		return err
	}
	if err := s.kv.Set(keyViewMode, prefs.ViewMode); err != nil {
		return err
	}
	return s.kv.Set(keySortBy, prefs.SortBy)
}
