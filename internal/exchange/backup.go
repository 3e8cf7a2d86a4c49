package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/tournament"
)

const backupVersion = "1.0"

// ErrInvalidBackup is returned when a backup file parses as JSON but is
// missing the players or matches arrays.
var ErrInvalidBackup = errors.New("backup file must contain players and matches")

// Backup is the full-state JSON export format.
type Backup struct {
	Players    []tournament.Player `json:"players"`
	Matches    []tournament.Match  `json:"matches"`
	ExportDate string              `json:"exportDate"`
	Version    string              `json:"version"`
}

// ExportBackup serializes the full state and returns the payload together
// with the download filename, which embeds the export date.
func ExportBackup(players []tournament.Player, matches []tournament.Match, now time.Time) ([]byte, string, error) {
	backup := Backup{
		Players:    players,
		Matches:    matches,
		ExportDate: now.Format(time.RFC3339),
		Version:    backupVersion,
	}
	if backup.Players == nil {
		backup.Players = []tournament.Player{}
	}
	if backup.Matches == nil {
		backup.Matches = []tournament.Match{}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode backup: %w", err)
	}
	filename := fmt.Sprintf("xadrez-backup-%s.json", now.Format("2006-01-02"))
	return data, filename, nil
}

// ParseBackup decodes and validates a backup payload. Both collections must
// be present, though they may be empty.
func ParseBackup(data []byte) (Backup, error) {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return Backup{}, fmt.Errorf("invalid backup file: %w", err)
	}
	if backup.Players == nil || backup.Matches == nil {
		return Backup{}, ErrInvalidBackup
	}
	return backup, nil
}
