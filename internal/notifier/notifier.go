package notifier

import "github.com/bfontes/chess-scorekeeper/internal/tournament"

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// SendMatchResult announces a freshly recorded match.
	SendMatchResult(match tournament.Match, player1, player2 tournament.Player) error
	// SendLeaderboard posts the current ranking.
	SendLeaderboard(ranked []tournament.Player) error
}
