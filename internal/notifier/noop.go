package notifier

import "github.com/bfontes/chess-scorekeeper/internal/tournament"

var _ Notifier = (*Noop)(nil)

// Noop is the Notifier used when no provider is configured.
type Noop struct{}

// NewNoop creates a no-op notifier.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) SendMatchResult(tournament.Match, tournament.Player, tournament.Player) error {
	return nil
}

func (n *Noop) SendLeaderboard([]tournament.Player) error {
	return nil
}
