package notifier

import (
	"sync"

	"github.com/bfontes/chess-scorekeeper/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendMatchResultCalls []struct {
		Match   tournament.Match
		Player1 tournament.Player
		Player2 tournament.Player
	}
	SendLeaderboardCalls [][]tournament.Player

	// SendMatchResultErr, when set, is returned by SendMatchResult.
	SendMatchResultErr error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendMatchResult(match tournament.Match, player1, player2 tournament.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match   tournament.Match
		Player1 tournament.Player
		Player2 tournament.Player
	}{match, player1, player2})
	return m.SendMatchResultErr
}

func (m *Mock) SendLeaderboard(ranked []tournament.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, ranked)
	return nil
}
