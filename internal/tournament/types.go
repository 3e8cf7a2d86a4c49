package tournament

import "time"

// Result tags the outcome of a match from player 1's perspective.
type Result string

const (
	ResultPlayer1 Result = "player1"
	ResultPlayer2 Result = "player2"
	ResultDraw    Result = "draw"
)

// Player is a tournament participant with cumulative statistics.
// Points are tournament-standard: 3 per win, 1 per draw, 0 per loss. The
// counters satisfy matches == wins + draws + losses at all times.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Wins      int       `json:"wins"`
	Draws     int       `json:"draws"`
	Losses    int       `json:"losses"`
	Points    int       `json:"points"`
	Matches   int       `json:"matches"`
	CreatedAt time.Time `json:"createdAt"`
}

// Match is a single recorded result between two players. Matches are
// immutable once recorded; they only disappear when a referenced player is
// deleted. Player references are IDs resolved by lookup, never pointers.
type Match struct {
	ID        string    `json:"id"`
	Player1ID string    `json:"player1Id"`
	Player2ID string    `json:"player2Id"`
	Result    Result    `json:"result"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preferences are the persisted UI settings.
type Preferences struct {
	DarkMode bool   `json:"darkMode"`
	ViewMode string `json:"viewMode"`
	SortBy   string `json:"sortBy"`
}

// ReportStatistics is the aggregate view for the reporting dashboard.
type ReportStatistics struct {
	TotalPlayers  int     `json:"totalPlayers"`
	TotalMatches  int     `json:"totalMatches"`
	CurrentLeader string  `json:"currentLeader"`
	AvgWinRate    float64 `json:"avgWinRate"`
}

// ImportedPlayer is one row parsed out of a players CSV file.
type ImportedPlayer struct {
	Name  string
	Email string
	Line  int
}

// ImportSummary reports the outcome of a batch player import.
type ImportSummary struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}
