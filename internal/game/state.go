package game

// Status is the game status after the last accepted move.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether the status ends active play.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// MoveResult tells whether a move altered the board.
type MoveResult int

const (
	Unchanged MoveResult = iota
	Changed
)

// String returns a human-readable name for the result.
func (r MoveResult) String() string {
	if r == Changed {
		return "changed"
	}
	return "unchanged"
}

// State is a read-only view of an engine.
type State struct {
	Board     Board
	Score     int
	HighScore int
	Status    Status
	Moves     int  // Accepted moves this session
	Gained    int  // Score earned by the last accepted move
	MaxTile   int  // Highest tile on the board
	Spawned   Cell // Cell that received the last spawned tile
}
