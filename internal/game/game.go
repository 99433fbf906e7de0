// Package game implements the 2048 board engine: the slide/merge transform,
// tile spawning, scoring and win/loss detection, plus rendering into a
// core.Screen. It has no terminal or storage dependencies.
package game

import (
	"fmt"
)

// Spawn odds: a new tile is a 4 with probability 1/spawnFourOdds.
const spawnFourOdds = 5

// RandomSource supplies random integers in [0, n). *math/rand.Rand
// satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Engine owns the board, score and status of one game session.
// It is not safe for concurrent use; the platform serializes input.
type Engine struct {
	rng RandomSource

	board     Board
	score     int
	highScore int
	status    Status
	moves     int
	gained    int
	spawned   Cell

	// Screen dimensions
	screenW int
	screenH int
}

// NewEngine creates an engine with a freshly seeded board. highScore is the
// best score carried over from earlier sessions.
func NewEngine(rng RandomSource, highScore int) *Engine {
	if rng == nil {
		panic("game: nil random source")
	}
	e := &Engine{
		rng:       rng,
		highScore: max(highScore, 0),
		screenW:   80,
		screenH:   24,
	}
	e.NewGame()
	return e
}

// NewGame resets the board to two seeded tiles of value 2 and the score to
// zero. The high score is kept.
func (e *Engine) NewGame() {
	e.board = Board{}
	e.score = 0
	e.moves = 0
	e.gained = 0
	e.status = StatusInProgress

	e.placeTile(2)
	e.spawned = e.placeTile(2)
}

// Move slides the board in dir. When the candidate board differs from the
// current one it is committed, a tile is spawned, the score and status are
// updated and Changed is returned. Otherwise the board is left as is and
// Unchanged is returned. Moves on a finished game are ignored.
//
// Move panics if dir is not a valid direction.
func (e *Engine) Move(dir Direction) MoveResult {
	if !dir.Valid() {
		panic(fmt.Sprintf("game: invalid direction %d", int(dir)))
	}
	if e.status.Terminal() {
		return Unchanged
	}

	candidate, gained := Slide(e.board, dir)
	if candidate == e.board {
		return Unchanged
	}

	e.board = candidate
	e.score += gained
	e.gained = gained
	e.moves++
	if e.score > e.highScore {
		e.highScore = e.score
	}

	e.spawned = e.spawnTile()
	e.status = Evaluate(e.board)
	return Changed
}

// State returns a copy of the current game state.
func (e *Engine) State() State {
	return State{
		Board:     e.board,
		Score:     e.score,
		HighScore: e.highScore,
		Status:    e.status,
		Moves:     e.moves,
		Gained:    e.gained,
		MaxTile:   MaxTile(e.board),
		Spawned:   e.spawned,
	}
}

// Resize records the screen dimensions used by Render.
func (e *Engine) Resize(w, h int) {
	e.screenW = w
	e.screenH = h
}

// spawnTile places a 2 (4/5) or a 4 (1/5) on a random empty cell.
func (e *Engine) spawnTile() Cell {
	value := 2
	if e.rng.Intn(spawnFourOdds) == 0 {
		value = 4
	}
	return e.placeTile(value)
}

// placeTile writes value to a uniformly chosen empty cell. A full board is
// left untouched.
func (e *Engine) placeTile(value int) Cell {
	empty := EmptyCells(e.board)
	if len(empty) == 0 {
		return Cell{Row: -1, Col: -1}
	}
	cell := empty[e.rng.Intn(len(empty))]
	e.board[cell.Row][cell.Col] = value
	return cell
}
