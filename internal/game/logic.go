package game

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the board dimension. It is fixed.
const BoardSize = 4

// WinTile is the tile value that ends the game as a win.
const WinTile = 2048

// Board is a 4x4 grid of tile values indexed as [row][col]; 0 means empty.
type Board [BoardSize][BoardSize]int

// Row is a single board row.
type Row = [BoardSize]int

// Direction is a slide direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Directions lists the four valid directions in a stable order.
var Directions = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

// Valid reports whether d is one of the four slide directions.
func (d Direction) Valid() bool {
	return d >= DirLeft && d <= DirDown
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name into a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("game: unknown direction %q", s)
}

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// compactRow packs non-zero values toward index 0, keeping their order.
func compactRow(row Row) Row {
	var out Row
	pos := 0
	for _, v := range row {
		if v != 0 {
			out[pos] = v
			pos++
		}
	}
	return out
}

// mergeRow makes one left-to-right sweep, doubling a cell that equals its
// right neighbour and zeroing the neighbour. A doubled cell is not compared
// again in the same sweep, so [4,4,4,4] yields [8,0,8,0].
func mergeRow(row Row) (Row, int) {
	score := 0
	for i := 0; i < BoardSize-1; i++ {
		if row[i] != 0 && row[i] == row[i+1] {
			row[i] *= 2
			row[i+1] = 0
			score += row[i]
		}
	}
	return row, score
}

// slideRow applies compact, merge, compact to a row in the canonical
// slide-left orientation.
func slideRow(row Row) (Row, int) {
	merged, score := mergeRow(compactRow(row))
	return compactRow(merged), score
}

// transpose returns the matrix transpose.
func transpose(b Board) Board {
	var out Board
	for r := range BoardSize {
		for c := range BoardSize {
			out[c][r] = b[r][c]
		}
	}
	return out
}

// mirror reverses the column order of every row.
func mirror(b Board) Board {
	var out Board
	for r := range BoardSize {
		for c := range BoardSize {
			out[r][BoardSize-1-c] = b[r][c]
		}
	}
	return out
}

// slideLeft slides every row in the canonical orientation.
func slideLeft(b Board) (Board, int) {
	total := 0
	for r := range BoardSize {
		var gained int
		b[r], gained = slideRow(b[r])
		total += gained
	}
	return b, total
}

// Slide returns the candidate board for a move and the score it earns.
// Every direction is expressed as slide-left wrapped in transpose and/or
// mirror. Slide panics on an invalid direction.
func Slide(b Board, dir Direction) (Board, int) {
	var score int
	switch dir {
	case DirLeft:
		b, score = slideLeft(b)
	case DirRight:
		b, score = slideLeft(mirror(b))
		b = mirror(b)
	case DirUp:
		b, score = slideLeft(transpose(b))
		b = transpose(b)
	case DirDown:
		b, score = slideLeft(mirror(transpose(b)))
		b = transpose(mirror(b))
	default:
		panic(fmt.Sprintf("game: invalid direction %d", int(dir)))
	}
	return b, score
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell reports whether at least one cell is empty.
func HasEmptyCell(b Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasAdjacentPair reports whether two equal non-zero tiles touch
// horizontally or vertically.
func HasAdjacentPair(b Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			v := b[r][c]
			if v == 0 {
				continue
			}
			if c < BoardSize-1 && b[r][c+1] == v {
				return true
			}
			if r < BoardSize-1 && b[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// Contains reports whether any cell holds value.
func Contains(b Board, value int) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest tile on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			maxVal = max(maxVal, b[r][c])
		}
	}
	return maxVal
}

// Evaluate computes the status of a board. Won takes precedence over Lost.
func Evaluate(b Board) Status {
	if Contains(b, WinTile) {
		return StatusWon
	}
	if !HasEmptyCell(b) && !HasAdjacentPair(b) {
		return StatusLost
	}
	return StatusInProgress
}

// String renders the board as four lines of right-aligned numbers, with
// '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for r := range BoardSize {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range BoardSize {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if b[r][c] != 0 {
				cell = strconv.Itoa(b[r][c])
			}
			fmt.Fprintf(&sb, "%5s", cell)
		}
	}
	return sb.String()
}
