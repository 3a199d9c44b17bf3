package othello

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
)

const (
	MinBoardSize     = 4
	MaxBoardSize     = 26
	DefaultBoardSize = 8
)

// Disc is the state of a single cell.
type Disc int8

const (
	Empty Disc = iota
	Black
	White
)

// Player is one of the two sides of the game.
type Player int

const (
	PlayerBlack Player = iota
	PlayerWhite
)

// Disc returns the disc the player places on the board.
func (p Player) Disc() Disc {
	if p == PlayerWhite {
		return White
	}
	return Black
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return PlayerBlack + PlayerWhite - p
}

// Valid checks if p is one of the two players.
func (p Player) Valid() bool {
	return p == PlayerBlack || p == PlayerWhite
}

func (p Player) String() string {
	switch p {
	case PlayerBlack:
		return "black"
	case PlayerWhite:
		return "white"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// ParsePlayer parses "black", "white" or their first letter.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return PlayerBlack, nil
	case "white", "w":
		return PlayerWhite, nil
	default:
		return 0, fmt.Errorf("invalid player: %q", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (p Player) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid player: %d", int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Player) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid player string: %w", err)
	}

	player, err := ParsePlayer(s)
	if err != nil {
		return err
	}

	*p = player
	return nil
}

// Reader gives read access to a board.
type Reader interface {
	Size() int
	Get(c Coordinate) Disc
}

// Grid gives read and write access to a board.
type Grid interface {
	Reader
	Set(c Coordinate, disc Disc)
}

// Board is a square grid of discs. It owns its cells exclusively.
type Board struct {
	size  int
	cells []Disc
}

var ErrInvalidBoardSize = errors.New("invalid board size")

// NewBoard creates an empty board.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d is not in [%d, %d]", ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}

	return &Board{
		size:  size,
		cells: make([]Disc, size*size),
	}, nil
}

// NewBoardStart creates a board with the starting position: four discs in the center,
// White on the main diagonal and Black on the anti-diagonal.
func NewBoardStart(size int) (*Board, error) {
	if size%2 != 0 {
		return nil, fmt.Errorf("%w: start position requires an even size, got %d", ErrInvalidBoardSize, size)
	}

	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	mid := size / 2 //nolint:mnd
	b.Set(Coordinate{mid - 1, mid - 1}, White)
	b.Set(Coordinate{mid, mid}, White)
	b.Set(Coordinate{mid - 1, mid}, Black)
	b.Set(Coordinate{mid, mid - 1}, Black)

	return b, nil
}

// NewBoardStartMust works like NewBoardStart but panics on an invalid size.
func NewBoardStartMust(size int) *Board {
	b, err := NewBoardStart(size)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromString parses the row-major text form of a board.
// Empty cells are '-' or '.', Black is 'b' or 'x', White is 'w' or 'o'.
func NewBoardFromString(s string) (*Board, error) {
	size := int(math.Sqrt(float64(len(s))))
	if size*size != len(s) {
		return nil, fmt.Errorf("board string length must be a square, got %d", len(s))
	}

	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	for i, char := range []byte(s) {
		switch char {
		case '-', '.':
			b.cells[i] = Empty
		case 'b', 'B', 'x', 'X':
			b.cells[i] = Black
		case 'w', 'W', 'o', 'O':
			b.cells[i] = White
		default:
			return nil, fmt.Errorf("invalid board character %q at index %d", char, i)
		}
	}

	return b, nil
}

// Size returns the number of rows, which equals the number of columns.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(c Coordinate) int {
	if !c.InBounds(b.size) {
		panic(fmt.Sprintf("coordinate %s is out of bounds for board size %d", c, b.size))
	}
	return c.Row*b.size + c.Column
}

// Get returns the disc at the given coordinate. It panics when c is out of bounds.
func (b *Board) Get(c Coordinate) Disc {
	return b.cells[b.index(c)]
}

// Set writes the disc at the given coordinate. It panics when c is out of bounds.
func (b *Board) Set(c Coordinate, disc Disc) {
	b.cells[b.index(c)] = disc
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Disc, len(b.cells))
	copy(cells, b.cells)

	return &Board{
		size:  b.size,
		cells: cells,
	}
}

// Cells iterates over all cells in row-major order.
func (b *Board) Cells() iter.Seq2[Coordinate, Disc] {
	return func(yield func(Coordinate, Disc) bool) {
		for i, disc := range b.cells {
			c := Coordinate{Row: i / b.size, Column: i % b.size}
			if !yield(c, disc) {
				return
			}
		}
	}
}

// Count returns how many cells hold the given disc.
func (b *Board) Count(disc Disc) int {
	count := 0
	for _, d := range b.cells {
		if d == disc {
			count++
		}
	}
	return count
}

// Equal checks if two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}

	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String returns the row-major text form of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.cells))

	for _, disc := range b.cells {
		switch disc {
		case Black:
			sb.WriteByte('b')
		case White:
			sb.WriteByte('w')
		default:
			sb.WriteByte('-')
		}
	}

	return sb.String()
}

// ASCIIArtLines returns the ascii art lines for the board, with the given moves marked.
func (b *Board) ASCIIArtLines(moves []Coordinate) []string {
	marked := make(map[Coordinate]bool, len(moves))
	for _, move := range moves {
		marked[move] = true
	}

	lines := make([]string, b.size+2) //nolint:mnd

	header := "+-"
	for x := range b.size {
		header += fmt.Sprintf("%c-", 'a'+x)
	}
	lines[0] = header + "+"

	for y := range b.size {
		line := fmt.Sprintf("%-2d", y+1)

		for x := range b.size {
			c := Coordinate{Row: y, Column: x}

			switch {
			case b.Get(c) == White:
				line += "○ "
			case b.Get(c) == Black:
				line += "● "
			case marked[c]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[b.size+1] = "+" + strings.Repeat("-", 2*b.size+1) + "+" //nolint:mnd

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print(moves []Coordinate) {
	for _, line := range b.ASCIIArtLines(moves) {
		fmt.Println(line)
	}
}
