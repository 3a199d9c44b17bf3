package referee

import (
	"encoding/json"
	"slices"

	"github.com/lk16/flippy/referee/internal/othello"
)

// Move is the placement of a disc on an empty cell.
type Move struct {
	Destination othello.Coordinate
}

// NewMoveFromString creates a move from a field notation such as "c4".
func NewMoveFromString(field string) (Move, error) {
	c, err := othello.ParseCoordinate(field)
	if err != nil {
		return Move{}, err
	}
	return Move{Destination: c}, nil
}

func (m Move) String() string {
	return m.Destination.String()
}

// MarshalJSON implements json.Marshaler.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Destination)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Move) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.Destination)
}

// MoveSet is an unordered set of moves.
type MoveSet map[Move]struct{}

// Contains checks if the set contains move.
func (s MoveSet) Contains(move Move) bool {
	_, ok := s[move]
	return ok
}

// Len returns the number of moves in the set.
func (s MoveSet) Len() int {
	return len(s)
}

// Sorted returns the moves in row-major order.
func (s MoveSet) Sorted() []Move {
	moves := make([]Move, 0, len(s))
	for move := range s {
		moves = append(moves, move)
	}

	slices.SortFunc(moves, func(a, b Move) int {
		switch {
		case a.Destination.Less(b.Destination):
			return -1
		case b.Destination.Less(a.Destination):
			return 1
		default:
			return 0
		}
	})

	return moves
}

// Coordinates returns the destinations of the moves in row-major order.
func (s MoveSet) Coordinates() []othello.Coordinate {
	sorted := s.Sorted()
	coordinates := make([]othello.Coordinate, len(sorted))
	for i, move := range sorted {
		coordinates[i] = move.Destination
	}
	return coordinates
}
