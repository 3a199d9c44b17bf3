package othello

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Direction is one of the 8 compass directions a line scan can walk in.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists all directions in dispatch order.
var Directions = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Row 0 is the top of the board, so North decreases the row.
var directionOffsets = [...][2]int{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
}

var directionNames = [...]string{
	North:     "N",
	NorthEast: "NE",
	East:      "E",
	SouthEast: "SE",
	South:     "S",
	SouthWest: "SW",
	West:      "W",
	NorthWest: "NW",
}

// Offset returns the row and column delta of a single step in this direction.
func (d Direction) Offset() (int, int) {
	offset := directionOffsets[d]
	return offset[0], offset[1]
}

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Coordinate is a position on the board. Row 0 and column 0 are the top left corner.
type Coordinate struct {
	Row    int
	Column int
}

// Translate returns the neighbor one step away in the given direction.
// It does not check bounds.
func (c Coordinate) Translate(d Direction) Coordinate {
	dRow, dColumn := d.Offset()
	return Coordinate{
		Row:    c.Row + dRow,
		Column: c.Column + dColumn,
	}
}

// InBounds checks if the coordinate is on a board with the given size.
func (c Coordinate) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Column >= 0 && c.Column < size
}

// ParseCoordinate converts a field notation (e.g. "a1", "c4", "h12") to a Coordinate.
func ParseCoordinate(field string) (Coordinate, error) {
	if len(field) < 2 { //nolint:mnd
		return Coordinate{}, fmt.Errorf("invalid field length: %s", field)
	}

	field = strings.ToLower(field)

	column := field[0]
	if column < 'a' || column >= 'a'+MaxBoardSize {
		return Coordinate{}, fmt.Errorf("invalid field column: %s", field)
	}

	// Only plain decimal rows, no sign and no leading zero.
	digits := field[1:]
	if digits[0] < '1' || digits[0] > '9' {
		return Coordinate{}, fmt.Errorf("invalid field row: %s", field)
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 || row > MaxBoardSize {
		return Coordinate{}, fmt.Errorf("invalid field row: %s", field)
	}

	return Coordinate{
		Row:    row - 1,
		Column: int(column - 'a'),
	}, nil
}

// MustParseCoordinate works like ParseCoordinate but panics on invalid input.
func MustParseCoordinate(field string) Coordinate {
	c, err := ParseCoordinate(field)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the field notation of the coordinate.
func (c Coordinate) String() string {
	if c.Column < 0 || c.Column >= MaxBoardSize || c.Row < 0 {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
	}
	return fmt.Sprintf("%c%d", 'a'+c.Column, c.Row+1)
}

// Less orders coordinates row by row.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Column < other.Column
}

// MarshalJSON implements json.Marshaler, coordinates are sent as field strings.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid coordinate string: %w", err)
	}

	parsed, err := ParseCoordinate(s)
	if err != nil {
		return fmt.Errorf("invalid coordinate string: %w", err)
	}

	*c = parsed
	return nil
}
