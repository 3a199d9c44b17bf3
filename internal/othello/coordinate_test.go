package othello

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirections(t *testing.T) {
	require.Len(t, Directions, 8)

	seen := make(map[[2]int]bool)
	for i, dir := range Directions {
		require.Equal(t, Direction(i), dir)

		dRow, dColumn := dir.Offset()
		require.NotEqual(t, [2]int{0, 0}, [2]int{dRow, dColumn})
		require.LessOrEqual(t, dRow*dRow, 1)
		require.LessOrEqual(t, dColumn*dColumn, 1)

		seen[[2]int{dRow, dColumn}] = true
	}

	// All 8 offsets are distinct
	require.Len(t, seen, 8)
}

func TestDirection_String(t *testing.T) {
	require.Equal(t, "N", North.String())
	require.Equal(t, "SW", SouthWest.String())
	require.Equal(t, "Direction(8)", Direction(8).String())
}

func TestCoordinate_Translate(t *testing.T) {
	origin := Coordinate{Row: 3, Column: 3}

	tests := []struct {
		dir  Direction
		want Coordinate
	}{
		{North, Coordinate{2, 3}},
		{NorthEast, Coordinate{2, 4}},
		{East, Coordinate{3, 4}},
		{SouthEast, Coordinate{4, 4}},
		{South, Coordinate{4, 3}},
		{SouthWest, Coordinate{4, 2}},
		{West, Coordinate{3, 2}},
		{NorthWest, Coordinate{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			require.Equal(t, tt.want, origin.Translate(tt.dir))
		})
	}
}

func TestCoordinate_TranslateNoBoundsCheck(t *testing.T) {
	corner := Coordinate{Row: 0, Column: 0}
	require.Equal(t, Coordinate{Row: -1, Column: -1}, corner.Translate(NorthWest))
}

func TestCoordinate_InBounds(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		size int
		want bool
	}{
		{"top left", Coordinate{0, 0}, 8, true},
		{"bottom right", Coordinate{7, 7}, 8, true},
		{"row too big", Coordinate{8, 0}, 8, false},
		{"column too big", Coordinate{0, 8}, 8, false},
		{"negative row", Coordinate{-1, 0}, 8, false},
		{"negative column", Coordinate{0, -1}, 8, false},
		{"bigger board", Coordinate{9, 9}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.c.InBounds(tt.size))
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		field   string
		want    Coordinate
		wantErr bool
	}{
		{"a1", Coordinate{0, 0}, false},
		{"h8", Coordinate{7, 7}, false},
		{"C4", Coordinate{3, 2}, false},
		{"d12", Coordinate{11, 3}, false},
		{"z26", Coordinate{25, 25}, false},
		{"a", Coordinate{}, true},
		{"a0", Coordinate{}, true},
		{"a27", Coordinate{}, true},
		{"1a", Coordinate{}, true},
		{"ax", Coordinate{}, true},
		{"a+1", Coordinate{}, true},
		{"a01", Coordinate{}, true},
		{"a-1", Coordinate{}, true},
		{"a 1", Coordinate{}, true},
		{"a1x", Coordinate{}, true},
		{"", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := ParseCoordinate(tt.field)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMustParseCoordinate(t *testing.T) {
	require.Equal(t, Coordinate{2, 3}, MustParseCoordinate("d3"))
	require.Panics(t, func() { MustParseCoordinate("??") })
}

func TestCoordinate_String(t *testing.T) {
	require.Equal(t, "a1", Coordinate{0, 0}.String())
	require.Equal(t, "e6", Coordinate{5, 4}.String())
	require.Equal(t, "b10", Coordinate{9, 1}.String())
	require.Equal(t, "(-1,0)", Coordinate{-1, 0}.String())
}

func TestCoordinate_Less(t *testing.T) {
	require.True(t, Coordinate{0, 5}.Less(Coordinate{1, 0}))
	require.True(t, Coordinate{1, 0}.Less(Coordinate{1, 1}))
	require.False(t, Coordinate{1, 1}.Less(Coordinate{1, 1}))
}

func TestCoordinate_JSON(t *testing.T) {
	data, err := json.Marshal(Coordinate{Row: 3, Column: 2})
	require.NoError(t, err)
	require.JSONEq(t, `"c4"`, string(data))

	var c Coordinate
	require.NoError(t, json.Unmarshal([]byte(`"f5"`), &c))
	require.Equal(t, Coordinate{Row: 4, Column: 5}, c)

	require.Error(t, json.Unmarshal([]byte(`"f"`), &c))
	require.Error(t, json.Unmarshal([]byte(`12`), &c))
}
