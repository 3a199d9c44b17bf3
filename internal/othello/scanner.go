package othello

// ScanLegality walks from origin in direction dir and looks for a cell where player could
// place a disc to capture the rival discs in between. The walk stops at the first empty
// cell, at the first own disc or at the board boundary. It never writes to the board.
func ScanLegality(board Reader, origin Coordinate, dir Direction, player, rival Disc) (Coordinate, bool) {
	size := board.Size()
	rivalSeen := false

	for cursor := origin.Translate(dir); cursor.InBounds(size); cursor = cursor.Translate(dir) {
		switch board.Get(cursor) {
		case Empty:
			// Legal only if we can reverse a line of rival discs.
			return cursor, rivalSeen
		case player:
			return Coordinate{}, false
		case rival:
			rivalSeen = true
		}
	}

	return Coordinate{}, false
}

// ScanCapture walks from origin in direction dir over a run of rival discs. If the run is
// closed by a disc of player, every rival disc in the run is flipped to player. Nothing is
// written when the walk ends on an empty cell or at the board boundary. The origin itself
// is never written. It returns the number of flipped discs.
func ScanCapture(board Grid, origin Coordinate, dir Direction, player, rival Disc) int {
	size := board.Size()
	run := 0

	for cursor := origin.Translate(dir); cursor.InBounds(size); cursor = cursor.Translate(dir) {
		switch board.Get(cursor) {
		case rival:
			run++
			continue
		case player:
			flip := origin
			for range run {
				flip = flip.Translate(dir)
				board.Set(flip, player)
			}
			return run
		}

		return 0
	}

	return 0
}
