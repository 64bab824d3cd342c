package twenty48

import "github.com/joeycumines/linkterm/internal/program"

// Slide returns the board after moving every tile in dir, and the points
// gained from merges.
func (b Board) Slide(dir program.Direction) (Board, int) {
	var (
		out    Board
		gained int
	)
	for i := range Size {
		var line [Size]int
		for j := range Size {
			r, c := cell(dir, i, j)
			line[j] = b[r][c]
		}
		merged, pts := MergeLine(line)
		gained += pts
		for j := range Size {
			r, c := cell(dir, i, j)
			out[r][c] = merged[j]
		}
	}
	return out, gained
}

// cell maps position j along line i to board coordinates, with j=0 at the
// edge tiles move towards.
func cell(dir program.Direction, i, j int) (row, col int) {
	switch dir {
	case program.Left:
		return i, j
	case program.Right:
		return i, Size - 1 - j
	case program.Up:
		return j, i
	case program.Down:
		return Size - 1 - j, i
	default:
		return i, j
	}
}

// MergeLine compacts a line towards index 0, merging each equal adjacent
// pair once.
func MergeLine(line [Size]int) ([Size]int, int) {
	var (
		out    [Size]int
		merged [Size]bool
		n      int
		gained int
	)
	for _, v := range line {
		if v == 0 {
			continue
		}
		if n > 0 && out[n-1] == v && !merged[n-1] {
			out[n-1] *= 2
			merged[n-1] = true
			gained += out[n-1]
			continue
		}
		out[n] = v
		n++
	}
	return out, gained
}

// Contains reports whether any tile equals v.
func (b Board) Contains(v int) bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == v {
				return true
			}
		}
	}
	return false
}

// CanMove reports whether any move would change the board: an empty cell or
// two equal neighbours.
func (b Board) CanMove() bool {
	for r := range Size {
		for c := range Size {
			v := b[r][c]
			if v == 0 {
				return true
			}
			if c < Size-1 && b[r][c+1] == v {
				return true
			}
			if r < Size-1 && b[r+1][c] == v {
				return true
			}
		}
	}
	return false
}
