package tetris

// Shape is one rotation of a piece; non-zero cells are filled.
type Shape [][]uint8

// PieceType indexes Pieces.
type PieceType int

const (
	I PieceType = iota
	O
	T
	S
	Z
	J
	L
)

func (p PieceType) String() string { return "IOTSZJL"[p : p+1] }

// Pieces holds every rotation of each tetromino, in clockwise order.
var Pieces = [...][]Shape{
	I: {
		{{0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}},
		{{0, 0, 0, 0}, {0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}},
		{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}},
	},
	O: {
		{{1, 1}, {1, 1}},
	},
	T: {
		{{0, 1, 0}, {1, 1, 1}, {0, 0, 0}},
		{{0, 1, 0}, {0, 1, 1}, {0, 1, 0}},
		{{0, 0, 0}, {1, 1, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 1, 0}, {0, 1, 0}},
	},
	S: {
		{{0, 1, 1}, {1, 1, 0}, {0, 0, 0}},
		{{0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
	},
	Z: {
		{{1, 1, 0}, {0, 1, 1}, {0, 0, 0}},
		{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	},
	J: {
		{{1, 0, 0}, {1, 1, 1}, {0, 0, 0}},
		{{0, 1, 1}, {0, 1, 0}, {0, 1, 0}},
		{{0, 0, 0}, {1, 1, 1}, {0, 0, 1}},
		{{0, 1, 0}, {0, 1, 0}, {1, 1, 0}},
	},
	L: {
		{{0, 0, 1}, {1, 1, 1}, {0, 0, 0}},
		{{0, 1, 0}, {0, 1, 0}, {0, 1, 1}},
		{{0, 0, 0}, {1, 1, 1}, {1, 0, 0}},
		{{1, 1, 0}, {0, 1, 0}, {0, 1, 0}},
	},
}

// spawnY is the starting row, above the board for pieces whose first row
// is empty.
func (p PieceType) spawnY() int {
	switch p {
	case I:
		return -2
	case O:
		return 0
	default:
		return -1
	}
}

// kicks lists the horizontal offsets tried when a rotation collides.
func (p PieceType) kicks() []int {
	if p == I {
		return []int{0, -1, 1, 2, -2}
	}
	return []int{0, -1, 1, 2}
}

// lineScores is the base score for clearing 0-4 lines at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}
