package geometry

// Handle identifies one of the eight resize handles of a selected bubble.
type Handle uint8

const (
	HandleNone Handle = iota
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// Handles lists every resize handle in drawing order (corners first).
var Handles = [8]Handle{HandleNW, HandleNE, HandleSW, HandleSE, HandleN, HandleS, HandleE, HandleW}

// Edges is the set of rectangle coordinates a handle is allowed to move.
type Edges struct {
	X1, Y1, X2, Y2 bool
}

var handleEdges = map[Handle]Edges{
	HandleN:  {Y1: true},
	HandleS:  {Y2: true},
	HandleE:  {X2: true},
	HandleW:  {X1: true},
	HandleNW: {X1: true, Y1: true},
	HandleNE: {X2: true, Y1: true},
	HandleSW: {X1: true, Y2: true},
	HandleSE: {X2: true, Y2: true},
}

var handleNames = map[Handle]string{
	HandleN:  "n",
	HandleS:  "s",
	HandleE:  "e",
	HandleW:  "w",
	HandleNW: "nw",
	HandleNE: "ne",
	HandleSW: "sw",
	HandleSE: "se",
}

// Edges returns the coordinates this handle moves. HandleNone moves nothing.
func (h Handle) Edges() Edges {
	return handleEdges[h]
}

// Anchor returns the handle's position on the unit square, where (0,0) is
// the top-left corner and (1,1) the bottom-right one.
func (h Handle) Anchor() Point {
	e := h.Edges()
	p := Point{X: 0.5, Y: 0.5}
	switch {
	case e.X1:
		p.X = 0
	case e.X2:
		p.X = 1
	}
	switch {
	case e.Y1:
		p.Y = 0
	case e.Y2:
		p.Y = 1
	}
	return p
}

func (h Handle) String() string {
	if name, ok := handleNames[h]; ok {
		return name
	}
	return "none"
}

