package joystick

import "fmt"

// Point is a cursor position in display pixels. Y grows downward.
type Point struct {
	X int
	Y int
}

// Snap replaces a coordinate equal to From with To.
type Snap struct {
	From int
	To   int
}

// CursorLayout maps samples to screen coordinates for a cursor of a given
// size, keeping it off the display edges.
type CursorLayout struct {
	FullScale int // largest raw sample
	XMax      int // horizontal output for a full-scale sample
	YMax      int // vertical output for a zero sample (the axis is inverted)
	XSnaps    []Snap
	YSnaps    []Snap
}

// DefaultCursorLayout builds the layout for a width x height display and a
// square cursor of the given size. For 128x64 with an 8 px cursor this gives
// X in [0, 119] and Y in [55, 0] with the snaps 118->116, 0->4, 55->52, 1->4.
//
// The vertical low snap matches 1, not 0: a full-scale vertical sample leaves
// the cursor flush against the top edge. This mirrors the hardware it was
// tuned on and is kept as is.
func DefaultCursorLayout(width, height, size int) CursorLayout {
	xMax := width - size - 1
	yMax := height - size - 1
	return CursorLayout{
		FullScale: 4095,
		XMax:      xMax,
		YMax:      yMax,
		XSnaps: []Snap{
			{From: xMax - 1, To: xMax - 3},
			{From: 0, To: 4},
		},
		YSnaps: []Snap{
			{From: yMax, To: yMax - 3},
			{From: 1, To: 4},
		},
	}
}

// Validate rejects layouts the mapper cannot handle.
func (l CursorLayout) Validate() error {
	if l.FullScale <= 0 {
		return fmt.Errorf("cursor full scale must be > 0, got %d", l.FullScale)
	}
	if l.XMax <= 0 || l.YMax <= 0 {
		return fmt.Errorf("cursor does not fit on display (xmax=%d, ymax=%d)", l.XMax, l.YMax)
	}
	return nil
}

// Position maps the two samples to a cursor position, then applies the snaps.
// Only the first matching snap of each axis applies.
func (l CursorLayout) Position(vertical, horizontal uint16) Point {
	x := MapRange(int(horizontal), 0, l.FullScale, 0, l.XMax)
	y := MapRange(int(vertical), 0, l.FullScale, l.YMax, 0)
	return Point{
		X: snap(x, l.XSnaps),
		Y: snap(y, l.YSnaps),
	}
}

func snap(v int, rules []Snap) int {
	for _, r := range rules {
		if v == r.From {
			return r.To
		}
	}
	return v
}
