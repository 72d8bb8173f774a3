// Package joystick turns raw analog stick samples into LED duty cycles and
// cursor coordinates.
package joystick

// MapRange remaps value from [minIn, maxIn] to [minOut, maxOut] with integer
// division. Remainders are truncated toward zero, never rounded; the cursor
// snapping in CursorLayout depends on the exact values this produces.
// maxIn must differ from minIn.
func MapRange(value, minIn, maxIn, minOut, maxOut int) int {
	return (value-minIn)*(maxOut-minOut)/(maxIn-minIn) + minOut
}
