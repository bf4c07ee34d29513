package entity

// Point — пиксельная координата точки-признака.
type Point struct {
	X float32
	Y float32
}
